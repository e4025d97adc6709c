// Package memory implements the database.Storage interface keeping the
// chain in process memory. It is the only storage engine for this ledger,
// the chain does not survive the process.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minichain/minichain/foundation/ledger/database"
)

// Memory represents the serialization implementation for keeping blocks in
// an in-process slice. This implements the database.Storage interface.
type Memory struct {
	mu     sync.RWMutex
	blocks []database.BlockData
}

// New constructs an empty in-memory storage engine.
func New() *Memory {
	return &Memory{}
}

// Close in this implementation has nothing to do since there are no
// resources beyond the process heap.
func (m *Memory) Close() error {
	return nil
}

// Write appends the specified block to the chain. Blocks must arrive in
// order, the append-only slice is the chain.
func (m *Memory) Write(blockData database.BlockData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if next := uint64(len(m.blocks)); blockData.Block.Number != next {
		return fmt.Errorf("block out of sequence, got %d, exp %d", blockData.Block.Number, next)
	}

	m.blocks = append(m.blocks, blockData)
	return nil
}

// GetBlock returns the contents of the specified block by number.
func (m *Memory) GetBlock(num uint64) (database.BlockData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if num >= uint64(len(m.blocks)) {
		return database.BlockData{}, fmt.Errorf("block %d not found", num)
	}

	return m.blocks[num], nil
}

// ForEach returns an iterator to walk through all the blocks starting with
// the genesis block.
func (m *Memory) ForEach() database.Iterator {
	return &memoryIterator{memory: m}
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through the blocks held in memory. This implements the database Iterator
// interface.
type memoryIterator struct {
	memory  *Memory // Access to the storage API.
	current uint64  // Block number to read on the next call.
	eoc     bool    // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block in the chain.
func (mi *memoryIterator) Next() (database.BlockData, error) {
	if mi.eoc {
		return database.BlockData{}, errors.New("end of chain")
	}

	blockData, err := mi.memory.GetBlock(mi.current)
	if err != nil {
		mi.eoc = true
		return database.BlockData{}, err
	}

	mi.current++
	return blockData, nil
}

// Done returns the end of chain value.
func (mi *memoryIterator) Done() bool {
	return mi.eoc
}
