// Package database maintains the accepted chain of blocks. Storage engines
// are pluggable behind the Storage interface, the chain itself only lives
// for the lifetime of the process.
package database

import (
	"sync"
)

// Storage interface represents the behavior required to be implemented by
// any package providing support for storing and reading the chain.
type Storage interface {
	Write(blockData BlockData) error
	GetBlock(num uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// Database manages access to the chain of accepted blocks.
type Database struct {
	mu          sync.RWMutex
	latestBlock BlockData
	storage     Storage
}

// New constructs a new database over the specified storage engine.
func New(storage Storage) *Database {
	return &Database{
		storage: storage,
	}
}

// Close closes the underlying storage engine.
func (db *Database) Close() {
	db.storage.Close()
}

// Write records a new block through the storage engine.
func (db *Database) Write(blockData BlockData) error {
	return db.storage.Write(blockData)
}

// UpdateLatestBlock provides safe access to update the chain tip.
func (db *Database) UpdateLatestBlock(blockData BlockData) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.latestBlock = blockData
}

// LatestBlock returns the current chain tip.
func (db *Database) LatestBlock() BlockData {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// GetBlock returns the contents of the specified block by number.
func (db *Database) GetBlock(num uint64) (BlockData, error) {
	return db.storage.GetBlock(num)
}

// ForEach returns an iterator to walk through all the blocks starting with
// the genesis block.
func (db *Database) ForEach() Iterator {
	return db.storage.ForEach()
}
