// Package state is the core API for the ledger and implements all the
// business rules for accepting transactions and blocks.
package state

import (
	"sync"
	"time"

	"github.com/minichain/minichain/foundation/ledger/database"
	"github.com/minichain/minichain/foundation/ledger/database/storage/memory"
	"github.com/minichain/minichain/foundation/ledger/genesis"
	"github.com/minichain/minichain/foundation/ledger/mempool"
)

// EventHandler defines a function that is called when events occur in the
// processing of mining and accepting blocks.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the chain.
type Config struct {
	Genesis   genesis.Genesis
	Storage   database.Storage
	Clock     func() time.Time
	EvHandler EventHandler
}

// State manages the ledger: the accepted chain of blocks and the pool of
// pending transactions.
type State struct {
	mu sync.Mutex

	genesis   genesis.Genesis
	clock     func() time.Time
	evHandler EventHandler

	mempool *mempool.Mempool
	db      *database.Database
}

// New constructs a new chain. The genesis block is synthesized immediately,
// a chain is never empty.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The clock is injectable so tests can fix the timestamps that feed
	// the block hashes.
	clock := cfg.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}

	storage := cfg.Storage
	if storage == nil {
		storage = memory.New()
	}

	s := State{
		genesis:   cfg.Genesis,
		clock:     clock,
		evHandler: ev,
		mempool:   mempool.New(),
		db:        database.New(storage),
	}

	// The genesis block is trusted by construction. Its hash is assigned
	// directly, no proof of work is performed.
	genesisBlock := database.NewGenesisBlock(clock())
	blockData := database.NewBlockData(genesisBlock)
	if err := s.db.Write(blockData); err != nil {
		return nil, err
	}
	s.db.UpdateLatestBlock(blockData)

	ev("state: New: genesis block created: hash[%s]", blockData.Hash)

	return &s, nil
}

// Shutdown cleanly brings the chain down.
func (s *State) Shutdown() error {
	s.db.Close()
	return nil
}
