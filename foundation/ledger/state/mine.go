package state

import (
	"context"
	"errors"

	"github.com/minichain/minichain/foundation/ledger/database"
)

// ErrNoTransactions is returned when a block is requested to be created
// and there are no transactions in the mempool. The caller may retry after
// submitting transactions.
var ErrNoTransactions = errors.New("no transactions in mempool")

// =============================================================================

// SubmitTransaction adds the transaction to the mempool where it waits to
// be mined into a block.
func (s *State) SubmitTransaction(tx database.Tx) {
	s.evHandler("state: SubmitTransaction: tx[%s]", tx)

	s.mempool.Add(tx)
}

// MineNewBlock snapshots the mempool into a candidate block, performs the
// proof of work and attempts to accept the result onto the chain. Only the
// mined transactions are removed from the pool, and only once the block is
// accepted: a rejected candidate leaves everything pending for the next
// attempt, and transactions submitted while the search ran stay pooled.
func (s *State) MineNewBlock(ctx context.Context) (database.BlockData, error) {
	s.evHandler("state: MineNewBlock: MINING: check mempool count")

	if s.mempool.Count() == 0 {
		return database.BlockData{}, ErrNoTransactions
	}

	s.evHandler("state: MineNewBlock: MINING: perform POW")

	trans := s.mempool.Copy()
	candidate := database.NewBlock(s.clock(), s.db.LatestBlock(), trans)

	block, proof, err := candidate.Solve(ctx, s.genesis.Difficulty, s.evHandler)
	if err != nil {
		return database.BlockData{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.BlockData{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: accept block")

	if err := s.AcceptBlock(block, proof); err != nil {
		return database.BlockData{}, err
	}

	for _, tx := range trans {
		s.mempool.Delete(tx)
	}

	return database.BlockData{Hash: proof, Block: block}, nil
}

// AcceptBlock validates the block against the current chain tip and the
// claimed proof. On success the block is recorded under the proof and
// becomes the new tip. On failure the chain is left unchanged and the
// block is discarded.
func (s *State) AcceptBlock(block database.Block, proof string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := s.db.LatestBlock()

	if err := block.ValidateBlock(parent, s.genesis.Difficulty, proof); err != nil {
		s.evHandler("state: AcceptBlock: REJECTED: block[%d]: %s", block.Number, err)
		return err
	}

	blockData := database.BlockData{Hash: proof, Block: block}
	if err := s.db.Write(blockData); err != nil {
		return err
	}
	s.db.UpdateLatestBlock(blockData)

	s.evHandler("state: AcceptBlock: ACCEPTED: block[%d]: hash[%s]", block.Number, proof)

	return nil
}
