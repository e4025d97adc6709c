package state

import (
	"github.com/minichain/minichain/foundation/ledger/database"
	"github.com/minichain/minichain/foundation/ledger/genesis"
)

// RetrieveGenesis returns a copy of the chain settings.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns the current chain tip.
func (s *State) RetrieveLatestBlock() database.BlockData {
	return s.db.LatestBlock()
}

// RetrieveMempool returns a copy of the pending transactions in
// submission order.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// MempoolCount returns the number of pending transactions.
func (s *State) MempoolCount() int {
	return s.mempool.Count()
}

// RetrieveBlock returns the committed block with the specified number.
func (s *State) RetrieveBlock(number uint64) (database.BlockData, error) {
	return s.db.GetBlock(number)
}

// RetrieveChain returns the full committed chain starting with the
// genesis block.
func (s *State) RetrieveChain() []database.BlockData {
	var blocks []database.BlockData

	iter := s.db.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			break
		}
		blocks = append(blocks, blockData)
	}

	return blocks
}
