package public

import "github.com/minichain/minichain/foundation/ledger/database"

// newTx represents a transaction submitted by a client. The value tags
// drive the request validation.
type newTx struct {
	From  string `json:"from" validate:"required"`
	To    string `json:"to" validate:"required"`
	Data  string `json:"data"`
	Value uint   `json:"value"`
}

// tx represents a transaction as reported by the API.
type tx struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Data      string `json:"data"`
	Value     uint   `json:"value"`
	TimeStamp uint64 `json:"timestamp"`
}

// block represents an accepted block as reported by the API.
type block struct {
	Hash       string `json:"hash"`
	Number     uint64 `json:"number"`
	ParentHash string `json:"parent_hash"`
	TimeStamp  uint64 `json:"timestamp"`
	Nonce      uint64 `json:"nonce"`
	Trans      []tx   `json:"trans"`
}

// toTx converts a ledger transaction into the API form.
func toTx(dbTx database.Tx) tx {
	return tx{
		From:      dbTx.FromID,
		To:        dbTx.ToID,
		Data:      dbTx.Data,
		Value:     dbTx.Value,
		TimeStamp: dbTx.TimeStamp,
	}
}

// toBlock converts an accepted block into the API form.
func toBlock(blockData database.BlockData) block {
	trans := make([]tx, len(blockData.Block.Trans))
	for i, dbTx := range blockData.Block.Trans {
		trans[i] = toTx(dbTx)
	}

	return block{
		Hash:       blockData.Hash,
		Number:     blockData.Block.Number,
		ParentHash: blockData.Block.ParentHash,
		TimeStamp:  blockData.Block.TimeStamp,
		Nonce:      blockData.Block.Nonce,
		Trans:      trans,
	}
}
