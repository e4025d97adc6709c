package database

import (
	"fmt"
	"time"
)

// Tx is the transactional information between two parties. Once constructed
// a transaction is never mutated, it is either waiting in the mempool or
// recorded inside a block.
type Tx struct {
	FromID    string `json:"from"`      // Party the value is moving from.
	ToID      string `json:"to"`        // Party the value is moving to.
	Data      string `json:"data"`      // Opaque payload carried with the transfer.
	Value     uint   `json:"value"`     // Monetary value being transferred.
	TimeStamp uint64 `json:"timestamp"` // The time the transaction was constructed.
}

// NewTx constructs a new transaction stamped with the specified time. The
// clock is passed in so callers control the timestamp, which is part of the
// transaction's hashed identity.
func NewTx(now time.Time, fromID string, toID string, data string, value uint) Tx {
	return Tx{
		FromID:    fromID,
		ToID:      toID,
		Data:      data,
		Value:     value,
		TimeStamp: uint64(now.Unix()),
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s:%d", tx.FromID, tx.ToID, tx.Value)
}
