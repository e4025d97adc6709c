// Package genesis maintains the settings a chain starts from.
package genesis

import "time"

// DefaultDifficulty is the number of leading zero characters an accepted
// block hash must carry when no difficulty is configured.
const DefaultDifficulty = 3

// Genesis represents the fixed settings for a running chain. Each chain
// instance owns its settings, two chains with different difficulties can
// coexist in the same process.
type Genesis struct {
	Date       time.Time `json:"date"`       // The time the chain was created.
	ChainID    uint16    `json:"chain_id"`   // Unique id for this running instance.
	Difficulty uint      `json:"difficulty"` // How difficult it needs to be to solve the work problem.
}

// New constructs the settings for a new chain. A zero difficulty falls back
// to the default.
func New(now time.Time, chainID uint16, difficulty uint) Genesis {
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}

	return Genesis{
		Date:       now,
		ChainID:    chainID,
		Difficulty: difficulty,
	}
}
