package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minichain/minichain/foundation/ledger/fingerprint"
)

// Set of errors returned when a candidate block is rejected. The candidate
// is discarded, the chain is never mutated.
var (
	ErrWrongParent  = errors.New("parent hash does not match the chain tip")
	ErrInvalidProof = errors.New("invalid proof of work")
)

// genesisData is the marker payload carried by the single transaction
// inside the genesis block.
const genesisData = "genesis block"

// =============================================================================

// Block represents a group of transactions batched together. Every field is
// part of the block's hashed input. The hash a block was accepted under is
// carried separately in BlockData so it can never hash itself.
type Block struct {
	Number     uint64 `json:"number"`      // Position of the block in the chain, starting at 0.
	Trans      []Tx   `json:"trans"`       // Transactions recorded in this block, in submission order.
	TimeStamp  uint64 `json:"timestamp"`   // The time the block was constructed.
	ParentHash string `json:"parent_hash"` // Hash of the previous block in the chain.
	Nonce      uint64 `json:"nonce"`       // Value discovered to solve the hash solution.
}

// NewBlock constructs a candidate block referencing the current tip of the
// chain. The nonce starts at zero and is discovered by Solve.
func NewBlock(now time.Time, parent BlockData, trans []Tx) Block {
	return Block{
		Number:     parent.Block.Number + 1,
		Trans:      trans,
		TimeStamp:  uint64(now.Unix()),
		ParentHash: parent.Hash,
		Nonce:      0,
	}
}

// NewGenesisBlock constructs the first block of a chain. The genesis block
// is trusted by construction, its hash is assigned directly and never
// checked against the difficulty rule.
func NewGenesisBlock(now time.Time) Block {
	return Block{
		Number:     0,
		Trans:      []Tx{{Data: genesisData, TimeStamp: uint64(now.Unix())}},
		TimeStamp:  uint64(now.Unix()),
		ParentHash: fingerprint.ZeroHash,
		Nonce:      0,
	}
}

// Hash returns the unique hash for the block, computed fresh from the
// block's current content.
func (b Block) Hash() string {
	return fingerprint.Hash(b)
}

// Solve performs the work of mining to find a nonce that satisfies the
// difficulty rule. The receiver is a copy, so the caller's block is left
// untouched and the returned block carries the winning nonce. The timestamp
// is fixed at construction time, which makes the search reproducible. The
// context is the only bound on the search.
func (b Block) Solve(ctx context.Context, difficulty uint, ev func(v string, args ...any)) (Block, string, error) {
	ev("database: Solve: MINING: started: block[%d]", b.Number)
	defer ev("database: Solve: MINING: completed: block[%d]", b.Number)

	for _, tx := range b.Trans {
		ev("database: Solve: MINING: tx[%s]", tx)
	}

	b.Nonce = 0

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Solve: MINING: attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			ev("database: Solve: MINING: CANCELLED")
			return Block{}, "", ctx.Err()
		}

		hash := b.Hash()
		if !fingerprint.Solved(difficulty, hash) {
			b.Nonce++
			continue
		}

		ev("database: Solve: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.ParentHash, hash)
		ev("database: Solve: MINING: attempts[%d]", attempts)

		return b, hash, nil
	}
}

// ValidProof checks the claimed hash satisfies the difficulty rule and
// matches a fresh hash of the block's current content. The second check
// catches a hash that was produced before the block's fields changed, or a
// hash that never belonged to this block at all.
func (b Block) ValidProof(difficulty uint, claimedHash string) error {
	if !fingerprint.Solved(difficulty, claimedHash) {
		return fmt.Errorf("hash does not meet difficulty %d: %w", difficulty, ErrInvalidProof)
	}

	if hash := b.Hash(); claimedHash != hash {
		return fmt.Errorf("hash does not match content, got %s, exp %s: %w", claimedHash, hash, ErrInvalidProof)
	}

	return nil
}

// ValidateBlock takes a candidate block and validates it to be included
// into the blockchain after the specified parent.
func (b Block) ValidateBlock(parent BlockData, difficulty uint, claimedHash string) error {
	if b.Number != parent.Block.Number+1 {
		return fmt.Errorf("block is not the next number, got %d, exp %d: %w", b.Number, parent.Block.Number+1, ErrWrongParent)
	}

	if b.ParentHash != parent.Hash {
		return fmt.Errorf("got %s, exp %s: %w", b.ParentHash, parent.Hash, ErrWrongParent)
	}

	return b.ValidProof(difficulty, claimedHash)
}

// =============================================================================

// BlockData pairs a block with the hash it was accepted under. This is what
// the chain stores. The invariant is Hash == Block.Hash() for every accepted
// block.
type BlockData struct {
	Hash  string `json:"hash"`
	Block Block  `json:"block"`
}

// NewBlockData constructs the value to record in the chain by assigning the
// block its own hash. Use this only for blocks trusted by construction, an
// accepted candidate records the proof that was validated instead.
func NewBlockData(block Block) BlockData {
	return BlockData{
		Hash:  block.Hash(),
		Block: block,
	}
}
