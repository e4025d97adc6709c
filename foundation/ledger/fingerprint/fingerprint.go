// Package fingerprint provides support for hashing the canonical form of
// ledger values and for checking a hash against the proof of work rules.
package fingerprint

import (
	"crypto/sha256"
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ZeroHash represents a hash code of zeros. It is the parent hash for the
// genesis block.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// Hash returns a unique string for the value. The value is serialized to its
// canonical JSON form first so two logically identical values always produce
// the same digest. Struct field order is fixed at compile time, which keeps
// the serialization deterministic.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// Solved checks the hash to make sure it complies with the POW rules. We
// need to match a difficulty number of 0's. The 0x prefix is not part of
// the digest and is skipped.
func Solved(difficulty uint, hash string) bool {
	if len(hash) != 66 {
		return false
	}

	return strings.HasPrefix(hash[2:], strings.Repeat("0", int(difficulty)))
}
