package fingerprint_test

import (
	"strings"
	"testing"

	"github.com/minichain/minichain/foundation/ledger/fingerprint"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestHash(t *testing.T) {
	type doc struct {
		Number uint64 `json:"number"`
		Data   string `json:"data"`
	}

	t.Log("Given the need to validate hashing is canonical.")
	{
		t.Logf("\tTest 0:\tWhen hashing the same value twice.")
		{
			v := doc{Number: 42, Data: "transfer"}

			h1 := fingerprint.Hash(v)
			h2 := fingerprint.Hash(v)

			if h1 != h2 {
				t.Fatalf("\t%s\tTest 0:\tShould get the same digest twice: %s != %s", failed, h1, h2)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same digest twice.", success)

			if len(h1) != 66 || !strings.HasPrefix(h1, "0x") {
				t.Fatalf("\t%s\tTest 0:\tShould get a 0x prefixed 64 character digest: %s", failed, h1)
			}
			t.Logf("\t%s\tTest 0:\tShould get a 0x prefixed 64 character digest.", success)
		}

		t.Logf("\tTest 1:\tWhen hashing two different values.")
		{
			h1 := fingerprint.Hash(doc{Number: 42, Data: "transfer"})
			h2 := fingerprint.Hash(doc{Number: 43, Data: "transfer"})

			if h1 == h2 {
				t.Fatalf("\t%s\tTest 1:\tShould get different digests: %s", failed, h1)
			}
			t.Logf("\t%s\tTest 1:\tShould get different digests.", success)
		}
	}
}

func TestSolved(t *testing.T) {
	type table struct {
		name       string
		difficulty uint
		hash       string
		solved     bool
	}

	tt := []table{
		{"threezeros", 3, "0x000" + strings.Repeat("a", 61), true},
		{"twozeros", 3, "0x00a" + strings.Repeat("a", 61), false},
		{"morezeros", 3, "0x00000" + strings.Repeat("a", 59), true},
		{"zerodifficulty", 0, "0x" + strings.Repeat("a", 64), true},
		{"short", 3, "0x000abc", false},
		{"zerohash", 3, fingerprint.ZeroHash, true},
	}

	t.Log("Given the need to validate the difficulty rule.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen checking hash %s at difficulty %d.", testID, tst.hash, tst.difficulty)
			{
				f := func(t *testing.T) {
					if got := fingerprint.Solved(tst.difficulty, tst.hash); got != tst.solved {
						t.Fatalf("\t%s\tTest %d:\tShould get %v for the solved check.", failed, testID, tst.solved)
					}
					t.Logf("\t%s\tTest %d:\tShould get %v for the solved check.", success, testID, tst.solved)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
