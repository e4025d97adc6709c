package memory_test

import (
	"testing"
	"time"

	"github.com/minichain/minichain/foundation/ledger/database"
	"github.com/minichain/minichain/foundation/ledger/database/storage/memory"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestReadWrite(t *testing.T) {
	t.Log("Given the need to validate the in-memory storage engine.")
	{
		t.Logf("\tTest 0:\tWhen writing and iterating a chain of blocks.")
		{
			strg := memory.New()

			now := time.Date(2023, time.April, 1, 12, 0, 0, 0, time.UTC)
			genesis := database.NewBlockData(database.NewGenesisBlock(now))
			if err := strg.Write(genesis); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the genesis block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write the genesis block.", success)

			parent := genesis
			for i := 0; i < 3; i++ {
				block := database.NewBlock(now, parent, []database.Tx{database.NewTx(now, "a", "b", "", uint(i))})
				parent = database.NewBlockData(block)
				if err := strg.Write(parent); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to write block %d: %v", failed, i+1, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write the next three blocks.", success)

			var count uint64
			iter := strg.ForEach()
			for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to iterate the chain: %v", failed, err)
				}
				if blockData.Block.Number != count {
					t.Fatalf("\t%s\tTest 0:\tShould iterate in chain order, got %d, exp %d.", failed, blockData.Block.Number, count)
				}
				count++
			}
			if count != 4 {
				t.Fatalf("\t%s\tTest 0:\tShould iterate all 4 blocks, got %d.", failed, count)
			}
			t.Logf("\t%s\tTest 0:\tShould iterate all 4 blocks in chain order.", success)

			if _, err := strg.GetBlock(2); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to read block 2: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to read block 2.", success)

			if _, err := strg.GetBlock(9); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould get an error reading past the chain tip.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get an error reading past the chain tip.", success)
		}

		t.Logf("\tTest 1:\tWhen writing a block out of sequence.")
		{
			strg := memory.New()

			now := time.Date(2023, time.April, 1, 12, 0, 0, 0, time.UTC)
			genesis := database.NewBlockData(database.NewGenesisBlock(now))
			skipped := database.NewBlock(now, genesis, nil)
			skipped.Number = 5

			if err := strg.Write(database.NewBlockData(skipped)); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould reject a block out of sequence.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a block out of sequence.", success)
		}
	}
}
