package state_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minichain/minichain/foundation/ledger/database"
	"github.com/minichain/minichain/foundation/ledger/genesis"
	"github.com/minichain/minichain/foundation/ledger/state"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// Low difficulty keeps the nonce searches fast.
const testDifficulty = 1

// newChain constructs a chain with a fixed clock so every hash in the test
// is reproducible.
func newChain(t *testing.T) *state.State {
	now := time.Date(2023, time.April, 1, 12, 0, 0, 0, time.UTC)

	st, err := state.New(state.Config{
		Genesis: genesis.New(now, 1, testDifficulty),
		Clock:   func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the chain: %v", failed, err)
	}

	return st
}

func TestGenesis(t *testing.T) {
	t.Log("Given the need to validate a new chain starts from genesis.")
	{
		t.Logf("\tTest 0:\tWhen constructing a chain.")
		{
			st := newChain(t)
			defer st.Shutdown()

			chain := st.RetrieveChain()
			if len(chain) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould have a chain of length 1, got %d.", failed, len(chain))
			}
			t.Logf("\t%s\tTest 0:\tShould have a chain of length 1.", success)

			tip := st.RetrieveLatestBlock()
			if tip.Hash != tip.Block.Hash() {
				t.Fatalf("\t%s\tTest 0:\tShould have a genesis block that stores its own content hash.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have a genesis block that stores its own content hash.", success)

			if st.MempoolCount() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have an empty mempool, got %d.", failed, st.MempoolCount())
			}
			t.Logf("\t%s\tTest 0:\tShould have an empty mempool.", success)
		}
	}
}

func TestMineEmptyPool(t *testing.T) {
	t.Log("Given the need to validate mining with nothing to mine.")
	{
		t.Logf("\tTest 0:\tWhen calling mine on an empty mempool.")
		{
			st := newChain(t)
			defer st.Shutdown()

			if _, err := st.MineNewBlock(context.Background()); !errors.Is(err, state.ErrNoTransactions) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrNoTransactions: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrNoTransactions.", success)

			if len(st.RetrieveChain()) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain unchanged.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain unchanged.", success)
		}
	}
}

func TestEndToEnd(t *testing.T) {
	now := time.Date(2023, time.April, 1, 12, 0, 0, 0, time.UTC)

	t.Log("Given the need to validate the full submit and mine cycle.")
	{
		st := newChain(t)
		defer st.Shutdown()

		genesisBlock := st.RetrieveLatestBlock()

		t.Logf("\tTest 0:\tWhen mining a single transaction.")
		{
			st.SubmitTransaction(database.NewTx(now, "A", "B", "first", 8))

			blockData, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

			if l := len(st.RetrieveChain()); l != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have a chain of length 2, got %d.", failed, l)
			}
			t.Logf("\t%s\tTest 0:\tShould have a chain of length 2.", success)

			if st.MempoolCount() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould have an empty mempool after mining, got %d.", failed, st.MempoolCount())
			}
			t.Logf("\t%s\tTest 0:\tShould have an empty mempool after mining.", success)

			if blockData.Block.ParentHash != genesisBlock.Hash {
				t.Fatalf("\t%s\tTest 0:\tShould reference the genesis hash as parent.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reference the genesis hash as parent.", success)
		}

		t.Logf("\tTest 1:\tWhen mining two pending transactions at once.")
		{
			tx2 := database.NewTx(now, "B", "C", "second", 3)
			tx3 := database.NewTx(now, "C", "A", "third", 5)
			st.SubmitTransaction(tx2)
			st.SubmitTransaction(tx3)

			blockData, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould be able to mine a block.", success)

			if l := len(st.RetrieveChain()); l != 3 {
				t.Fatalf("\t%s\tTest 1:\tShould have a chain of length 3, got %d.", failed, l)
			}
			t.Logf("\t%s\tTest 1:\tShould have a chain of length 3.", success)

			trans := blockData.Block.Trans
			if len(trans) != 2 || trans[0] != tx2 || trans[1] != tx3 {
				t.Fatalf("\t%s\tTest 1:\tShould carry both transactions in submission order.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould carry both transactions in submission order.", success)
		}

		t.Logf("\tTest 2:\tWhen retrieving a single block by number.")
		{
			blockData, err := st.RetrieveBlock(1)
			if err != nil {
				t.Fatalf("\t%s\tTest 2:\tShould be able to retrieve block 1: %v", failed, err)
			}
			if blockData.Block.Number != 1 {
				t.Fatalf("\t%s\tTest 2:\tShould retrieve block number 1, got %d.", failed, blockData.Block.Number)
			}
			t.Logf("\t%s\tTest 2:\tShould be able to retrieve block 1.", success)

			if _, err := st.RetrieveBlock(99); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould get an error retrieving past the chain tip.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould get an error retrieving past the chain tip.", success)
		}

		t.Logf("\tTest 3:\tWhen walking the committed chain.")
		{
			chain := st.RetrieveChain()
			for i := 1; i < len(chain); i++ {
				if chain[i].Block.ParentHash != chain[i-1].Hash {
					t.Fatalf("\t%s\tTest 3:\tShould link block %d to its parent hash.", failed, i)
				}
				if chain[i].Block.Number != chain[i-1].Block.Number+1 {
					t.Fatalf("\t%s\tTest 3:\tShould number block %d as parent plus one.", failed, i)
				}
				if chain[i].Hash != chain[i].Block.Hash() {
					t.Fatalf("\t%s\tTest 3:\tShould store the content hash of block %d.", failed, i)
				}
			}
			t.Logf("\t%s\tTest 3:\tShould have every block linked to its parent.", success)
		}
	}
}

func TestLateSubmissionStaysPooled(t *testing.T) {
	now := time.Date(2023, time.April, 1, 12, 0, 0, 0, time.UTC)
	late := database.NewTx(now, "baba", "pizzeria", "one quattro formaggi", 8)

	t.Log("Given the need to validate a transaction submitted while mining is not lost.")
	{
		t.Logf("\tTest 0:\tWhen a transaction arrives after the mining snapshot was taken.")
		{
			// The event stream reports the acceptance step after the proof
			// of work completed, which lands a submission inside the window
			// between the pool snapshot and the pool cleanup.
			var st *state.State
			var once sync.Once
			ev := func(v string, args ...any) {
				if strings.Contains(v, "accept block") {
					once.Do(func() { st.SubmitTransaction(late) })
				}
			}

			st, err := state.New(state.Config{
				Genesis:   genesis.New(now, 1, testDifficulty),
				Clock:     func() time.Time { return now },
				EvHandler: ev,
			})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the chain: %v", failed, err)
			}
			defer st.Shutdown()

			st.SubmitTransaction(database.NewTx(now, "kennedy", "pizzeria", "one margherita", 8))

			blockData, err := st.MineNewBlock(context.Background())
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to mine a block: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to mine a block.", success)

			for _, tx := range blockData.Block.Trans {
				if tx == late {
					t.Fatalf("\t%s\tTest 0:\tShould not carry the late transaction in the mined block.", failed)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould not carry the late transaction in the mined block.", success)

			pool := st.RetrieveMempool()
			if len(pool) != 1 || pool[0] != late {
				t.Fatalf("\t%s\tTest 0:\tShould keep the late transaction pending, pool count %d.", failed, len(pool))
			}
			t.Logf("\t%s\tTest 0:\tShould keep the late transaction pending.", success)
		}
	}
}

func TestAcceptBlockRejection(t *testing.T) {
	now := time.Date(2023, time.April, 1, 12, 0, 0, 0, time.UTC)
	noEvents := func(v string, args ...any) {}

	t.Log("Given the need to validate the chain rejects bad blocks unchanged.")
	{
		t.Logf("\tTest 0:\tWhen accepting a block with a tampered parent hash.")
		{
			st := newChain(t)
			defer st.Shutdown()

			candidate := database.NewBlock(now, st.RetrieveLatestBlock(), []database.Tx{database.NewTx(now, "A", "B", "", 1)})
			candidate.ParentHash = database.NewBlockData(database.NewGenesisBlock(now.Add(time.Hour))).Hash

			block, proof, err := candidate.Solve(context.Background(), testDifficulty, noEvents)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to solve the block: %v", failed, err)
			}

			if err := st.AcceptBlock(block, proof); !errors.Is(err, database.ErrWrongParent) {
				t.Fatalf("\t%s\tTest 0:\tShould get ErrWrongParent: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould get ErrWrongParent.", success)

			if len(st.RetrieveChain()) != 1 {
				t.Fatalf("\t%s\tTest 0:\tShould leave the chain unchanged.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould leave the chain unchanged.", success)
		}

		t.Logf("\tTest 1:\tWhen accepting a block with an invalid proof.")
		{
			st := newChain(t)
			defer st.Shutdown()

			candidate := database.NewBlock(now, st.RetrieveLatestBlock(), []database.Tx{database.NewTx(now, "A", "B", "", 1)})

			block, proof, err := candidate.Solve(context.Background(), testDifficulty, noEvents)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to solve the block: %v", failed, err)
			}

			block.Trans[0].Value = 9_999

			if err := st.AcceptBlock(block, proof); !errors.Is(err, database.ErrInvalidProof) {
				t.Fatalf("\t%s\tTest 1:\tShould get ErrInvalidProof: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get ErrInvalidProof.", success)

			if len(st.RetrieveChain()) != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould leave the chain unchanged.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould leave the chain unchanged.", success)
		}
	}
}
