package cmd

import (
	"context"
	"time"

	"github.com/minichain/minichain/foundation/ledger/database"
	"github.com/minichain/minichain/foundation/ledger/genesis"
	"github.com/minichain/minichain/foundation/ledger/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	difficulty uint
	verbose    bool
)

// demoCmd runs the canned demonstration against an in-process chain: four
// transactions submitted and mined one at a time, then the full chain
// rendered.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the mining demo on an in-process chain",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().UintVarP(&difficulty, "difficulty", "d", genesis.DefaultDifficulty, "Leading zero characters required in a block hash.")
	demoCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the raw mining events.")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ev := func(v string, args ...any) {
		if verbose {
			pterm.Debug.Printfln(v, args...)
		}
	}

	st, err := state.New(state.Config{
		Genesis:   genesis.New(time.Now().UTC(), 1, difficulty),
		EvHandler: ev,
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	now := time.Now().UTC()
	trans := []database.Tx{
		database.NewTx(now, "kennedy", "pizzeria", "payment for one margherita", 8),
		database.NewTx(now, "pavel", "pizzeria", "payment for ten margheritas", 80),
		database.NewTx(now, "ceasar", "pizzeria", "payment for one diavola", 8),
		database.NewTx(now, "baba", "pizzeria", "payment for one quattro formaggi", 8),
	}

	spinner, _ := pterm.DefaultSpinner.Start("mining blocks...")
	for _, tx := range trans {
		st.SubmitTransaction(tx)

		blockData, err := st.MineNewBlock(context.Background())
		if err != nil {
			spinner.Fail(err.Error())
			return err
		}

		spinner.UpdateText(pterm.Sprintf("mined block %d with nonce %d", blockData.Block.Number, blockData.Block.Nonce))
	}
	spinner.Success("mined 4 blocks")

	blocks := make([]blockView, 0, 5)
	for _, blockData := range st.RetrieveChain() {
		blocks = append(blocks, toBlockView(blockData))
	}
	renderChain(blocks)

	return nil
}

// toBlockView converts an accepted block into the rendering form.
func toBlockView(blockData database.BlockData) blockView {
	trans := make([]txView, len(blockData.Block.Trans))
	for i, tx := range blockData.Block.Trans {
		trans[i] = txView{
			From:      tx.FromID,
			To:        tx.ToID,
			Data:      tx.Data,
			Value:     tx.Value,
			TimeStamp: tx.TimeStamp,
		}
	}

	return blockView{
		Hash:       blockData.Hash,
		Number:     blockData.Block.Number,
		ParentHash: blockData.Block.ParentHash,
		TimeStamp:  blockData.Block.TimeStamp,
		Nonce:      blockData.Block.Nonce,
		Trans:      trans,
	}
}
