package cmd

import (
	"github.com/pterm/pterm"
)

// txView is the API form of a transaction used for rendering.
type txView struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Data      string `json:"data"`
	Value     uint   `json:"value"`
	TimeStamp uint64 `json:"timestamp"`
}

// blockView is the API form of an accepted block used for rendering.
type blockView struct {
	Hash       string   `json:"hash"`
	Number     uint64   `json:"number"`
	ParentHash string   `json:"parent_hash"`
	TimeStamp  uint64   `json:"timestamp"`
	Nonce      uint64   `json:"nonce"`
	Trans      []txView `json:"trans"`
}

// renderChain prints one box per block, genesis first, so the parent hash
// linkage can be followed down the terminal.
func renderChain(blocks []blockView) {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)

	for _, blk := range blocks {
		title := pterm.LightYellow(pterm.Sprintf("| block %d |", blk.Number))

		body := pterm.Sprintfln("hash:   %s", blk.Hash)
		body += pterm.Sprintfln("parent: %s", blk.ParentHash)
		body += pterm.Sprintf("nonce:  %d", blk.Nonce)
		for _, tx := range blk.Trans {
			body += pterm.Sprintf("\n%s -> %s: %d  %s", pterm.LightCyan(tx.From), pterm.LightCyan(tx.To), tx.Value, tx.Data)
		}

		pbox.WithTitle(title).WithTitleTopCenter().Println(body)
	}
}
