package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

// chainCmd represents the chain command.
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Show the node's committed chain",
	Run: func(cmd *cobra.Command, args []string) {
		showChain()
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func showChain() {
	resp, err := http.Get(fmt.Sprintf("%s/v1/chain", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var blocks []blockView
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		log.Fatal(err)
	}

	renderChain(blocks)
}
