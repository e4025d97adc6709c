package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

// mineCmd represents the mine command.
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions into a new block",
	Run: func(cmd *cobra.Command, args []string) {
		mineBlock()
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineBlock() {
	resp, err := http.Post(fmt.Sprintf("%s/v1/mine", url), "application/json", nil)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errResp := struct {
			Error string `json:"error"`
		}{}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			log.Fatal(err)
		}
		log.Fatalf("mine: %s", errResp.Error)
	}

	result := struct {
		Status string `json:"status"`
		Number uint64 `json:"number"`
		Hash   string `json:"hash"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: block %d, hash %s\n", result.Status, result.Number, result.Hash)
}
