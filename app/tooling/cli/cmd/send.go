package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	from  string
	to    string
	data  string
	value uint
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the node's mempool",
	Run: func(cmd *cobra.Command, args []string) {
		sendTransaction()
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Party the value is moving from.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Party the value is moving to.")
	sendCmd.Flags().StringVarP(&data, "data", "d", "", "Payload to carry with the transfer.")
	sendCmd.Flags().UintVarP(&value, "value", "v", 0, "Value to send.")
}

func sendTransaction() {
	tx := struct {
		From  string `json:"from"`
		To    string `json:"to"`
		Data  string `json:"data"`
		Value uint   `json:"value"`
	}{
		From:  from,
		To:    to,
		Data:  data,
		Value: value,
	}

	payload, err := json.Marshal(tx)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/tx/submit", url), "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	result := struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s, %d pending\n", result.Status, result.Pending)
}
