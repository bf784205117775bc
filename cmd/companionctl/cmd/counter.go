package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet_companion/internal/domain/entity"
	"wallet_companion/internal/infrastructure/restapi"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Read the counter contract value",
	Run: func(cmd *cobra.Command, args []string) {
		fresh, _ := cmd.Flags().GetBool("fresh")
		path := "/api/v1/counter"
		if fresh {
			path += "?fresh=true"
		}
		var resp restapi.CounterResponse
		if err := call("GET", path, nil, &resp); err != nil {
			fail(err)
		}
		fmt.Printf("Counter: %d\n", resp.Count)
	},
}

var incrementCmd = &cobra.Command{
	Use:   "increment",
	Short: "Increment the counter (requires wallet approval)",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Approve the transaction in your wallet...")
		var resp restapi.TransactionResponse
		if err := call("POST", "/api/v1/counter/increment", nil, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.StatusMessage)
		if resp.Outcome.State == entity.TxStateSubmitted {
			fmt.Printf("Transaction: %s\n", resp.Outcome.TxID)
			fmt.Printf("Explorer: %s\n", resp.Outcome.ExplorerURL)
		}
	},
}

func init() {
	countCmd.Flags().Bool("fresh", false, "bypass the gateway's read cache")
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(incrementCmd)
}
