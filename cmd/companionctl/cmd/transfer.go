package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet_companion/internal/domain/entity"
	"wallet_companion/internal/infrastructure/restapi"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <recipient> <amount>",
	Short: "Send STX to another address (requires wallet approval)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		body := map[string]string{"recipient": args[0], "amount": args[1]}

		fmt.Println("Approve the transaction in your wallet...")
		var resp restapi.TransactionResponse
		if err := call("POST", "/api/v1/transfer", body, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.StatusMessage)
		if resp.Outcome.State == entity.TxStateSubmitted {
			fmt.Printf("Transaction: %s\n", resp.Outcome.TxID)
			fmt.Printf("Explorer: %s\n", resp.Outcome.ExplorerURL)
		}
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm the transfer parked by the chat assistant",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Approve the transaction in your wallet...")
		var resp restapi.ChatResponse
		if err := call("POST", "/api/v1/transfer/confirm", nil, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.Reply.Message)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel the transfer parked by the chat assistant",
	Run: func(cmd *cobra.Command, args []string) {
		var resp restapi.PendingTransferResponse
		if err := call("POST", "/api/v1/transfer/cancel", nil, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.StatusMessage)
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(cancelCmd)
}
