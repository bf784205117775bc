package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet_companion/internal/domain/entity"
	"wallet_companion/internal/infrastructure/restapi"
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect a wallet through the wallet agent",
	Long:  `Asks the wallet agent to prompt for a connection and stores the session in the gateway. Blocks until the prompt is answered.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Waiting for the wallet prompt to be approved...")
		var resp restapi.WalletResponse
		if err := call("POST", "/api/v1/wallet/connect", nil, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.StatusMessage)
		if resp.Session.Connected {
			fmt.Printf("Address: %s\n", resp.Session.Address)
		}
	},
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect the wallet session",
	Run: func(cmd *cobra.Command, args []string) {
		var resp restapi.WalletResponse
		if err := call("POST", "/api/v1/wallet/disconnect", nil, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.StatusMessage)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the wallet session and balance",
	Run: func(cmd *cobra.Command, args []string) {
		var resp restapi.WalletResponse
		if err := call("GET", "/api/v1/wallet", nil, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.StatusMessage)
		if resp.Session.Connected {
			fmt.Printf("Address: %s\n", entity.ShortAddress(resp.Session.Address))
			if resp.Balance != nil {
				fmt.Printf("Balance: %s STX\n", resp.Balance.Display)
			} else {
				fmt.Println("Balance: (not fetched yet)")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(statusCmd)
}
