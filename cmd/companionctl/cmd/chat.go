package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wallet_companion/internal/infrastructure/restapi"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a natural-language message to the assistant",
	Long: `Sends free text to the assistant backend. Depending on the classified
intent the gateway reads the counter, submits an increment, looks up a
balance, or parks a transfer for confirmation.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := strings.Join(args, " ")
		body := map[string]string{"message": message}

		var resp restapi.ChatResponse
		if err := call("POST", "/api/v1/chat", body, &resp); err != nil {
			fail(err)
		}
		fmt.Println(resp.Reply.Message)
		if resp.Reply.AwaitingConfirmation {
			fmt.Println("Run 'companionctl confirm' to proceed or 'companionctl cancel' to abort.")
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
