package cmd

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var gatewayURL string

var rootCmd = &cobra.Command{
	Use:   "companionctl",
	Short: "CLI for the wallet companion gateway",
	Long: `companionctl talks to a running wallet companion gateway: connect a
wallet, read the counter contract, chat with the assistant and send STX
transfers from the terminal.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "http://localhost:8085", "base URL of the gateway")
}

// call performs one request against the gateway and decodes the JSON body
// into out. Wallet-driven endpoints can block on user prompts, so the
// timeout is generous.
func call(method, path string, body, out any) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(gatewayURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		req.SetBody(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	client := &fasthttp.Client{}
	if err := client.DoTimeout(req, resp, 6*time.Minute); err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}

	if resp.StatusCode() >= 400 {
		var body struct {
			StatusMessage string `json:"status_message"`
		}
		if err := json.Unmarshal(resp.Body(), &body); err == nil && body.StatusMessage != "" {
			return fmt.Errorf("%s", body.StatusMessage)
		}
		return fmt.Errorf("gateway returned status %d for %s", resp.StatusCode(), path)
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// fail prints the error and exits non-zero.
func fail(err error) {
	fmt.Printf("Error: %v\n", err)
	os.Exit(1)
}
