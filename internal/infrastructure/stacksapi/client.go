package stacksapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"wallet_companion/internal/app/port"
	wire "wallet_companion/internal/entity"
	"wallet_companion/internal/pkg/stx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// clientImpl is the implementation of port.ChainClient for the Stacks node
// HTTP API.
type clientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a new Stacks node API client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) port.ChainClient {
	return &clientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("StacksAPIClient"),
	}
}

// GetAccountBalance implements port.ChainClient.
func (c *clientImpl) GetAccountBalance(ctx context.Context, address string) (uint64, error) {
	if address == "" {
		return 0, fmt.Errorf("address cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/v2/accounts/%s?proof=0", c.baseURL, address)
	c.logger.Debug("Requesting account state from node", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to node", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to node (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return 0, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Node API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return 0, fmt.Errorf("node API request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	var account wire.AccountResponse
	if err := json.Unmarshal(rawBody, &account); err != nil {
		c.logger.Error("Failed to unmarshal node account response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to unmarshal account response from %s: %w", requestURL, err)
	}

	micro, err := stx.ParseMicro(account.Balance)
	if err != nil {
		return 0, fmt.Errorf("node returned unparseable balance for %s: %w", address, err)
	}

	c.logger.Debug("Fetched account balance",
		zap.String("address", address),
		zap.Uint64("microStx", micro))
	return micro, nil
}
