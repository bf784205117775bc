package assistant

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/domain/entity"
	wire "wallet_companion/internal/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// clientImpl is the implementation of port.AssistantClient for the chat
// backend. All requests share one rate limiter so a chatty client cannot
// hammer the classification service.
type clientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a new assistant backend client.
func NewClient(baseURL string, timeout time.Duration, rateLimit float64, burst int, logger *zap.Logger) port.AssistantClient {
	return &clientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), burst),
		logger:  logger.Named("AssistantClient"),
	}
}

// do executes one request against the backend and unmarshals the 200 body
// into out. Non-200 statuses are returned as errors with the body included.
func (c *clientImpl) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	requestURL := c.baseURL + path

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body for %s: %w", requestURL, err)
		}
		req.SetBody(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to assistant backend", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to assistant backend (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Assistant backend request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return fmt.Errorf("assistant backend request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		c.logger.Error("Failed to unmarshal assistant backend response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
	}
	return nil
}

// Classify implements port.AssistantClient.
func (c *clientImpl) Classify(ctx context.Context, message string) (entity.Classification, error) {
	var resp wire.ChatResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/chat", wire.ChatRequest{Message: message}, &resp); err != nil {
		return entity.Classification{}, fmt.Errorf("%w: %v", entity.ErrClassificationUnavailable, err)
	}

	classification := entity.Classification{
		Intent:    entity.ParseIntent(resp.Action),
		Message:   resp.Message,
		Recipient: resp.Recipient,
		Amount:    resp.Amount,
		Address:   resp.Address,
	}
	c.logger.Debug("Classified message",
		zap.String("action", resp.Action),
		zap.String("intent", string(classification.Intent)))
	return classification, nil
}

// CounterValue implements port.AssistantClient. The backend reports the
// count as a JSON number; it is floored to an integer so large values never
// surface in scientific notation.
func (c *clientImpl) CounterValue(ctx context.Context) (int64, error) {
	var resp wire.CountResponse
	if err := c.do(ctx, fasthttp.MethodGet, "/get-count", nil, &resp); err != nil {
		return 0, err
	}
	return int64(math.Floor(resp.Count)), nil
}

// PrepareTransfer implements port.AssistantClient.
func (c *clientImpl) PrepareTransfer(ctx context.Context, sender, recipient string, amount decimal.Decimal) (wire.PrepareTransferResponse, error) {
	body := wire.PrepareTransferRequest{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount.String(),
	}
	var resp wire.PrepareTransferResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/prepare-transfer", body, &resp); err != nil {
		return wire.PrepareTransferResponse{}, err
	}
	if resp.Error != "" {
		return wire.PrepareTransferResponse{}, fmt.Errorf("backend refused to prepare transfer: %s", resp.Error)
	}
	return resp, nil
}

// AddressBalance implements port.AssistantClient.
func (c *clientImpl) AddressBalance(ctx context.Context, address string) (wire.BalanceResponse, error) {
	var resp wire.BalanceResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/get-balance", wire.BalanceRequest{Address: address}, &resp); err != nil {
		return wire.BalanceResponse{}, err
	}
	return resp, nil
}

// TransactionStatus implements port.AssistantClient.
func (c *clientImpl) TransactionStatus(ctx context.Context, txID string) (wire.TxStatusResponse, error) {
	var resp wire.TxStatusResponse
	if err := c.do(ctx, fasthttp.MethodPost, "/check-transaction", wire.TxStatusRequest{TxID: txID}, &resp); err != nil {
		return wire.TxStatusResponse{}, err
	}
	return resp, nil
}
