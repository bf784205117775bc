package walletagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/domain/entity"
	wire "wallet_companion/internal/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// clientImpl implements port.WalletAgent over the wallet agent's HTTP API.
// The agent proxies a real wallet: both endpoints hold the request open
// until the user acts on the prompt, so the timeouts here are generous and
// distinct from ordinary API timeouts.
type clientImpl struct {
	client          *fasthttp.Client
	baseURL         string
	network         string
	connectTimeout  time.Duration
	approvalTimeout time.Duration
	logger          *zap.Logger
}

// NewClient creates a new wallet agent client.
func NewClient(baseURL, network string, connectTimeout, approvalTimeout time.Duration, logger *zap.Logger) port.WalletAgent {
	return &clientImpl{
		client:          &fasthttp.Client{},
		baseURL:         strings.TrimRight(baseURL, "/"),
		network:         network,
		connectTimeout:  connectTimeout,
		approvalTimeout: approvalTimeout,
		logger:          logger.Named("WalletAgentClient"),
	}
}

func (c *clientImpl) do(ctx context.Context, path string, timeout time.Duration, body, out any) (int, []byte, error) {
	requestURL := c.baseURL + path

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body for %s: %w", requestURL, err)
		}
		req.SetBody(payload)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, timeout); err != nil {
			return 0, nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := append([]byte(nil), resp.Body()...)
	status := resp.StatusCode()
	if status == fasthttp.StatusOK && out != nil {
		if err := json.Unmarshal(rawBody, out); err != nil {
			return status, rawBody, fmt.Errorf("failed to unmarshal response from %s: %w", requestURL, err)
		}
	}
	return status, rawBody, nil
}

// Connect implements port.WalletAgent. A 403 from the agent means the user
// dismissed or rejected the connect prompt.
func (c *clientImpl) Connect(ctx context.Context) ([]entity.WalletAddress, error) {
	var resp wire.ConnectResponse
	status, rawBody, err := c.do(ctx, "/connect", c.connectTimeout, nil, &resp)
	if err != nil {
		c.logger.Error("Wallet connect request failed", zap.Error(err))
		return nil, err
	}
	if status == fasthttp.StatusForbidden {
		c.logger.Info("Wallet connect rejected by user")
		return nil, entity.ErrConnectionRejected
	}
	if status != fasthttp.StatusOK {
		c.logger.Error("Wallet agent connect failed",
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", rawBody))
		return nil, fmt.Errorf("wallet agent connect failed with status %d: %s", status, string(rawBody))
	}

	addresses := make([]entity.WalletAddress, 0, len(resp.Addresses))
	for _, a := range resp.Addresses {
		addresses = append(addresses, entity.WalletAddress{Symbol: a.Symbol, Address: a.Address})
	}
	c.logger.Info("Wallet connected", zap.Int("addressCount", len(addresses)))
	return addresses, nil
}

// RequestContractCall implements port.WalletAgent.
func (c *clientImpl) RequestContractCall(ctx context.Context, req entity.TransactionRequest) (string, error) {
	args := make([]wire.ContractCallArg, 0, len(req.Args))
	for _, a := range req.Args {
		args = append(args, wire.ContractCallArg{Type: string(a.Type), Value: a.Value})
	}
	body := wire.ContractCallRequest{
		ContractAddress:   req.ContractAddress,
		ContractName:      req.ContractName,
		FunctionName:      req.FunctionName,
		Args:              args,
		Network:           c.network,
		PostConditionMode: "allow",
	}

	var resp wire.ContractCallResponse
	status, rawBody, err := c.do(ctx, "/contract-call", c.approvalTimeout, body, &resp)
	if err != nil {
		c.logger.Error("Contract call request failed",
			zap.String("contract", req.ContractPrincipal()),
			zap.String("function", req.FunctionName),
			zap.Error(err))
		return "", err
	}
	if status != fasthttp.StatusOK {
		c.logger.Error("Wallet agent contract call failed",
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", rawBody))
		return "", fmt.Errorf("wallet agent contract call failed with status %d: %s", status, string(rawBody))
	}
	if !resp.Finished {
		c.logger.Info("Contract call cancelled by user",
			zap.String("contract", req.ContractPrincipal()),
			zap.String("function", req.FunctionName))
		return "", entity.ErrTransactionCancelled
	}

	c.logger.Info("Contract call submitted",
		zap.String("contract", req.ContractPrincipal()),
		zap.String("function", req.FunctionName),
		zap.String("txId", resp.TxID))
	return resp.TxID, nil
}
