package assistant

import (
	"context"
	stdjson "encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wallet_companion/internal/domain/entity"
	wire "wallet_companion/internal/entity"
)

func newTestClient(serverURL string) *clientImpl {
	return NewClient(serverURL, time.Second, 100, 100, zap.NewNop()).(*clientImpl)
}

func TestClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		body, _ := io.ReadAll(r.Body)
		var req wire.ChatRequest
		require.NoError(t, stdjson.Unmarshal(body, &req))
		assert.Equal(t, "send 2 stx to bob", req.Message)

		_, _ = w.Write([]byte(`{"action":"transfer","message":"Confirm?","recipient":"SP2...","amount":"2"}`))
	}))
	defer server.Close()

	c, err := newTestClient(server.URL).Classify(context.Background(), "send 2 stx to bob")
	require.NoError(t, err)
	assert.Equal(t, entity.IntentTransfer, c.Intent)
	assert.Equal(t, "Confirm?", c.Message)
	assert.Equal(t, "SP2...", c.Recipient)
	assert.Equal(t, "2", c.Amount)
}

func TestClassifyUnknownActionMapsToNone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"action":"deploy-contract","message":"I cannot do that."}`))
	}))
	defer server.Close()

	c, err := newTestClient(server.URL).Classify(context.Background(), "deploy my contract")
	require.NoError(t, err)
	assert.Equal(t, entity.IntentNone, c.Intent)
	assert.Equal(t, "I cannot do that.", c.Message)
}

func TestClassifyBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Classify(context.Background(), "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestCounterValueFloorsFloat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-count", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"count":41.999}`))
	}))
	defer server.Close()

	count, err := newTestClient(server.URL).CounterValue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(41), count)
}

func TestPrepareTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prepare-transfer", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req wire.PrepareTransferRequest
		require.NoError(t, stdjson.Unmarshal(body, &req))
		assert.Equal(t, "1.5", req.Amount)

		_, _ = w.Write([]byte(`{"contract_address":"ST3AQ7KXWA7KGQ67EX2MFYR1E3231B9S4KY6EFB1R","contract_name":"traspaso-v2","function_name":"transfer-stx"}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).PrepareTransfer(context.Background(), "ST3...", "SP2...", decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, "traspaso-v2", resp.ContractName)
	assert.Equal(t, "transfer-stx", resp.FunctionName)
}

func TestPrepareTransferRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"insufficient balance"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).PrepareTransfer(context.Background(), "ST3...", "SP2...", decimal.NewFromInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient balance")
}

func TestAddressBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get-balance", r.URL.Path)
		_, _ = w.Write([]byte(`{"address":"SP2...","balance":"12.000000","balance_microstx":"12000000","message":"That address holds 12.000000 STX."}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).AddressBalance(context.Background(), "SP2...")
	require.NoError(t, err)
	assert.Equal(t, "That address holds 12.000000 STX.", resp.Message)
}

func TestTransactionStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check-transaction", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"pending","explorer_url":"https://explorer.hiro.so/txid/0x1?chain=testnet","message":"Still in the mempool."}`))
	}))
	defer server.Close()

	resp, err := newTestClient(server.URL).TransactionStatus(context.Background(), "0x1")
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Still in the mempool.", resp.Message)
}
