package restapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wallet_companion/internal/app/port"
	"wallet_companion/internal/app/service"
	"wallet_companion/internal/config"
	"wallet_companion/internal/domain/entity"
	"wallet_companion/internal/pkg/stx"
)

// Handler carries the service ports consumed by the REST surface. All
// user-visible failure text is produced here; the services below return only
// typed errors.
type Handler struct {
	session      port.SessionService
	counter      port.CounterService
	orchestrator port.Orchestrator
	transfer     port.TransferService
	chat         port.ChatService
	contracts    config.ContractsConfig
}

// NewHandler creates a new Handler instance.
func NewHandler(
	session port.SessionService,
	counter port.CounterService,
	orchestrator port.Orchestrator,
	transfer port.TransferService,
	chat port.ChatService,
	contracts config.ContractsConfig,
) *Handler {
	return &Handler{
		session:      session,
		counter:      counter,
		orchestrator: orchestrator,
		transfer:     transfer,
		chat:         chat,
		contracts:    contracts,
	}
}

// WalletResponse is the envelope for wallet state endpoints.
type WalletResponse struct {
	Session       entity.WalletSession `json:"session"`
	Balance       *entity.Balance      `json:"balance,omitempty"`
	StatusMessage string               `json:"status_message"`
}

// CounterResponse is the envelope for the counter read endpoint.
type CounterResponse struct {
	Count         int64  `json:"count"`
	StatusMessage string `json:"status_message"`
}

// TransactionResponse is the envelope for endpoints that drive the
// transaction slot.
type TransactionResponse struct {
	Outcome       entity.TransactionOutcome `json:"outcome"`
	StatusMessage string                    `json:"status_message"`
}

// ChatResponse is the envelope for the chat endpoint.
type ChatResponse struct {
	Reply entity.ChatReply `json:"reply"`
}

// PendingTransferResponse is the envelope for the pending-transfer read.
type PendingTransferResponse struct {
	Pending       *entity.PendingTransfer `json:"pending"`
	StatusMessage string                  `json:"status_message"`
}

type errorResponse struct {
	StatusMessage string `json:"status_message"`
}

// ConnectWalletHandler handles POST /wallet/connect.
func (h *Handler) ConnectWalletHandler(c *gin.Context) {
	session, err := h.session.Connect(c.Request.Context())
	if err != nil {
		status, msg := presentError(err)
		c.JSON(status, errorResponse{StatusMessage: msg})
		return
	}
	c.JSON(http.StatusOK, WalletResponse{
		Session:       session,
		Balance:       h.session.Balance(),
		StatusMessage: "Wallet connected.",
	})
}

// DisconnectWalletHandler handles POST /wallet/disconnect.
func (h *Handler) DisconnectWalletHandler(c *gin.Context) {
	h.session.Disconnect()
	c.JSON(http.StatusOK, WalletResponse{
		Session:       entity.WalletSession{},
		StatusMessage: "Wallet disconnected.",
	})
}

// GetWalletHandler handles GET /wallet.
func (h *Handler) GetWalletHandler(c *gin.Context) {
	session := h.session.Session()
	msg := "Wallet is not connected."
	if session.Connected {
		msg = "Wallet is connected."
	}
	c.JSON(http.StatusOK, WalletResponse{
		Session:       session,
		Balance:       h.session.Balance(),
		StatusMessage: msg,
	})
}

// RefreshBalanceHandler handles POST /wallet/balance/refresh. An explicit
// refresh always goes to the node, never the read cache.
func (h *Handler) RefreshBalanceHandler(c *gin.Context) {
	balance, err := h.session.RefreshBalance(c.Request.Context(), true)
	if err != nil {
		status, msg := presentError(err)
		c.JSON(status, errorResponse{StatusMessage: msg})
		return
	}
	c.JSON(http.StatusOK, WalletResponse{
		Session:       h.session.Session(),
		Balance:       &balance,
		StatusMessage: "Balance refreshed.",
	})
}

// GetCounterHandler handles GET /counter. ?fresh=true bypasses the read
// cache.
func (h *Handler) GetCounterHandler(c *gin.Context) {
	fresh := c.Query("fresh") == "true"
	count, err := h.counter.Count(c.Request.Context(), fresh)
	if err != nil {
		c.JSON(http.StatusBadGateway, errorResponse{StatusMessage: "Failed to read the counter value."})
		return
	}
	c.JSON(http.StatusOK, CounterResponse{
		Count:         count,
		StatusMessage: "Counter value retrieved.",
	})
}

// IncrementCounterHandler handles POST /counter/increment.
func (h *Handler) IncrementCounterHandler(c *gin.Context) {
	outcome, err := h.orchestrator.Execute(c.Request.Context(), service.IncrementRequest(h.contracts), port.RefetchCounter)
	h.respondOutcome(c, outcome, err, "Transaction submitted! The counter will update shortly.")
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatHandler handles POST /chat. The reply never carries a transport
// error; classification failures degrade to a fallback message.
func (h *Handler) ChatHandler(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, errorResponse{StatusMessage: "A non-empty message is required."})
		return
	}
	reply := h.chat.SendMessage(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

type transferRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// TransferHandler handles POST /transfer: the direct, form-based path.
func (h *Handler) TransferHandler(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{StatusMessage: "Invalid transfer request body."})
		return
	}

	amount, err := stx.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{StatusMessage: "The amount must be a valid STX value."})
		return
	}

	outcome, err := h.transfer.Transfer(c.Request.Context(), req.Recipient, amount)
	h.respondOutcome(c, outcome, err, "Transfer submitted!")
}

// GetPendingTransferHandler handles GET /transfer/pending.
func (h *Handler) GetPendingTransferHandler(c *gin.Context) {
	pending := h.transfer.Pending()
	msg := "No transfer awaiting confirmation."
	if pending != nil {
		msg = "A transfer is awaiting confirmation."
	}
	c.JSON(http.StatusOK, PendingTransferResponse{Pending: pending, StatusMessage: msg})
}

// ConfirmTransferHandler handles POST /transfer/confirm.
func (h *Handler) ConfirmTransferHandler(c *gin.Context) {
	reply, err := h.transfer.Confirm(c.Request.Context())
	if err != nil && reply.Message == "" {
		status, msg := presentError(err)
		c.JSON(status, errorResponse{StatusMessage: msg})
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

// CancelTransferHandler handles POST /transfer/cancel.
func (h *Handler) CancelTransferHandler(c *gin.Context) {
	h.transfer.Cancel()
	c.JSON(http.StatusOK, PendingTransferResponse{
		Pending:       nil,
		StatusMessage: "Pending transfer cancelled.",
	})
}

// GetTransactionHandler handles GET /transaction: the latest outcome
// snapshot of the transaction slot.
func (h *Handler) GetTransactionHandler(c *gin.Context) {
	outcome := h.orchestrator.Outcome()
	c.JSON(http.StatusOK, TransactionResponse{
		Outcome:       outcome,
		StatusMessage: "Latest transaction state retrieved.",
	})
}

// HealthHandler handles GET /health.
func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) respondOutcome(c *gin.Context, outcome entity.TransactionOutcome, err error, successMessage string) {
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrTransactionCancelled):
			c.JSON(http.StatusOK, TransactionResponse{
				Outcome:       outcome,
				StatusMessage: "Transaction cancelled by user.",
			})
		case errors.Is(err, entity.ErrSubmissionFailed):
			c.JSON(http.StatusBadGateway, TransactionResponse{
				Outcome:       outcome,
				StatusMessage: "The transaction could not be submitted.",
			})
		default:
			status, msg := presentError(err)
			c.JSON(status, errorResponse{StatusMessage: msg})
		}
		return
	}
	c.JSON(http.StatusOK, TransactionResponse{
		Outcome:       outcome,
		StatusMessage: successMessage,
	})
}

// presentError maps the typed failure taxonomy to an HTTP status and
// user-visible text. This is the only presentation seam for errors.
func presentError(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrConnectionRejected):
		return http.StatusForbidden, "Wallet connection was rejected."
	case errors.Is(err, entity.ErrNotConnected):
		return http.StatusConflict, "You need to connect your wallet first."
	case errors.Is(err, entity.ErrTransactionInFlight):
		return http.StatusConflict, "Another transaction is still awaiting approval."
	case errors.Is(err, entity.ErrNoPendingTransfer):
		return http.StatusConflict, "There is no transfer awaiting confirmation."
	case errors.Is(err, entity.ErrInvalidRecipient):
		return http.StatusBadRequest, "A valid recipient address is required."
	case errors.Is(err, entity.ErrInvalidAmount):
		return http.StatusBadRequest, "The amount must be greater than 0."
	case errors.Is(err, entity.ErrNetworkUnavailable):
		return http.StatusBadGateway, "The network is currently unavailable. Please try again."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}
