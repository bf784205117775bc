package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// WalletConnects counts connect attempts by result
	// (connected, rejected, failed).
	WalletConnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_companion_wallet_connects_total",
			Help: "Wallet connect attempts by result.",
		},
		[]string{"result"},
	)

	// BalanceFetches counts node balance reads by result (ok, error).
	BalanceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_companion_balance_fetches_total",
			Help: "Node balance fetches by result.",
		},
		[]string{"result"},
	)

	// Transactions counts terminal orchestrator outcomes by state
	// (submitted, cancelled, failed).
	Transactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_companion_transactions_total",
			Help: "Terminal transaction outcomes by state.",
		},
		[]string{"state"},
	)

	// ChatMessages counts classified chat messages by intent.
	ChatMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_companion_chat_messages_total",
			Help: "Chat messages by classified intent.",
		},
		[]string{"intent"},
	)

	// ChatClassifyDuration observes the classification round trip.
	ChatClassifyDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wallet_companion_chat_classify_duration_seconds",
			Help:    "Latency of assistant backend classification calls.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MustRegisterMetrics registers all gateway metrics with the default
// registry. Call once at startup.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		WalletConnects,
		BalanceFetches,
		Transactions,
		ChatMessages,
		ChatClassifyDuration,
	)
}
