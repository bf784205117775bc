package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the gateway.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Network      NetworkConfig      `yaml:"network"`
	WalletAgent  WalletAgentConfig  `yaml:"walletAgent"`
	Assistant    AssistantConfig    `yaml:"assistant"`
	Contracts    ContractsConfig    `yaml:"contracts"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	Counter      CounterConfig      `yaml:"counter"`
	Cache        CacheConfig        `yaml:"cache"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// NetworkConfig holds the Stacks node and explorer endpoints.
type NetworkConfig struct {
	Name                 string `yaml:"name"` // "testnet" or "mainnet"
	NodeBaseURL          string `yaml:"nodeBaseURL"`
	ExplorerBaseURL      string `yaml:"explorerBaseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// WalletAgentConfig holds the wallet agent endpoint. Approval prompts block
// on user action, so the timeout is much longer than a plain HTTP read.
type WalletAgentConfig struct {
	BaseURL               string `yaml:"baseURL"`
	ConnectTimeoutMillis  int64  `yaml:"connectTimeoutMillis"`
	ApprovalTimeoutMillis int64  `yaml:"approvalTimeoutMillis"`
}

// AssistantConfig holds the chat classification backend endpoint.
type AssistantConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimit            float64 `yaml:"rateLimit"`
	BurstLimit           int     `yaml:"burstLimit"`
}

// ContractConfig identifies one deployed contract.
type ContractConfig struct {
	Address string `yaml:"address"`
	Name    string `yaml:"name"`
}

// ContractsConfig holds the counter and transfer contracts.
type ContractsConfig struct {
	Counter  ContractConfig `yaml:"counter"`
	Transfer ContractConfig `yaml:"transfer"`
}

// OrchestratorConfig holds transaction lifecycle tuning.
type OrchestratorConfig struct {
	// RefetchDelayMillis is the fixed delay before the post-submit
	// convergence re-fetch of the counter or balance.
	RefetchDelayMillis int64 `yaml:"refetchDelayMillis"`
}

// CounterConfig holds the background counter poller settings.
type CounterConfig struct {
	PollingEnabled        bool  `yaml:"pollingEnabled"`
	PollingIntervalMillis int64 `yaml:"pollingIntervalMillis"`
}

// CacheConfig holds TTLs for the balance and counter read caches.
type CacheConfig struct {
	BalanceTTLSeconds      int `yaml:"balanceTTLSeconds"`
	CounterTTLSeconds      int `yaml:"counterTTLSeconds"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// LoadConfig loads configuration from a YAML file and applies defaults for
// anything left unset.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// ApplyDefaults fills every unset field with its default. The contract and
// endpoint defaults match the testnet deployment the gateway was built
// against, so an empty file yields a working testnet configuration.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8085"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	// Wallet prompts block until the user acts, so responses can take
	// minutes; the write timeout must outlive the approval timeout.
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 360
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Network.Name == "" {
		cfg.Network.Name = "testnet"
	}
	if cfg.Network.NodeBaseURL == "" {
		cfg.Network.NodeBaseURL = "https://api.testnet.hiro.so"
		logrus.Infof("Network.NodeBaseURL not set, defaulting to %s", cfg.Network.NodeBaseURL)
	}
	if cfg.Network.ExplorerBaseURL == "" {
		cfg.Network.ExplorerBaseURL = "https://explorer.hiro.so"
	}
	if cfg.Network.RequestTimeoutMillis == 0 {
		cfg.Network.RequestTimeoutMillis = 10000
	}

	if cfg.WalletAgent.BaseURL == "" {
		cfg.WalletAgent.BaseURL = "http://localhost:8777"
		logrus.Infof("WalletAgent.BaseURL not set, defaulting to %s", cfg.WalletAgent.BaseURL)
	}
	if cfg.WalletAgent.ConnectTimeoutMillis == 0 {
		cfg.WalletAgent.ConnectTimeoutMillis = 120000
	}
	if cfg.WalletAgent.ApprovalTimeoutMillis == 0 {
		cfg.WalletAgent.ApprovalTimeoutMillis = 300000
	}

	if cfg.Assistant.BaseURL == "" {
		cfg.Assistant.BaseURL = "http://localhost:5000"
		logrus.Infof("Assistant.BaseURL not set, defaulting to %s", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.RequestTimeoutMillis == 0 {
		cfg.Assistant.RequestTimeoutMillis = 10000
	}
	if cfg.Assistant.RateLimit == 0 {
		cfg.Assistant.RateLimit = 5
	}
	if cfg.Assistant.BurstLimit == 0 {
		cfg.Assistant.BurstLimit = 10
	}

	if cfg.Contracts.Counter.Address == "" {
		cfg.Contracts.Counter.Address = "ST3MHY0Z6DK6KC137X9XZQ4R61Y1PNRDN90MB3YHW"
	}
	if cfg.Contracts.Counter.Name == "" {
		cfg.Contracts.Counter.Name = "contador"
	}
	if cfg.Contracts.Transfer.Address == "" {
		cfg.Contracts.Transfer.Address = "ST3AQ7KXWA7KGQ67EX2MFYR1E3231B9S4KY6EFB1R"
	}
	if cfg.Contracts.Transfer.Name == "" {
		cfg.Contracts.Transfer.Name = "traspaso-v2"
	}

	if cfg.Orchestrator.RefetchDelayMillis == 0 {
		cfg.Orchestrator.RefetchDelayMillis = 5000
	}

	if cfg.Counter.PollingIntervalMillis == 0 {
		cfg.Counter.PollingIntervalMillis = 10000
	}

	if cfg.Cache.BalanceTTLSeconds == 0 {
		cfg.Cache.BalanceTTLSeconds = 15
	}
	if cfg.Cache.CounterTTLSeconds == 0 {
		cfg.Cache.CounterTTLSeconds = 5
	}
	if cfg.Cache.CleanupIntervalMinutes == 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// ExplorerTxURL returns the explorer page for a transaction id on the
// configured network.
func (cfg *Config) ExplorerTxURL(txID string) string {
	return fmt.Sprintf("%s/txid/%s?chain=%s", cfg.Network.ExplorerBaseURL, txID, cfg.Network.Name)
}
