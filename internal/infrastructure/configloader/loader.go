package configloader

import (
	"fmt"
	"os"
	"strings"

	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/infrastructure/tokenloader"
	"blockfrost_proxy/internal/infrastructure/walletloader"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the checker looks for its configuration.
const DefaultPath = "config/checker.yml"

// ProxyConfig describes how the checker reaches the redirect endpoint.
type ProxyConfig struct {
	Endpoint             string `yaml:"endpoint"`  // e.g., "http://localhost:8080/api/blockfrost"
	NetworkID            int    `yaml:"networkId"` // 0 testnet, 1 mainnet, 2 preprod, 3 preview
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int     `yaml:"max_concurrent_routines"`
	RequestsPerSecond     float64 `yaml:"requests_per_second"`
	Burst                 int     `yaml:"burst"`
	CacheTTLMinutes       int     `yaml:"cache_ttl_minutes"`
	BatchSize             int     `yaml:"batch_size"`
	MaxPages              int     `yaml:"max_pages"`
}

// Config is the top-level configuration structure.
type Config struct {
	Proxy         ProxyConfig       `yaml:"proxy"`
	Logging       LoggingConfig     `yaml:"logging"`
	AddressesFile string            `yaml:"addressesFile"`
	AssetsDir     string            `yaml:"assetsDir"`
	Performance   PerformanceConfig `yaml:"performance"`
}

// Network resolves Proxy.NetworkID.
func (c *Config) Network() (entity.Network, error) {
	return entity.ShowNetwork(c.Proxy.NetworkID)
}

// PageOptions returns the pagination used when listing UTXOs.
func (c *Config) PageOptions() *entity.AllPagesOptions {
	return &entity.AllPagesOptions{
		BatchSize: c.Performance.BatchSize,
		Order:     entity.OrderAsc,
		MaxPages:  c.Performance.MaxPages,
	}
}

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.Proxy.Endpoint = strings.TrimSpace(cfg.Proxy.Endpoint)
	if cfg.Proxy.Endpoint == "" {
		return nil, fmt.Errorf("config %s: proxy.endpoint is required", path)
	}
	if _, err := cfg.Network(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if cfg.Proxy.RequestTimeoutMillis <= 0 {
		cfg.Proxy.RequestTimeoutMillis = 10000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.AddressesFile == "" {
		cfg.AddressesFile = walletloader.DefaultAddressFilePath
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = tokenloader.DefaultAssetDirectoryPath
	}
	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10 // Default to 10 if not specified or invalid
	}
	if cfg.Performance.BatchSize <= 0 || cfg.Performance.BatchSize > entity.DefaultBatchSize {
		cfg.Performance.BatchSize = entity.DefaultBatchSize
	}
	if cfg.Performance.RequestsPerSecond > 0 && cfg.Performance.Burst <= 0 {
		cfg.Performance.Burst = 1
	}

	return &cfg, nil
}
