package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"blockfrost_proxy/internal/domain/entity"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	envProjectIDPrefix = "BLOCKFROST_PROJECT_ID_"
	envEndpointPrefix  = "BLOCKFROST_ENDPOINT_"
)

// ErrNoProjectIDs is returned when no Blockfrost project id is configured at all.
var ErrNoProjectIDs = errors.New("no Blockfrost project ids configured")

// Config holds the overall configuration for the proxy server.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Blockfrost BlockfrostConfig `yaml:"blockfrost"`
	RateLimit  RateLimitConfig  `yaml:"rateLimit"`
	CORS       CORSConfig       `yaml:"cors"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// BlockfrostConfig holds the upstream credentials and endpoints, keyed by network name.
type BlockfrostConfig struct {
	BasePath             string            `yaml:"basePath"`
	ProjectIDs           map[string]string `yaml:"projectIds"`
	Endpoints            map[string]string `yaml:"endpoints"`
	RequestTimeoutMillis int64             `yaml:"requestTimeoutMillis"`
	MaxBodyBytes         int64             `yaml:"maxBodyBytes"`
}

// RateLimitConfig holds the per-client token bucket settings. RequestsPerSecond <= 0 disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
	ClientTTLMinutes  int     `yaml:"clientTTLMinutes"`
}

// CORSConfig holds the allowed origins; empty allows all.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoadConfig loads configuration from a YAML file, then .env and environment overrides.
// An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		logrus.Infof("Loading configuration from path: %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			logrus.Errorf("Failed to read config file %s: %v", path, err)
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	loadDotEnv()
	cfg.Blockfrost.applyEnvOverrides()
	cfg.applyDefaults()

	if len(cfg.Blockfrost.ProjectIDs) == 0 {
		logrus.Error("No Blockfrost project ids configured")
		return nil, ErrNoProjectIDs
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// loadDotEnv подхватывает .env (или файл из ENV_FILE); уже заданные переменные не перезаписываются.
func loadDotEnv() {
	file := os.Getenv("ENV_FILE")
	if file == "" {
		file = ".env"
	}
	if err := godotenv.Load(file); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logrus.Warnf("Failed to load env file %s: %v", file, err)
		}
		return
	}
	logrus.Infof("Loaded environment from %s", file)
}

func (b *BlockfrostConfig) applyEnvOverrides() {
	for _, n := range entity.AllNetworks() {
		suffix := strings.ToUpper(n.String())
		if v := strings.TrimSpace(os.Getenv(envProjectIDPrefix + suffix)); v != "" {
			if b.ProjectIDs == nil {
				b.ProjectIDs = make(map[string]string)
			}
			b.ProjectIDs[n.String()] = v
		}
		if v := strings.TrimSpace(os.Getenv(envEndpointPrefix + suffix)); v != "" {
			if b.Endpoints == nil {
				b.Endpoints = make(map[string]string)
			}
			b.Endpoints[n.String()] = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Blockfrost.BasePath == "" {
		c.Blockfrost.BasePath = "/api/blockfrost"
	}
	if c.Blockfrost.RequestTimeoutMillis == 0 {
		c.Blockfrost.RequestTimeoutMillis = 30000
		logrus.Infof("Blockfrost.RequestTimeoutMillis not set, defaulting to %d ms", c.Blockfrost.RequestTimeoutMillis)
	}
	if c.Blockfrost.MaxBodyBytes == 0 {
		c.Blockfrost.MaxBodyBytes = 10 << 20
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = int(c.RateLimit.RequestsPerSecond) + 1
	}
	if c.RateLimit.ClientTTLMinutes == 0 {
		c.RateLimit.ClientTTLMinutes = 10
	}
}

// NetworkMaps converts the configured maps into per-network lookups.
// defaults supplies endpoints for networks that have a key but no endpoint.
// Unknown network names are skipped with a warning. Keys whose prefix does not
// name their network are kept but logged: the redirect endpoint derives the
// network from that prefix.
func (b BlockfrostConfig) NetworkMaps(defaults map[entity.Network]string) (endpoints, projectIDs map[entity.Network]string) {
	endpoints = make(map[entity.Network]string)
	projectIDs = make(map[entity.Network]string)

	for name, key := range b.ProjectIDs {
		network, err := entity.ParseNetwork(strings.ToLower(name))
		if err != nil {
			logrus.Warnf("Ignoring Blockfrost project id for unknown network '%s'", name)
			continue
		}
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, network.String()) {
			logrus.Warnf("Blockfrost project id for '%s' does not start with the network name", network)
		}
		projectIDs[network] = key
	}

	for name, url := range b.Endpoints {
		network, err := entity.ParseNetwork(strings.ToLower(name))
		if err != nil {
			logrus.Warnf("Ignoring Blockfrost endpoint for unknown network '%s'", name)
			continue
		}
		if url != "" {
			endpoints[network] = url
		}
	}

	for network := range projectIDs {
		if _, ok := endpoints[network]; ok {
			continue
		}
		if url, ok := defaults[network]; ok {
			endpoints[network] = url
			logrus.Infof("Blockfrost endpoint for '%s' not set, defaulting to %s", network, url)
		}
	}
	return endpoints, projectIDs
}
