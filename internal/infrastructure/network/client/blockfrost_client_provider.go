package client

import (
	"fmt"
	"sync"
	"time"

	"blockfrost_proxy/internal/app/port"
	bfclient "blockfrost_proxy/internal/client"
	"blockfrost_proxy/internal/domain/entity"

	"go.uber.org/zap"
)

// blockfrostClientProvider implements the port.BlockfrostClientProvider interface.
type blockfrostClientProvider struct {
	clients  map[entity.Network]port.BlockfrostAPI
	mu       sync.Mutex
	endpoint string
	timeout  time.Duration
	opts     []bfclient.Option
	logger   *zap.Logger
}

// NewBlockfrostClientProvider creates a provider that builds clients against the proxy endpoint.
func NewBlockfrostClientProvider(endpoint string, timeout time.Duration, logger *zap.Logger, opts ...bfclient.Option) port.BlockfrostClientProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &blockfrostClientProvider{
		clients:  make(map[entity.Network]port.BlockfrostAPI),
		endpoint: endpoint,
		timeout:  timeout,
		opts:     opts,
		logger:   logger,
	}
}

// GetClient returns the cached client of a network, creating it on first use.
func (p *blockfrostClientProvider) GetClient(network entity.Network) (port.BlockfrostAPI, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, exists := p.clients[network]; exists {
		return c, nil
	}

	if !network.IsValid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnsupportedNetwork, network.String())
	}

	p.logger.Info("Creating new Blockfrost client", zap.String("network", network.String()), zap.String("endpoint", p.endpoint))
	opts := append([]bfclient.Option{bfclient.WithTimeout(p.timeout)}, p.opts...)
	c, err := bfclient.NewBlockfrostClient(p.endpoint, network.ID(), p.logger, opts...)
	if err != nil {
		p.logger.Error("Failed to create Blockfrost client", zap.String("network", network.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to create Blockfrost client for %s: %w", network, err)
	}

	p.clients[network] = c
	return c, nil
}
