package provider

import (
	"sync"

	"blockfrost_proxy/internal/app/port"
	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/infrastructure/tokenloader"
)

type assetProviderImpl struct {
	assetDir string
	network  entity.Network
	logger   port.Logger

	mu          sync.Mutex
	assetsCache map[string]entity.AssetInfo // Cache loaded assets
}

// NewAssetProvider creates a new AssetProvider reading the registry of one network.
func NewAssetProvider(assetDir string, network entity.Network, logger port.Logger) port.AssetProvider {
	if assetDir == "" {
		assetDir = tokenloader.DefaultAssetDirectoryPath
	}
	return &assetProviderImpl{
		assetDir: assetDir,
		network:  network,
		logger:   logger,
	}
}

// GetAssets loads the registry from disk once and caches it.
func (p *assetProviderImpl) GetAssets() (map[string]entity.AssetInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.assetsCache != nil {
		return p.assetsCache, nil
	}

	p.logger.Debug("Loading assets from disk", "directory", p.assetDir, "network", p.network)
	assets, err := tokenloader.LoadAssets(p.assetDir, p.network, p.logger.Warn)
	if err != nil {
		p.logger.Error("Failed to load assets", "directory", p.assetDir, "error", err)
		return nil, err
	}

	p.assetsCache = assets
	p.logger.Info("Assets loaded and cached", "network", p.network, "count", len(assets))
	return assets, nil
}
