package provider

import (
	"blockfrost_proxy/internal/app/port"
	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/infrastructure/walletloader"
)

type addressProviderImpl struct {
	addressFilePath string
	network         entity.NetworkDefinition
	logger          port.Logger
}

// NewAddressProvider creates a new AddressProvider for one network.
func NewAddressProvider(filePath string, network entity.NetworkDefinition, logger port.Logger) port.AddressProvider {
	if filePath == "" {
		filePath = walletloader.DefaultAddressFilePath
	}
	return &addressProviderImpl{addressFilePath: filePath, network: network, logger: logger}
}

// GetAddresses loads addresses from the configured file.
func (p *addressProviderImpl) GetAddresses() ([]entity.Address, error) {
	p.logger.Debug("Loading addresses from file", "path", p.addressFilePath, "network", p.network.Network)
	addresses, err := walletloader.LoadAddresses(p.addressFilePath, p.network, func(line int, address string, err error) {
		p.logger.Warn("Skipping invalid address", "path", p.addressFilePath, "line_number", line, "address", address, "error", err)
	})
	if err != nil {
		p.logger.Error("Failed to load addresses", "path", p.addressFilePath, "error", err)
		return nil, err
	}
	p.logger.Info("Addresses loaded successfully", "count", len(addresses), "path", p.addressFilePath)
	return addresses, nil
}
