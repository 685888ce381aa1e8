package port

import "blockfrost_proxy/internal/domain/entity"

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all available network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinition returns the definition of a network.
	// Возвращает определение и true, если найдено, иначе false.
	GetNetworkDefinition(network entity.Network) (entity.NetworkDefinition, bool)
}

// BlockfrostClientProvider defines the interface for providing per-network API clients.
type BlockfrostClientProvider interface {
	GetClient(network entity.Network) (BlockfrostAPI, error)
}
