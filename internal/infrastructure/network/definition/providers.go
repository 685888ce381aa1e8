package networkdefinition

import (
	"fmt"
	"strings"

	"blockfrost_proxy/internal/app/port"
	"blockfrost_proxy/internal/domain/entity"
)

// NetworkDefinitionProvider provides Cardano network definitions.
type NetworkDefinitionProvider struct {
	logger            port.Logger
	activeNetworkDefs []entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Mainnet = entity.NetworkDefinition{
		Network:       entity.NetworkMainnet,
		ID:            entity.NetworkMainnet.ID(),
		Name:          "Cardano Mainnet",
		NetworkMagic:  764824073,
		BlockfrostURL: "https://cardano-mainnet.blockfrost.io/api/v0",
		AddressHRP:    "addr",
		BlockExplorer: "https://cardanoscan.io",
	}
	Testnet = entity.NetworkDefinition{
		Network:       entity.NetworkTestnet,
		ID:            entity.NetworkTestnet.ID(),
		Name:          "Cardano Legacy Testnet",
		NetworkMagic:  1097911063,
		BlockfrostURL: "https://cardano-testnet.blockfrost.io/api/v0",
		AddressHRP:    "addr_test",
	}
	Preprod = entity.NetworkDefinition{
		Network:       entity.NetworkPreprod,
		ID:            entity.NetworkPreprod.ID(),
		Name:          "Cardano Pre-Production",
		NetworkMagic:  1,
		BlockfrostURL: "https://cardano-preprod.blockfrost.io/api/v0",
		AddressHRP:    "addr_test",
		BlockExplorer: "https://preprod.cardanoscan.io",
	}
	Preview = entity.NetworkDefinition{
		Network:       entity.NetworkPreview,
		ID:            entity.NetworkPreview.ID(),
		Name:          "Cardano Preview",
		NetworkMagic:  2,
		BlockfrostURL: "https://cardano-preview.blockfrost.io/api/v0",
		AddressHRP:    "addr_test",
		BlockExplorer: "https://preview.cardanoscan.io",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[entity.Network]entity.NetworkDefinition{
	Mainnet.Network: Mainnet,
	Testnet.Network: Testnet,
	Preprod.Network: Preprod,
	Preview.Network: Preview,
}

// NewNetworkDefinitionProvider creates a new NetworkDefinitionProvider.
// tracked ограничивает набор активных сетей; пустой список активирует все.
func NewNetworkDefinitionProvider(log port.Logger, tracked []string) *NetworkDefinitionProvider {
	p := &NetworkDefinitionProvider{
		logger:            log,
		activeNetworkDefs: make([]entity.NetworkDefinition, 0, len(allKnownDefinitions)),
	}

	if len(tracked) == 0 {
		for _, n := range entity.AllNetworks() {
			p.activeNetworkDefs = append(p.activeNetworkDefs, allKnownDefinitions[n])
		}
		p.logger.Debug("No tracked networks configured, all Cardano networks are active.")
		return p
	}

	active := make(map[entity.Network]struct{})
	for _, name := range tracked {
		network, err := entity.ParseNetwork(strings.ToLower(strings.TrimSpace(name)))
		if err != nil {
			p.logger.Warn(fmt.Sprintf("Tracked network '%s' has no definition. Skipping.", name))
			continue
		}
		if _, dup := active[network]; dup {
			continue
		}
		active[network] = struct{}{}
		p.activeNetworkDefs = append(p.activeNetworkDefs, allKnownDefinitions[network])
	}

	if len(p.activeNetworkDefs) == 0 {
		p.logger.Warn("No known networks among tracked networks. No networks will be active.", "tracked", tracked)
	} else {
		p.logger.Info(fmt.Sprintf("NetworkDefinitionProvider initialized. Active networks: %d", len(p.activeNetworkDefs)))
	}
	return p
}

// GetAllNetworkDefinitions returns the list of active network definitions.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defsCopy := make([]entity.NetworkDefinition, len(p.activeNetworkDefs))
	copy(defsCopy, p.activeNetworkDefs)
	return defsCopy
}

// GetNetworkDefinition returns the definition of an active network.
func (p *NetworkDefinitionProvider) GetNetworkDefinition(network entity.Network) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.activeNetworkDefs {
		if def.Network == network {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

// GetNetworkDefinitionByID looks a definition up by numeric network id, active or not.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByID(id int) (entity.NetworkDefinition, bool) {
	network, err := entity.ShowNetwork(id)
	if err != nil {
		return entity.NetworkDefinition{}, false
	}
	if def, ok := p.GetNetworkDefinition(network); ok {
		return def, true
	}
	if p != nil {
		p.logger.Warn(fmt.Sprintf("Network with id %d is known but not in the active list.", id))
	}
	def, ok := allKnownDefinitions[network]
	return def, ok
}

// DefaultEndpoints returns the public Blockfrost base URL of every known network.
func DefaultEndpoints() map[entity.Network]string {
	out := make(map[entity.Network]string, len(allKnownDefinitions))
	for n, def := range allKnownDefinitions {
		out[n] = def.BlockfrostURL
	}
	return out
}
