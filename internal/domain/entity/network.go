package entity

import "fmt"

// Network is one of the Cardano environments served by Blockfrost.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
	NetworkPreprod Network = "preprod"
	NetworkPreview Network = "preview"
)

// ProjectIDPrefixLength is the number of leading characters of a Blockfrost
// project id that name its network ("preprodAbC..." -> "preprod").
// Every network name is exactly this long.
const ProjectIDPrefixLength = 7

// networkIDs maps networks to the numeric identifiers used by wallets and tx builders.
var networkIDs = map[Network]int{
	NetworkTestnet: 0,
	NetworkMainnet: 1,
	NetworkPreprod: 2,
	NetworkPreview: 3,
}

// allNetworks фиксирует порядок перечисления сетей.
var allNetworks = []Network{NetworkMainnet, NetworkTestnet, NetworkPreprod, NetworkPreview}

// NetworkDefinition holds the static description of a Cardano network.
type NetworkDefinition struct {
	Network       Network `json:"network" yaml:"network"`
	ID            int     `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	NetworkMagic  uint32  `json:"networkMagic" yaml:"networkMagic"`
	BlockfrostURL string  `json:"blockfrostUrl" yaml:"blockfrostUrl"`
	AddressHRP    string  `json:"addressHrp" yaml:"addressHrp"`
	BlockExplorer string  `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}

// AllNetworks returns the supported networks in a stable order.
func AllNetworks() []Network {
	out := make([]Network, len(allNetworks))
	copy(out, allNetworks)
	return out
}

// ShowNetwork resolves a numeric network identifier to its network name.
func ShowNetwork(id int) (Network, error) {
	for network, networkID := range networkIDs {
		if networkID == id {
			return network, nil
		}
	}
	return "", &UnknownNetworkError{ID: id}
}

// ParseNetwork validates a network name.
func ParseNetwork(name string) (Network, error) {
	n := Network(name)
	if !n.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, name)
	}
	return n, nil
}

// ID returns the numeric identifier of the network, or -1 for an unknown one.
func (n Network) ID() int {
	id, ok := networkIDs[n]
	if !ok {
		return -1
	}
	return id
}

// IsValid reports whether n is one of the supported networks.
func (n Network) IsValid() bool {
	_, ok := networkIDs[n]
	return ok
}

func (n Network) String() string {
	return string(n)
}

// NetworkFromProjectID derives the network from the first ProjectIDPrefixLength
// characters of token and checks it against permitted.
// The token may be a bare network name or a full project id.
func NetworkFromProjectID(token string, permitted []Network) (Network, error) {
	// Сам токен в ошибку не попадает: это может быть секретный project id.
	if len(token) < ProjectIDPrefixLength {
		return "", fmt.Errorf("%w: unsupported Blockfrost project id", ErrUnsupportedNetwork)
	}
	candidate := Network(token[:ProjectIDPrefixLength])
	for _, n := range permitted {
		if n == candidate {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported Blockfrost project id (prefix %q)", ErrUnsupportedNetwork, string(candidate))
}
