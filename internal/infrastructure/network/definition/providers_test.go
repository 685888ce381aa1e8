package networkdefinition

import (
	"testing"

	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionsMatchNetworkTable(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.NopLogger{}, nil)
	defs := p.GetAllNetworkDefinitions()
	require.Len(t, defs, 4)

	for _, def := range defs {
		n, err := entity.ShowNetwork(def.ID)
		require.NoError(t, err)
		assert.Equal(t, def.Network, n)
		assert.Contains(t, def.BlockfrostURL, "cardano-"+def.Network.String())
	}

	mainnet, ok := p.GetNetworkDefinition(entity.NetworkMainnet)
	require.True(t, ok)
	assert.EqualValues(t, 764824073, mainnet.NetworkMagic)
	assert.Equal(t, "addr", mainnet.AddressHRP)
}

func TestTrackedNetworks(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.NopLogger{}, []string{"Preprod", "sanchonet", "preprod", "preview"})
	defs := p.GetAllNetworkDefinitions()
	require.Len(t, defs, 2)
	assert.Equal(t, entity.NetworkPreprod, defs[0].Network)
	assert.Equal(t, entity.NetworkPreview, defs[1].Network)

	_, ok := p.GetNetworkDefinition(entity.NetworkMainnet)
	assert.False(t, ok)

	// неактивная, но известная сеть все равно находится по id
	def, ok := p.GetNetworkDefinitionByID(1)
	require.True(t, ok)
	assert.Equal(t, entity.NetworkMainnet, def.Network)

	_, ok = p.GetNetworkDefinitionByID(7)
	assert.False(t, ok)
}

func TestNilProvider(t *testing.T) {
	var p *NetworkDefinitionProvider
	assert.Empty(t, p.GetAllNetworkDefinitions())
	_, ok := p.GetNetworkDefinition(entity.NetworkMainnet)
	assert.False(t, ok)
}

func TestDefaultEndpoints(t *testing.T) {
	endpoints := DefaultEndpoints()
	assert.Len(t, endpoints, 4)
	assert.Equal(t, "https://cardano-preview.blockfrost.io/api/v0", endpoints[entity.NetworkPreview])
}
