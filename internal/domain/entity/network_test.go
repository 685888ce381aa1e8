package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowNetwork_RoundTrip(t *testing.T) {
	for _, id := range []int{0, 1, 2, 3} {
		n, err := ShowNetwork(id)
		require.NoError(t, err)
		assert.Equal(t, id, n.ID(), "network %s", n)
	}

	n, err := ShowNetwork(1)
	require.NoError(t, err)
	assert.Equal(t, NetworkMainnet, n)
	n, err = ShowNetwork(0)
	require.NoError(t, err)
	assert.Equal(t, NetworkTestnet, n)
}

func TestShowNetwork_Unknown(t *testing.T) {
	for _, id := range []int{-1, 4, 42} {
		_, err := ShowNetwork(id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownNetwork))

		var une *UnknownNetworkError
		require.ErrorAs(t, err, &une)
		assert.Equal(t, id, une.ID)
	}
}

func TestNetworkIDsAreInjective(t *testing.T) {
	seen := map[int]Network{}
	for _, n := range AllNetworks() {
		prev, dup := seen[n.ID()]
		assert.False(t, dup, "%s and %s share id %d", n, prev, n.ID())
		seen[n.ID()] = n
		assert.Len(t, string(n), ProjectIDPrefixLength)
	}
	assert.Len(t, seen, 4)
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetwork("preview")
	require.NoError(t, err)
	assert.Equal(t, NetworkPreview, n)

	assert.True(t, NetworkPreview.IsValid())
	assert.False(t, Network("sanchonet").IsValid())
	assert.False(t, Network("").IsValid())

	_, err = ParseNetwork("sanchonet")
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
	assert.Equal(t, -1, Network("sanchonet").ID())
}

func TestNetworkFromProjectID(t *testing.T) {
	permitted := AllNetworks()

	cases := []struct {
		token string
		want  Network
		ok    bool
	}{
		{"mainnet", NetworkMainnet, true},
		{"preprodAbCdEf0123456789", NetworkPreprod, true},
		{"previewXYZ", NetworkPreview, true},
		{"testnet", NetworkTestnet, true},
		{"main", "", false},
		{"", "", false},
		{"sanchonetAbc", "", false},
		{"MAINNET", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := NetworkFromProjectID(tc.token, permitted)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrUnsupportedNetwork)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNetworkFromProjectID_RestrictedSet(t *testing.T) {
	_, err := NetworkFromProjectID("mainnetSecret", []Network{NetworkPreprod})
	require.ErrorIs(t, err, ErrUnsupportedNetwork)
	assert.NotContains(t, err.Error(), "Secret")
}
