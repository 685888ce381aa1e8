package provider

import (
	"os"
	"path/filepath"
	"testing"

	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/logger"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressProvider(t *testing.T) {
	payload := make([]byte, 57)
	payload[0] = 0x60
	addr, err := bech32.EncodeFromBase256("addr_test", payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "addresses.txt")
	require.NoError(t, os.WriteFile(path, []byte(addr+"\nnot-an-address\n"), 0o600))

	def := entity.NetworkDefinition{Network: entity.NetworkPreview, AddressHRP: "addr_test"}
	got, err := NewAddressProvider(path, def, logger.NopLogger{}).GetAddresses()
	require.NoError(t, err)
	assert.Equal(t, []entity.Address{{Address: addr}}, got)

	_, err = NewAddressProvider(filepath.Join(t.TempDir(), "missing.txt"), def, logger.NopLogger{}).GetAddresses()
	assert.Error(t, err)
}
