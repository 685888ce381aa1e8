package provider

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetProvider_Caches(t *testing.T) {
	dir := t.TempDir()
	unit := strings.Repeat("cd", 28) + "484f534b59"
	path := filepath.Join(dir, "mainnet.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"unit":"`+unit+`","ticker":"HOSKY","decimals":0}]`), 0o600))

	p := NewAssetProvider(dir, entity.NetworkMainnet, logger.NopLogger{})
	assets, err := p.GetAssets()
	require.NoError(t, err)
	assert.Equal(t, "HOSKY", assets[unit].Ticker)

	require.NoError(t, os.Remove(path))
	again, err := p.GetAssets()
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestAssetProvider_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "preview.json"), []byte(`nope`), 0o600))

	_, err := NewAssetProvider(dir, entity.NetworkPreview, logger.NopLogger{}).GetAssets()
	assert.Error(t, err)
}
