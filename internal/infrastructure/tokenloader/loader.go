package tokenloader

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"blockfrost_proxy/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
)

// DefaultAssetDirectoryPath holds one <network>.json registry per network.
const DefaultAssetDirectoryPath = "data/assets"

const (
	policyIDHexLength     = 56
	maxAssetNameHexLength = 64
)

// ErrInvalidUnit is returned for units that are not policy id + hex asset name.
var ErrInvalidUnit = errors.New("invalid asset unit")

// ValidateUnit checks that unit is a 28-byte policy id followed by an asset name of at most 32 bytes.
func ValidateUnit(unit string) error {
	if len(unit) < policyIDHexLength || len(unit) > policyIDHexLength+maxAssetNameHexLength || len(unit)%2 != 0 {
		return fmt.Errorf("%w: %q has length %d", ErrInvalidUnit, unit, len(unit))
	}
	if _, err := hex.DecodeString(unit); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidUnit, unit, err)
	}
	return nil
}

// LoadAssets reads <dir>/<network>.json. A missing file is not an error: the
// registry is simply empty. Invalid or duplicate entries are reported to warn and skipped.
func LoadAssets(dir string, network entity.Network, warn func(msg string, args ...any)) (map[string]entity.AssetInfo, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	assets := make(map[string]entity.AssetInfo)

	filePath := filepath.Join(dir, network.String()+".json")
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return assets, nil
		}
		return nil, fmt.Errorf("failed to read asset file %s: %w", filePath, err)
	}

	var entries []entity.AssetInfo
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assets from %s: %w", filePath, err)
	}

	for _, a := range entries {
		a.Unit = strings.ToLower(strings.TrimSpace(a.Unit))
		if err := ValidateUnit(a.Unit); err != nil {
			warn("Invalid asset unit in file, skipping", "file", filePath, "ticker", a.Ticker, "error", err)
			continue
		}
		if _, dup := assets[a.Unit]; dup {
			warn("Duplicate asset unit in file, skipping", "file", filePath, "unit", a.Unit)
			continue
		}
		if a.Ticker == "" {
			a.Ticker = a.Unit
		}
		assets[a.Unit] = a
	}
	return assets, nil
}
