package port

import "blockfrost_proxy/internal/domain/entity"

// AssetProvider supplies the registry of known native assets, keyed by unit.
type AssetProvider interface {
	GetAssets() (map[string]entity.AssetInfo, error)
}
