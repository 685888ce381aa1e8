package entity

// AssetInfo describes a known native asset.
// Unit is the policy id followed by the hex asset name, as Blockfrost reports it.
type AssetInfo struct {
	Unit     string `json:"unit"`
	Ticker   string `json:"ticker"`
	Decimals uint8  `json:"decimals"`
}

// TokenBalance is a native asset amount labelled with its registry entry.
type TokenBalance struct {
	Unit      string `json:"unit"`
	Ticker    string `json:"ticker"`
	Quantity  string `json:"quantity"`
	Formatted string `json:"formatted"`
}
