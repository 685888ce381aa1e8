package entity

// Address is a Cardano payment address in bech32 form.
type Address struct {
	Address string
}

// AddressBalance aggregates the UTXOs of an address.
type AddressBalance struct {
	Address   string            `json:"address"`
	Network   Network           `json:"network"`
	Lovelace  string            `json:"lovelace"`
	ADA       string            `json:"ada"`
	Assets    map[string]string `json:"assets,omitempty"` // unit -> quantity
	Tokens    []TokenBalance    `json:"tokens,omitempty"` // only registry assets
	UTXOCount int               `json:"utxoCount"`
}

// BalanceReport is the output of a checker run.
type BalanceReport struct {
	Network     Network          `json:"network"`
	TipHeight   *int64           `json:"tipHeight,omitempty"`
	TipHash     string           `json:"tipHash,omitempty"`
	Balances    []AddressBalance `json:"balances"`
	Errors      []BalanceError   `json:"errors,omitempty"`
	GeneratedAt int64            `json:"generatedAt"`
}
