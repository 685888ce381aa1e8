package entity

import "encoding/json"

// Amount is a quantity of a single unit; "lovelace" for ADA, policy id + asset name otherwise.
type Amount struct {
	Unit     string `json:"unit"`
	Quantity string `json:"quantity"`
}

// AddressUTXO is an unspent output held by an address.
type AddressUTXO struct {
	Address             string   `json:"address"`
	TxHash              string   `json:"tx_hash"`
	TxIndex             int      `json:"tx_index"`
	OutputIndex         int      `json:"output_index"`
	Amount              []Amount `json:"amount"`
	Block               string   `json:"block"`
	DataHash            *string  `json:"data_hash"`
	InlineDatum         *string  `json:"inline_datum"`
	ReferenceScriptHash *string  `json:"reference_script_hash"`
}

// AssetHistory is one mint or burn event of an asset.
type AssetHistory struct {
	TxHash string `json:"tx_hash"`
	Action string `json:"action"` // "minted" | "burned"
	Amount string `json:"amount"`
}

// Block describes a block as returned by /blocks/latest.
type Block struct {
	Time          int64   `json:"time"`
	Height        *int64  `json:"height"`
	Hash          string  `json:"hash"`
	Slot          *int64  `json:"slot"`
	Epoch         *int    `json:"epoch"`
	EpochSlot     *int    `json:"epoch_slot"`
	SlotLeader    string  `json:"slot_leader"`
	Size          int     `json:"size"`
	TxCount       int     `json:"tx_count"`
	Output        *string `json:"output"`
	Fees          *string `json:"fees"`
	BlockVRF      *string `json:"block_vrf"`
	OpCert        *string `json:"op_cert"`
	OpCertCounter *string `json:"op_cert_counter"`
	PreviousBlock *string `json:"previous_block"`
	NextBlock     *string `json:"next_block"`
	Confirmations int     `json:"confirmations"`
}

// EpochParameters holds the protocol parameters of an epoch.
// Cost models are kept raw: their layout changes between eras.
type EpochParameters struct {
	Epoch               int             `json:"epoch"`
	MinFeeA             int64           `json:"min_fee_a"`
	MinFeeB             int64           `json:"min_fee_b"`
	MaxBlockSize        int64           `json:"max_block_size"`
	MaxTxSize           int64           `json:"max_tx_size"`
	MaxBlockHeaderSize  int64           `json:"max_block_header_size"`
	KeyDeposit          string          `json:"key_deposit"`
	PoolDeposit         string          `json:"pool_deposit"`
	EMax                int             `json:"e_max"`
	NOpt                int             `json:"n_opt"`
	A0                  float64         `json:"a0"`
	Rho                 float64         `json:"rho"`
	Tau                 float64         `json:"tau"`
	ProtocolMajorVer    int             `json:"protocol_major_ver"`
	ProtocolMinorVer    int             `json:"protocol_minor_ver"`
	MinPoolCost         string          `json:"min_pool_cost"`
	Nonce               string          `json:"nonce"`
	CostModels          json.RawMessage `json:"cost_models,omitempty"`
	PriceMem            *float64        `json:"price_mem"`
	PriceStep           *float64        `json:"price_step"`
	MaxTxExMem          *string         `json:"max_tx_ex_mem"`
	MaxTxExSteps        *string         `json:"max_tx_ex_steps"`
	MaxBlockExMem       *string         `json:"max_block_ex_mem"`
	MaxBlockExSteps     *string         `json:"max_block_ex_steps"`
	MaxValSize          *string         `json:"max_val_size"`
	CollateralPercent   *int            `json:"collateral_percent"`
	MaxCollateralInputs *int            `json:"max_collateral_inputs"`
	CoinsPerUTXOSize    *string         `json:"coins_per_utxo_size"`
	MinFeeRefScriptCost *float64        `json:"min_fee_ref_script_cost_per_byte,omitempty"`
}

// ScriptDatum is the JSON representation of a datum by hash.
type ScriptDatum struct {
	JSONValue json.RawMessage `json:"json_value"`
}

// Transaction is the content of /txs/{hash}.
type Transaction struct {
	Hash                 string   `json:"hash"`
	Block                string   `json:"block"`
	BlockHeight          int64    `json:"block_height"`
	BlockTime            int64    `json:"block_time"`
	Slot                 int64    `json:"slot"`
	Index                int      `json:"index"`
	OutputAmount         []Amount `json:"output_amount"`
	Fees                 string   `json:"fees"`
	Deposit              string   `json:"deposit"`
	Size                 int      `json:"size"`
	InvalidBefore        *string  `json:"invalid_before"`
	InvalidHereafter     *string  `json:"invalid_hereafter"`
	UTXOCount            int      `json:"utxo_count"`
	WithdrawalCount      int      `json:"withdrawal_count"`
	MIRCertCount         int      `json:"mir_cert_count"`
	DelegationCount      int      `json:"delegation_count"`
	StakeCertCount       int      `json:"stake_cert_count"`
	PoolUpdateCount      int      `json:"pool_update_count"`
	PoolRetireCount      int      `json:"pool_retire_count"`
	AssetMintOrBurnCount int      `json:"asset_mint_or_burn_count"`
	RedeemerCount        int      `json:"redeemer_count"`
	ValidContract        bool     `json:"valid_contract"`
}

// TxMetadata is one metadata label attached to a transaction.
type TxMetadata struct {
	Label        string          `json:"label"`
	JSONMetadata json.RawMessage `json:"json_metadata"`
}

// EvaluationResult is the raw Ogmios-style response of /utils/txs/evaluate.
type EvaluationResult = json.RawMessage
