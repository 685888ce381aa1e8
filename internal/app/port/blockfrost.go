package port

import (
	"context"

	"blockfrost_proxy/internal/domain/entity"
)

// BlockfrostAPI mirrors the subset of the Blockfrost API used by the wallet.
// Implementations talk to the same-origin proxy rather than to Blockfrost itself.
type BlockfrostAPI interface {
	// AddressesUtxos lists one page of UTXOs; an unknown address yields an empty slice.
	AddressesUtxos(ctx context.Context, address string, pagination *entity.Pagination) ([]entity.AddressUTXO, error)
	// AddressesUtxosAll lists every UTXO of the address, page by page.
	AddressesUtxosAll(ctx context.Context, address string, opts *entity.AllPagesOptions) ([]entity.AddressUTXO, error)
	// AddressesUtxosAsset lists UTXOs of the address holding asset; none yields an empty slice.
	AddressesUtxosAsset(ctx context.Context, address, asset string, pagination *entity.Pagination) ([]entity.AddressUTXO, error)

	AssetsHistory(ctx context.Context, asset string, pagination *entity.Pagination) ([]entity.AssetHistory, error)
	AssetsHistoryAll(ctx context.Context, asset string, opts *entity.AllPagesOptions) ([]entity.AssetHistory, error)

	BlocksLatest(ctx context.Context) (*entity.Block, error)

	EpochsParameters(ctx context.Context, epoch int) (*entity.EpochParameters, error)
	EpochsLatestParameters(ctx context.Context) (*entity.EpochParameters, error)

	ScriptsDatum(ctx context.Context, datumHash string) (*entity.ScriptDatum, error)

	Txs(ctx context.Context, hash string) (*entity.Transaction, error)
	TxsMetadata(ctx context.Context, hash string) ([]entity.TxMetadata, error)
	// TxSubmit submits a signed transaction and returns its hash.
	TxSubmit(ctx context.Context, tx entity.TxCBOR) (string, error)
	UtilsTxsEvaluate(ctx context.Context, tx entity.TxCBOR) (entity.EvaluationResult, error)
}
