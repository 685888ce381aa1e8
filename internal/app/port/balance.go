package port

import (
	"context"

	"blockfrost_proxy/internal/domain/entity"
)

// BalanceService aggregates UTXO balances of the configured addresses.
type BalanceService interface {
	// FetchAllBalances returns balances for every address and the per-address failures.
	FetchAllBalances(ctx context.Context, network entity.Network) ([]entity.AddressBalance, []entity.BalanceError)

	// FetchAddressBalance returns the balance of a single address.
	FetchAddressBalance(ctx context.Context, network entity.Network, address string) (entity.AddressBalance, error)

	// GetFailedAddresses returns addresses whose last fetch failed.
	GetFailedAddresses() []string
}
