package port

import "blockfrost_proxy/internal/domain/entity"

// AddressProvider defines the interface for fetching addresses to check.
type AddressProvider interface {
	GetAddresses() ([]entity.Address, error)
}
