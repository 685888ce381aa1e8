package walletloader

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/utils"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const DefaultAddressFilePath = "data/addresses.txt"

// ErrInvalidAddress is returned for strings that are not Shelley payment addresses of the network.
var ErrInvalidAddress = errors.New("invalid cardano address")

// ValidateAddress проверяет bech32 адрес: HRP и id сети в заголовке должны совпадать с сетью.
func ValidateAddress(address string, def entity.NetworkDefinition) error {
	hrp, data, err := bech32.DecodeNoLimit(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if hrp != def.AddressHRP {
		return fmt.Errorf("%w: prefix %q, expected %q for %s", ErrInvalidAddress, hrp, def.AddressHRP, def.Network)
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(decoded) < 29 {
		return fmt.Errorf("%w: payload too short", ErrInvalidAddress)
	}

	// старшие 4 бита заголовка: тип адреса, младшие: id сети (1 mainnet, 0 тестовые сети)
	header := decoded[0]
	if header>>4 > 0x07 {
		return fmt.Errorf("%w: address type %d is not a payment address", ErrInvalidAddress, header>>4)
	}
	wantNetID := byte(0)
	if def.Network == entity.NetworkMainnet {
		wantNetID = 1
	}
	if header&0x0f != wantNetID {
		return fmt.Errorf("%w: network id %d does not match %s", ErrInvalidAddress, header&0x0f, def.Network)
	}
	return nil
}

// LoadAddresses reads one bech32 address per line. Blank lines and '#' comments are skipped,
// invalid addresses are reported through skip and dropped, duplicates keep the first occurrence.
func LoadAddresses(filePath string, def entity.NetworkDefinition, skip func(line int, address string, err error)) ([]entity.Address, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open address file %s: %w", filePath, err)
	}
	defer file.Close()

	var valid []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ValidateAddress(line, def); err != nil {
			if skip != nil {
				skip(lineNum, line, err)
			}
			continue
		}
		valid = append(valid, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning address file %s: %w", filePath, err)
	}

	unique := utils.UniqueStrings(valid)
	addresses := make([]entity.Address, 0, len(unique))
	for _, a := range unique {
		addresses = append(addresses, entity.Address{Address: a})
	}
	return addresses, nil
}
