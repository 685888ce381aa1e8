package walletloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blockfrost_proxy/internal/domain/entity"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mainnetDef = entity.NetworkDefinition{Network: entity.NetworkMainnet, AddressHRP: "addr"}
	preprodDef = entity.NetworkDefinition{Network: entity.NetworkPreprod, AddressHRP: "addr_test"}
)

// makeAddress собирает адрес из заголовка и 56 байт ключей.
func makeAddress(t *testing.T, hrp string, header byte, fill byte) string {
	t.Helper()
	payload := make([]byte, 57)
	payload[0] = header
	for i := 1; i < len(payload); i++ {
		payload[i] = fill
	}
	addr, err := bech32.EncodeFromBase256(hrp, payload)
	require.NoError(t, err)
	return addr
}

func TestValidateAddress(t *testing.T) {
	mainnetBase := makeAddress(t, "addr", 0x01, 0xab)
	testnetBase := makeAddress(t, "addr_test", 0x00, 0xab)
	testnetEnterprise := makeAddress(t, "addr_test", 0x60, 0xcd)

	assert.NoError(t, ValidateAddress(mainnetBase, mainnetDef))
	assert.NoError(t, ValidateAddress(testnetBase, preprodDef))
	assert.NoError(t, ValidateAddress(testnetEnterprise, preprodDef))

	last := byte('q')
	if mainnetBase[len(mainnetBase)-1] == last {
		last = 'p'
	}
	corrupted := mainnetBase[:len(mainnetBase)-1] + string(last)

	for name, tc := range map[string]struct {
		addr string
		def  entity.NetworkDefinition
	}{
		"wrong hrp":        {testnetBase, mainnetDef},
		"wrong network id": {makeAddress(t, "addr_test", 0x01, 0xab), preprodDef},
		"stake address":    {makeAddress(t, "addr", 0xe1, 0xab), mainnetDef},
		"bad checksum":     {corrupted, mainnetDef},
		"evm address":      {"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", mainnetDef},
		"empty":            {"", mainnetDef},
	} {
		err := ValidateAddress(tc.addr, tc.def)
		assert.ErrorIs(t, err, ErrInvalidAddress, name)
	}
}

func TestLoadAddresses(t *testing.T) {
	a1 := makeAddress(t, "addr_test", 0x00, 0x11)
	a2 := makeAddress(t, "addr_test", 0x60, 0x22)
	mainnet := makeAddress(t, "addr", 0x01, 0x33)

	content := strings.Join([]string{
		"# preprod wallets",
		a1,
		"",
		"  " + a2 + "  ",
		mainnet,
		a1,
		"garbage",
	}, "\n")
	path := filepath.Join(t.TempDir(), "addresses.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var skipped []int
	addrs, err := LoadAddresses(path, preprodDef, func(line int, _ string, err error) {
		assert.ErrorIs(t, err, ErrInvalidAddress)
		skipped = append(skipped, line)
	})
	require.NoError(t, err)
	assert.Equal(t, []entity.Address{{Address: a1}, {Address: a2}}, addrs)
	assert.Equal(t, []int{5, 7}, skipped)
}

func TestLoadAddresses_MissingFile(t *testing.T) {
	_, err := LoadAddresses(filepath.Join(t.TempDir(), "nope.txt"), preprodDef, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
