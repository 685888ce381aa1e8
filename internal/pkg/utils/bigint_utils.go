package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// LovelaceDecimals is the number of decimals of ADA.
const LovelaceDecimals = 6

// ParseQuantity parses a Blockfrost quantity string (arbitrary-size decimal integer).
func ParseQuantity(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid quantity %q", s)
	}
	if v.Sign() < 0 {
		return nil, fmt.Errorf("negative quantity %q", s)
	}
	return v, nil
}

// FormatBigInt renders amount as a decimal with the given number of decimals,
// dropping trailing zeros. Example: amount=1234500, decimals=6 => "1.2345".
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	intPart, frac := new(big.Int).QuoRem(new(big.Int).Abs(amount), divisor, new(big.Int))

	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}
	if frac.Sign() == 0 {
		return sign + intPart.String()
	}

	// Дробную часть дополняем нулями слева до нужной длины, хвостовые нули убираем.
	fracStr := frac.String()
	if pad := int(decimals) - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")
	return sign + intPart.String() + "." + fracStr
}
