package entity

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// TxCBOR is a serialized transaction given either as hex text or as raw bytes.
type TxCBOR struct {
	hexText string
	raw     []byte
	isRaw   bool
}

// TxCBORFromHex wraps a hex-encoded transaction.
func TxCBORFromHex(s string) TxCBOR {
	return TxCBOR{hexText: s}
}

// TxCBORFromBytes wraps a raw CBOR transaction.
func TxCBORFromBytes(b []byte) TxCBOR {
	return TxCBOR{raw: b, isRaw: true}
}

// Bytes returns the decoded transaction after checking it is well-formed CBOR.
func (t TxCBOR) Bytes() ([]byte, error) {
	raw := t.raw
	if !t.isRaw {
		decoded, err := hex.DecodeString(strings.TrimSpace(t.hexText))
		if err != nil {
			return nil, fmt.Errorf("%w: not hex: %v", ErrInvalidTransaction, err)
		}
		raw = decoded
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidTransaction)
	}
	if err := cbor.Wellformed(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	return raw, nil
}

// Hex returns the lowercase hex form sent to Blockfrost.
func (t TxCBOR) Hex() (string, error) {
	raw, err := t.Bytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
