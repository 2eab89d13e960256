package types

import (
	"encoding/hex"
	"strings"
)

// EncodeHex returns the lowercase hex encoding of b with a 0x prefix.
// Output width is always 2*len(b): leading zeros are preserved.
func EncodeHex(b []byte) HexString {
	return "0x" + hex.EncodeToString(b)
}

// DecodeHex parses a hex string with or without a 0x/0X prefix.
func DecodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	return hex.DecodeString(strings.ToLower(s))
}

// DecodeHexField is DecodeHex with ValidationError reporting for the named
// field, additionally enforcing an exact byte length when size > 0.
func DecodeHexField(field, s string, size int) ([]byte, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return nil, WrapValidation(field, err)
	}
	if size > 0 && len(b) != size {
		return nil, NewValidationError(field, "wrong length")
	}
	return b, nil
}
