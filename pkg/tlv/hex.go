package tlv

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseHex decodes a series of hex strings into a byte slice.
// Spaces are ignored, so "00 A4 04 00" and "00A40400" are equivalent.
func ParseHex(parts ...string) ([]byte, error) {
	fullHex := strings.Join(parts, "")
	cleanHex := strings.ReplaceAll(fullHex, " ", "")

	data, err := hex.DecodeString(cleanHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex '%s': %w", cleanHex, err)
	}
	return data, nil
}

// Hex constructs a byte slice from a series of hex strings.
// It panics on invalid input and is meant for fixtures and constants.
func Hex(parts ...string) []byte {
	data, err := ParseHex(parts...)
	if err != nil {
		panic(err.Error())
	}
	return data
}

// Spaced formats data as upper-case hex bytes separated by spaces.
func Spaced(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}
