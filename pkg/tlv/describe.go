// Package tlv provides byte-level helpers for APDU payloads: hex fixtures and
// human-readable rendering of BER-TLV (Basic Encoding Rules - Tag-Length-Value) data.
package tlv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// Describe renders a response payload for reports and logs.
//
// Payloads that are a well-formed BER-TLV sequence (re-encoding them yields the
// exact input) are printed as an indented tag tree. Anything else is printed as
// a single hex dump followed by its printable ASCII form.
func Describe(data []byte) string {
	if len(data) == 0 {
		return "(no data)"
	}

	packets, err := bertlv.Decode(data)
	if err != nil || len(packets) == 0 || !reencodes(packets, data) {
		return formatRaw(data)
	}

	var lines []string
	writePackets(&lines, packets, 0)
	return strings.Join(lines, "\n")
}

func reencodes(packets []bertlv.TLV, data []byte) bool {
	enc, err := bertlv.Encode(packets)
	if err != nil {
		return false
	}
	return bytes.Equal(enc, data)
}

func writePackets(lines *[]string, packets []bertlv.TLV, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, p := range packets {
		tag := strings.ToUpper(p.Tag)
		if len(p.TLVs) > 0 {
			*lines = append(*lines, fmt.Sprintf("%s%s:", indent, tag))
			writePackets(lines, p.TLVs, depth+1)
			continue
		}
		*lines = append(*lines, fmt.Sprintf("%s%s: %s", indent, tag, formatRaw(p.Value)))
	}
}

func formatRaw(data []byte) string {
	if len(data) == 0 {
		return "(empty)"
	}
	return fmt.Sprintf("%X (%q)", data, MakeSafeASCII(data))
}

// MakeSafeASCII replaces every non-printable byte with a dot.
func MakeSafeASCII(data []byte) string {
	return strings.Map(func(r rune) rune {
		if r >= 32 && r <= 126 {
			return r
		}
		return '.'
	}, string(data))
}
