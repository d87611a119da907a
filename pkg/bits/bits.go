// Package bits reads and writes the numbered bit fields of APDU header bytes.
//
// Bits are numbered the way ISO/IEC 7816-4 tables do: b8 is the most
// significant bit and b1 the least. Out-of-range positions are ignored.
package bits

// Bit returns a byte with only bit n (1 to 8) set.
func Bit(n uint) byte {
	if n < 1 || n > 8 {
		return 0
	}
	return 1 << (n - 1)
}

// IsSet reports whether bit n is set in b.
func IsSet(b byte, n uint) bool {
	return b&Bit(n) != 0
}

// Set returns b with bit n set.
func Set(b byte, n uint) byte {
	return b | Bit(n)
}

// Clear returns b with bit n cleared.
func Clear(b byte, n uint) byte {
	return b &^ Bit(n)
}

func mask(high, low uint) (byte, bool) {
	if high < low || high > 8 || low < 1 {
		return 0, false
	}
	width := high - low + 1
	return byte((1<<width)-1) << (low - 1), true
}

// GetRange extracts bits high..low of b as a value.
// GetRange(0b00001100, 4, 3) returns 3.
func GetRange(b byte, high, low uint) byte {
	m, ok := mask(high, low)
	if !ok {
		return 0
	}
	return (b & m) >> (low - 1)
}

// SetRange returns b with bits high..low replaced by v. Bits of v that do not
// fit the field are dropped.
func SetRange(b byte, high, low uint, v byte) byte {
	m, ok := mask(high, low)
	if !ok {
		return b
	}
	return (b &^ m) | ((v << (low - 1)) & m)
}
