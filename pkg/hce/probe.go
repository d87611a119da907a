package hce

// CapabilityProbe reports what the device offers for card emulation.
type CapabilityProbe interface {
	// IsFeaturePresent reports whether the device has NFC at all.
	IsFeaturePresent() bool
	// IsAdapterEnabled reports whether the NFC adapter is switched on.
	IsAdapterEnabled() bool
}

//go:generate stringer -type=NfcState -trimprefix=Nfc -output=nfcstate_string.go

// NfcState is the answer to a capability check.
type NfcState int

const (
	NfcNotSupported NfcState = iota
	NfcDisabled
	NfcEnabled
)

// CheckNfc queries p. A nil probe reports NfcNotSupported.
func CheckNfc(p CapabilityProbe) NfcState {
	if p == nil || !p.IsFeaturePresent() {
		return NfcNotSupported
	}
	if p.IsAdapterEnabled() {
		return NfcEnabled
	}
	return NfcDisabled
}
