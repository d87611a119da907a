package iso7816

import (
	"fmt"

	"github.com/gregLibert/hce/pkg/bits"
)

// CLA layout (ISO/IEC 7816-4, 5.4.1):
//
//	b8      1 = proprietary, the rest is opaque
//	b7      0 = first interindustry, 1 = further interindustry
//	b5      command chaining, more commands follow
//	first   b4-b3 secure messaging, b2-b1 logical channel 0-3
//	further b6 secure messaging, b4-b1 logical channel minus 4 (4-19)
//
// 0xFF is reserved and never a valid class.

// SecureMessaging is the secure messaging indication of an interindustry class.
type SecureMessaging int

const (
	SMNone SecureMessaging = iota
	// SMProprietary exists in the first interindustry range only.
	SMProprietary
	// SMHeaderNoProc is ISO secure messaging with the header not processed.
	SMHeaderNoProc
	// SMHeaderAuth is ISO secure messaging with the header authenticated; first range only.
	SMHeaderAuth
)

const maxChannel = 19

// Class is a decoded CLA byte.
type Class struct {
	Raw             byte
	IsProprietary   bool
	IsChained       bool
	SecureMessaging SecureMessaging
	Channel         uint8
}

// NewClass decodes cla.
func NewClass(cla byte) (Class, error) {
	if cla == 0xFF {
		return Class{}, fmt.Errorf("invalid CLA value: 0xFF is reserved")
	}

	c := Class{Raw: cla}
	if bits.IsSet(cla, 8) {
		c.IsProprietary = true
		return c, nil
	}

	c.IsChained = bits.IsSet(cla, 5)

	if bits.IsSet(cla, 7) {
		if bits.IsSet(cla, 6) {
			c.SecureMessaging = SMHeaderNoProc
		}
		c.Channel = bits.GetRange(cla, 4, 1) + 4
		return c, nil
	}

	c.SecureMessaging = SecureMessaging(bits.GetRange(cla, 4, 3))
	c.Channel = bits.GetRange(cla, 2, 1)
	return c, nil
}

// Encode returns the CLA byte for c. Proprietary classes encode as Raw.
func (c *Class) Encode() (byte, error) {
	if c.IsProprietary {
		return c.Raw, nil
	}
	if c.Channel > maxChannel {
		return 0, fmt.Errorf("logical channel %d out of range 0-%d", c.Channel, maxChannel)
	}

	var res byte
	if c.IsChained {
		res = bits.Set(res, 5)
	}

	if c.Channel <= 3 {
		res = bits.SetRange(res, 4, 3, byte(c.SecureMessaging))
		res = bits.SetRange(res, 2, 1, c.Channel)
		return res, nil
	}

	switch c.SecureMessaging {
	case SMNone:
	case SMHeaderNoProc:
		res = bits.Set(res, 6)
	default:
		return 0, fmt.Errorf("secure messaging %d not encodable on channel %d", c.SecureMessaging, c.Channel)
	}
	res = bits.Set(res, 7)
	res = bits.SetRange(res, 4, 1, c.Channel-4)
	return res, nil
}

// Unsupported names the class feature an emulated card limited to the basic
// channel without secure messaging or chaining would have to refuse.
// It returns an empty string for a plain first interindustry class on channel 0.
func (c Class) Unsupported() string {
	switch {
	case c.IsProprietary:
		return ""
	case c.Channel != 0:
		return fmt.Sprintf("logical channel %d", c.Channel)
	case c.SecureMessaging != SMNone:
		return "secure messaging"
	case c.IsChained:
		return "command chaining"
	default:
		return ""
	}
}
