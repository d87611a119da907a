package hce

import (
	"bytes"
	"fmt"

	"github.com/gregLibert/hce/pkg/iso7816"
)

// Registry holds the application identity: the AID answered by SELECT and the
// CLA/INS pair of the application protocol. A Registry is immutable; the
// service swaps in a new one on reconfiguration.
type Registry struct {
	aid []byte
	cla byte
	ins byte
}

// NewRegistry validates aid and returns a Registry owning a copy of it.
func NewRegistry(aid []byte, cla, ins byte) (Registry, error) {
	if n := len(aid); n < MinAIDLength || n > MaxAIDLength {
		return Registry{}, fmt.Errorf("%w: AID length %d outside %d..%d", ErrConfigurationInvalid, n, MinAIDLength, MaxAIDLength)
	}
	return Registry{
		aid: append([]byte(nil), aid...),
		cla: cla,
		ins: ins,
	}, nil
}

// AID returns a copy of the configured AID.
func (r Registry) AID() []byte { return append([]byte(nil), r.aid...) }

// AIDLen returns the length of the configured AID.
func (r Registry) AIDLen() int { return len(r.aid) }

// CLA returns the configured class byte.
func (r Registry) CLA() byte { return r.cla }

// INS returns the configured instruction byte.
func (r Registry) INS() byte { return r.ins }

// Matches reports whether candidate is byte-identical to the configured AID.
// There is no prefix or partial matching.
func (r Registry) Matches(candidate []byte) bool {
	return len(r.aid) > 0 && bytes.Equal(r.aid, candidate)
}

// IsApplicationSelect reports whether cmd is exactly a SELECT by DF name of the
// configured AID: header 00 A4 04 00 Lc followed by the AID and nothing else.
func (r Registry) IsApplicationSelect(cmd []byte) bool {
	h, err := iso7816.ParseCommandHeader(cmd)
	if err != nil {
		return false
	}
	return h == iso7816.SelectByNameHeader(len(r.aid)) && r.Matches(cmd[iso7816.HeaderSize:])
}
