package hce

import (
	"bytes"

	"github.com/gregLibert/hce/pkg/iso7816"
)

// COMMAND CLASSIFICATION:
// Every raw command is given exactly one verdict. The checks run in a fixed
// order and the first failing one decides:
//
//  1. Fewer than 5 bytes: Malformed.
//  2. 00 A4 04 00 Lc followed by exactly the AID: ApplicationSelected.
//  3. CLA differs from the configured class: UnknownClass.
//  4. INS differs from the configured instruction: UnknownInstruction.
//  5. Lc differs from the AID length, or the command carries fewer than Lc
//     data bytes: BadLength.
//  6. A SELECT (INS A4) not addressed by file identifier whose data field is
//     not the AID: UnsupportedChannel.
//  7. Otherwise: Valid, with the port taken from P2.
//
// Step 5 applies to every application command, not only to SELECT: the data
// field of a port command is expected to be as long as the AID.

//go:generate stringer -type=Verdict -output=verdict_string.go

// Verdict is the outcome of classifying one command.
type Verdict int

const (
	Malformed Verdict = iota
	ApplicationSelected
	UnknownClass
	UnknownInstruction
	BadLength
	UnsupportedChannel
	Valid
)

// StatusWord returns the status word answered for the verdict.
// Valid and ApplicationSelected both succeed; the payload, if any, is added by the service.
func (v Verdict) StatusWord() iso7816.StatusWord {
	switch v {
	case ApplicationSelected, Valid:
		return iso7816.SW_NO_ERROR
	case Malformed, BadLength:
		return iso7816.SW_ERR_WRONG_LENGTH
	case UnknownClass:
		return iso7816.SW_ERR_CLA_NOT_SUPPORTED
	case UnknownInstruction:
		return iso7816.SW_ERR_INS_INVALID
	case UnsupportedChannel:
		return iso7816.SW_ERR_LOGICAL_CHANNEL_NOT_SUPP
	default:
		return iso7816.SW_ERR_UNKNOWN
	}
}

// Classification is the verdict for one command together with what was decoded from it.
// Header is the zero value for Malformed commands; Port is only meaningful for Valid.
type Classification struct {
	Verdict Verdict
	Header  iso7816.CommandHeader
	Port    Port
}

// Classify decodes cmd against reg. It never indexes past the end of cmd.
func Classify(reg Registry, cmd []byte) Classification {
	h, err := iso7816.ParseCommandHeader(cmd)
	if err != nil {
		return Classification{Verdict: Malformed}
	}

	c := Classification{Header: h}

	if reg.IsApplicationSelect(cmd) {
		c.Verdict = ApplicationSelected
		return c
	}

	if h.CLA != reg.CLA() {
		c.Verdict = UnknownClass
		return c
	}
	if h.INS != reg.INS() {
		c.Verdict = UnknownInstruction
		return c
	}

	c.Port = Port(h.P2)

	aidLen := reg.AIDLen()
	if int(h.Lc) != aidLen || len(cmd) < iso7816.HeaderSize+aidLen {
		c.Verdict = BadLength
		return c
	}

	if selectsBeyondFileID(h) {
		data := cmd[iso7816.HeaderSize : iso7816.HeaderSize+aidLen]
		if !bytes.Equal(data, reg.aid) {
			c.Verdict = UnsupportedChannel
			return c
		}
	}

	c.Verdict = Valid
	return c
}

// selectsBeyondFileID reports whether h is a SELECT whose data field names
// something other than a file identifier, so it must carry the AID.
func selectsBeyondFileID(h iso7816.CommandHeader) bool {
	return h.INS == byte(iso7816.INS_SELECT) && iso7816.SelectionMethod(h.P1) != iso7816.SelectByFileID
}

// isFileIDSelect reports whether cmd starts with 00 A4 00, a SELECT by file
// identifier. Such commands are only forwarded when a response is configured.
func isFileIDSelect(cmd []byte) bool {
	return len(cmd) >= 3 &&
		cmd[0] == 0x00 &&
		cmd[1] == byte(iso7816.INS_SELECT) &&
		cmd[2] == byte(iso7816.SelectByFileID)
}
