package iso7816

import "fmt"

// SELECT (INS 'A4'):
// P1 says what the data field names, P2 which occurrence to pick and what the
// card should answer with. A contactless terminal opens every session with a
// SELECT by DF name carrying the AID it wants to talk to; an emulated card
// recognises that exact header.

// SelectionMethod is P1 of a SELECT command.
type SelectionMethod byte

const (
	SelectByFileID          SelectionMethod = 0x00
	SelectChildDF           SelectionMethod = 0x01
	SelectEFUnderCurrentDF  SelectionMethod = 0x02
	SelectParentDF          SelectionMethod = 0x03
	SelectByDFName          SelectionMethod = 0x04 // by AID
	SelectPathFromMF        SelectionMethod = 0x08
	SelectPathFromCurrentDF SelectionMethod = 0x09
)

var selectionMethodNames = map[SelectionMethod]string{
	SelectByFileID:          "file identifier",
	SelectChildDF:           "child DF",
	SelectEFUnderCurrentDF:  "EF under current DF",
	SelectParentDF:          "parent DF",
	SelectByDFName:          "DF name",
	SelectPathFromMF:        "path from MF",
	SelectPathFromCurrentDF: "path from current DF",
}

func (s SelectionMethod) String() string {
	if name, ok := selectionMethodNames[s]; ok {
		return name
	}
	return fmt.Sprintf("method 0x%02X", byte(s))
}

// P2 of a SELECT by DF name: first or only occurrence, return FCI.
const selectFirstFCI byte = 0x00

// SelectByAID builds SELECT by DF name for aid. No Le is sent: with data in
// the command, T=0 cards answer 61XX and the Client fetches the rest.
func SelectByAID(cla Class, aid []byte) *CommandAPDU {
	ins, _ := NewInstruction(INS_SELECT)
	return NewCommandAPDU(cla, ins, byte(SelectByDFName), selectFirstFCI, aid, 0)
}

// SelectByNameHeader is the header of SelectByAID with CLA 00 for an AID of
// aidLen bytes.
func SelectByNameHeader(aidLen int) CommandHeader {
	return CommandHeader{
		CLA: 0x00,
		INS: byte(INS_SELECT),
		P1:  byte(SelectByDFName),
		P2:  selectFirstFCI,
		Lc:  byte(aidLen),
	}
}
