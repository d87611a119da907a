/*
Package iso7816 implements data structures and logic to exchange APDUs according to the ISO/IEC 7816 standard.

This package provides the fundamental building blocks for APDU (Application Protocol Data Unit) communication, including Command and Response structures, Status Word (SW) analysis, and the CLA/INS vocabulary. It serves both ends of the link: a terminal driving a card through a Transmitter, and an emulated card decoding the raw commands it receives.

# Fundamentals

The communication with a smart card is strictly synchronous:
 1. The Host sends a Command APDU (Header + Optional Body).
 2. The Card processes it and returns a Response APDU (Optional Body + Trailer SW1/SW2).

# Status Words

Every response ends with a 2-byte Status Word (SW).
  - 0x9000: Success (OK).
  - 0x61XX: Success, but response data is still available (XX bytes).
  - 0x6CXX: Error, wrong length expectation (XX is the correct length).
  - Other: Various error conditions.

# Card Side

An emulated card never raises errors across the link: whatever it receives, it answers with a
Status Word. ParseCommandHeader validates the length before decoding the header fields, and
ResponseAPDU.Bytes frames the answer.

	h, err := iso7816.ParseCommandHeader(raw)
	if err != nil {
	    return iso7816.SW_ERR_WRONG_LENGTH.Bytes()
	}
	if h.INS != byte(iso7816.INS_SELECT) {
	    return iso7816.SW_ERR_INS_INVALID.Bytes()
	}
	return iso7816.NewResponseAPDU(nil, iso7816.SW_NO_ERROR).Bytes()

# Terminal Side

	client := iso7816.NewClient(card, logger)
	trace, err := client.Send(iso7816.SelectByAID(cls, aid))
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(trace.Describe())
*/
package iso7816
