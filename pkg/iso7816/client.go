package iso7816

import (
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"
)

// Transmitter carries one raw command to a card and returns its raw answer.
type Transmitter interface {
	Transmit(cmd []byte) ([]byte, error)
}

// Client sends commands to a card and resolves the T=0 procedure bytes a
// reader may pass up to the application:
//
//	61XX  XX bytes are waiting: fetch them with GET RESPONSE (Le = XX)
//	6CXX  wrong Le: send the same command again with Le = XX
//
// Every exchange, including the follow-ups, ends up in the returned Trace.
type Client struct {
	Card Transmitter
	Log  *zap.Logger
}

// NewClient returns a Client over card. A nil logger disables exchange logging.
func NewClient(card Transmitter, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{Card: card, Log: log}
}

// Send transmits cmd and follows 61XX and 6CXX answers.
func (c *Client) Send(cmd *CommandAPDU) (Trace, error) {
	resp, err := c.exchange(cmd)
	if err != nil {
		return nil, err
	}
	trace := Trace{{Command: cmd, Response: resp}}

	var next *CommandAPDU
	switch sw2 := int(resp.Status.SW2()); resp.Status.SW1() {
	case 0x61:
		// Same logical channel, no chaining.
		cls := cmd.Class
		cls.IsChained = false
		ins, _ := NewInstruction(INS_GET_RESPONSE)
		next = NewCommandAPDU(cls, ins, 0x00, 0x00, nil, sw2)
	case 0x6C:
		retry := *cmd
		retry.Ne = sw2
		next = &retry
	default:
		return trace, nil
	}

	rest, err := c.Send(next)
	if err != nil {
		return trace, err
	}
	return append(trace, rest...), nil
}

func (c *Client) exchange(cmd *CommandAPDU) (*ResponseAPDU, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding error: %w", err)
	}
	c.Log.Debug("c-apdu", zap.String("raw", hex.EncodeToString(raw)))

	rawResp, err := c.Card.Transmit(raw)
	if err != nil {
		return nil, fmt.Errorf("transmission error: %w", err)
	}
	c.Log.Debug("r-apdu", zap.String("raw", hex.EncodeToString(rawResp)))

	return ParseResponseAPDU(rawResp)
}
