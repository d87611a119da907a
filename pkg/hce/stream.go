package hce

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// NOTIFICATION STREAM:
// Forwarded commands leave the process as a sequence of CBOR maps with integer
// keys (1=port, 2=header, 3=data), one per notification and no framing between
// them. The host side reads the stream with a StreamReader.

var notifyEncMode cbor.EncMode

var notifyDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	notifyEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create notification CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	notifyDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create notification CBOR decoder mode: %v", err))
	}
}

// EncodeNotification encodes n as a single CBOR item.
func EncodeNotification(n Notification) ([]byte, error) {
	return notifyEncMode.Marshal(n)
}

// DecodeNotification decodes a single CBOR item into a Notification.
func DecodeNotification(data []byte) (Notification, error) {
	var n Notification
	if err := notifyDecMode.Unmarshal(data, &n); err != nil {
		return Notification{}, fmt.Errorf("failed to decode notification: %w", err)
	}
	return n, nil
}

// StreamWriter is the consumer end of a Queue: it drains notifications into a
// byte stream for the host application.
type StreamWriter struct {
	enc *cbor.Encoder
}

// NewStreamWriter returns a StreamWriter encoding to w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{enc: notifyEncMode.NewEncoder(w)}
}

// Write encodes one notification.
func (s *StreamWriter) Write(n Notification) error {
	if err := s.enc.Encode(n); err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	return nil
}

// Run writes every notification received on ch until ch is closed or ctx is done.
// It returns nil when ch is closed and ctx.Err() on cancellation.
func (s *StreamWriter) Run(ctx context.Context, ch <-chan Notification) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			if err := s.Write(n); err != nil {
				return err
			}
		}
	}
}

// StreamReader decodes a stream written by StreamWriter.
type StreamReader struct {
	dec *cbor.Decoder
}

// NewStreamReader returns a StreamReader decoding from r.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{dec: notifyDecMode.NewDecoder(r)}
}

// Next returns the next notification, or io.EOF at the end of the stream.
func (s *StreamReader) Next() (Notification, error) {
	var n Notification
	if err := s.dec.Decode(&n); err != nil {
		if errors.Is(err, io.EOF) {
			return Notification{}, io.EOF
		}
		return Notification{}, fmt.Errorf("failed to decode notification: %w", err)
	}
	return n, nil
}
