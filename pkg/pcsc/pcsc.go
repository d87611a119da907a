// Package pcsc connects the rest of the module to PC/SC readers.
//
// A Session is an iso7816.Transmitter over the first (or chosen) reader, and
// Probe answers hce.CapabilityProbe from the state of the PC/SC service.
package pcsc

import (
	"errors"
	"fmt"

	"github.com/ebfe/scard"
	"go.uber.org/zap"

	"github.com/gregLibert/hce/pkg/hce"
	"github.com/gregLibert/hce/pkg/iso7816"
)

// ErrNoReader is returned when no reader is attached.
var ErrNoReader = errors.New("pcsc: no smart card reader found")

// Session is an open connection to the card in one reader.
type Session struct {
	Reader string

	ctx  *scard.Context
	card *scard.Card
	log  *zap.Logger
}

// Connect establishes a PC/SC context and connects to the card in the reader
// at readerIndex. The context is released again if the connection fails.
func Connect(readerIndex int, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establishing context: %w", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil || len(readers) == 0 {
		release(ctx, log)
		if err == nil {
			err = ErrNoReader
		}
		return nil, fmt.Errorf("listing readers: %w", err)
	}
	if readerIndex < 0 || readerIndex >= len(readers) {
		release(ctx, log)
		return nil, fmt.Errorf("reader index %d out of range (%d readers)", readerIndex, len(readers))
	}

	reader := readers[readerIndex]

	// Force T=0 or T=1 to avoid "Parameter Incorrect" errors (Error 57)
	card, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolT0|scard.ProtocolT1)
	if err != nil {
		release(ctx, log)
		return nil, fmt.Errorf("connecting to %q: %w", reader, err)
	}

	log.Info("connected", zap.String("reader", reader))
	return &Session{Reader: reader, ctx: ctx, card: card, log: log}, nil
}

// Transmit sends one raw command to the card.
func (s *Session) Transmit(cmd []byte) ([]byte, error) {
	return s.card.Transmit(cmd)
}

// Close disconnects the card and releases the context.
func (s *Session) Close() error {
	var errs []error
	if err := s.card.Disconnect(scard.LeaveCard); err != nil {
		errs = append(errs, fmt.Errorf("disconnecting card: %w", err))
	}
	if err := s.ctx.Release(); err != nil {
		errs = append(errs, fmt.Errorf("releasing context: %w", err))
	}
	return errors.Join(errs...)
}

func release(ctx *scard.Context, log *zap.Logger) {
	if err := ctx.Release(); err != nil {
		log.Warn("failed to release context during error handling", zap.Error(err))
	}
}

// Probe reports the PC/SC service as the card-emulation capability: the
// feature is present when a context can be established and enabled when at
// least one reader is attached.
type Probe struct {
	Log *zap.Logger
}

// IsFeaturePresent reports whether the PC/SC service answers.
func (p Probe) IsFeaturePresent() bool {
	ctx, err := scard.EstablishContext()
	if err != nil {
		p.logger().Debug("pc/sc unavailable", zap.Error(err))
		return false
	}
	release(ctx, p.logger())
	return true
}

// IsAdapterEnabled reports whether a reader is attached.
func (p Probe) IsAdapterEnabled() bool {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return false
	}
	defer release(ctx, p.logger())

	readers, err := ctx.ListReaders()
	if err != nil {
		p.logger().Debug("listing readers failed", zap.Error(err))
		return false
	}
	return len(readers) > 0
}

func (p Probe) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

var (
	_ iso7816.Transmitter = (*Session)(nil)
	_ hce.CapabilityProbe = Probe{}
)
