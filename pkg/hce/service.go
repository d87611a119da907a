package hce

import (
	"encoding/hex"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gregLibert/hce/pkg/iso7816"
)

// MaxResponseLength is the longest payload PutResponse accepts: what a short
// R-APDU can carry in front of its status word.
const MaxResponseLength = iso7816.MaxShortLe

// settings is the configuration snapshot a single Process call works against.
type settings struct {
	registry                  Registry
	permanentResponses        bool
	listenOnlyConfiguredPorts bool
}

// Service is the card-emulation command processor. It owns the configuration
// and the response table; Process may run concurrently with the control calls.
type Service struct {
	mu  sync.RWMutex
	cur settings

	table    *ResponseTable
	notifier Notifier
	onSelect func(aid []byte)
	probe    CapabilityProbe
	log      *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNotifier sets where forwarded commands go. The default discards them.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithSelectHook registers fn to run after a successful application SELECT,
// typically a haptic or audio confirmation. fn runs on the Process call and
// must not block.
func WithSelectHook(fn func(aid []byte)) Option {
	return func(s *Service) { s.onSelect = fn }
}

// WithProbe sets the capability probe used by CheckNfc.
func WithProbe(p CapabilityProbe) Option {
	return func(s *Service) { s.probe = p }
}

// WithResponseTable makes the service serve from t instead of a fresh table.
func WithResponseTable(t *ResponseTable) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// NewService validates cfg and returns a ready service.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	reg, err := cfg.registry()
	if err != nil {
		return nil, err
	}

	s := &Service{
		cur: settings{
			registry:                  reg,
			permanentResponses:        cfg.PermanentResponses,
			listenOnlyConfiguredPorts: cfg.ListenOnlyConfiguredPorts,
		},
		table:    NewResponseTable(),
		notifier: discardNotifier{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Configure applies a partial update. Nothing changes when it returns an error.
func (s *Service) Configure(u Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := u.apply(s.configLocked())
	if err != nil {
		s.log.Warn("configuration rejected", zap.Error(err))
		return err
	}

	reg, err := next.registry()
	if err != nil {
		return err
	}
	s.cur = settings{
		registry:                  reg,
		permanentResponses:        next.PermanentResponses,
		listenOnlyConfiguredPorts: next.ListenOnlyConfiguredPorts,
	}

	s.log.Info("configured",
		zap.String("aid", hex.EncodeToString(reg.aid)),
		zap.Uint8("cla", reg.cla),
		zap.Uint8("ins", reg.ins),
		zap.Bool("permanent_responses", next.PermanentResponses),
		zap.Bool("listen_only_configured_ports", next.ListenOnlyConfiguredPorts),
	)
	return nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configLocked()
}

func (s *Service) configLocked() Config {
	return Config{
		AID:                       s.cur.registry.AID(),
		CLA:                       s.cur.registry.cla,
		INS:                       s.cur.registry.ins,
		PermanentResponses:        s.cur.permanentResponses,
		ListenOnlyConfiguredPorts: s.cur.listenOnlyConfiguredPorts,
	}
}

func (s *Service) snapshot() settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Responses returns the table the service serves from.
func (s *Service) Responses() *ResponseTable { return s.table }

// PutResponse sets the payload served on the next command addressed to port.
func (s *Service) PutResponse(port int, data []byte) error {
	p, err := toPort(port)
	if err != nil {
		return err
	}
	if len(data) > MaxResponseLength {
		return fmt.Errorf("%w: response of %d bytes exceeds %d", ErrConfigurationInvalid, len(data), MaxResponseLength)
	}

	s.table.Put(p, data)
	s.log.Debug("response added", zap.Uint8("port", uint8(p)), zap.String("data", hex.EncodeToString(data)))
	return nil
}

// RemoveResponse deletes the payload for port. Removing an absent port is not an error.
func (s *Service) RemoveResponse(port int) error {
	p, err := toPort(port)
	if err != nil {
		return err
	}

	s.table.Remove(p)
	s.log.Debug("response removed", zap.Uint8("port", uint8(p)))
	return nil
}

func toPort(port int) (Port, error) {
	if port < 0 || port > 0xFF {
		return 0, fmt.Errorf("%w: port %d outside 0..255", ErrConfigurationInvalid, port)
	}
	return Port(port), nil
}

// CheckNfc reports the device capability through the configured probe.
func (s *Service) CheckNfc() NfcState {
	return CheckNfc(s.probe)
}

// Process handles one raw command and returns the framed response.
// It never fails: malformed or foreign commands get a negative status word.
func (s *Service) Process(cmd []byte) []byte {
	cur := s.snapshot()
	log := s.log.With(zap.String("command", hex.EncodeToString(cmd)))
	log.Debug("apdu received")

	c := Classify(cur.registry, cmd)

	switch c.Verdict {
	case ApplicationSelected:
		log.Info("application selected")
		if s.onSelect != nil {
			s.onSelect(cur.registry.AID())
		}
		return c.Verdict.StatusWord().Bytes()

	case Valid:
		// handled below

	case UnknownClass:
		fields := []zap.Field{zap.Stringer("verdict", c.Verdict), zap.Uint8("cla", c.Header.CLA)}
		if cls, err := iso7816.NewClass(c.Header.CLA); err == nil {
			if why := cls.Unsupported(); why != "" {
				fields = append(fields, zap.String("unsupported", why))
			}
		}
		log.Debug("command rejected", fields...)
		return c.Verdict.StatusWord().Bytes()

	case UnsupportedChannel:
		log.Debug("command rejected",
			zap.Stringer("verdict", c.Verdict),
			zap.Stringer("selection", iso7816.SelectionMethod(c.Header.P1)))
		return c.Verdict.StatusWord().Bytes()

	default:
		log.Debug("command rejected", zap.Stringer("verdict", c.Verdict))
		return c.Verdict.StatusWord().Bytes()
	}

	log = log.With(zap.Uint8("port", uint8(c.Port)))

	payload, found := s.table.Take(c.Port, cur.permanentResponses)
	if !found {
		log.Debug("no pre-configured response")
	}

	if shouldForward(cur, cmd, found) {
		split := iso7816.HeaderSize + cur.registry.AIDLen()
		s.notifier.Notify(Notification{
			Port:   c.Port,
			Header: append([]byte(nil), cmd[:split]...),
			Data:   append([]byte(nil), cmd[split:]...),
		})
		log.Debug("command forwarded")
	} else {
		log.Debug("command not forwarded")
	}

	return iso7816.NewResponseAPDU(payload, iso7816.SW_NO_ERROR).Bytes()
}

// shouldForward decides whether a valid command reaches the host application.
// With ListenOnlyConfiguredPorts only ports holding a response are forwarded,
// and a SELECT by file identifier is never forwarded without one.
func shouldForward(cur settings, cmd []byte, found bool) bool {
	if cur.listenOnlyConfiguredPorts && !found {
		return false
	}
	if isFileIDSelect(cmd) && !found {
		return false
	}
	return true
}
