package hce

import (
	"fmt"

	"github.com/gregLibert/hce/pkg/iso7816"
)

// AID length limits per ISO/IEC 7816-5.
const (
	MinAIDLength = 5
	MaxAIDLength = 16
)

// DefaultAID is the application identifier used until one is configured.
var DefaultAID = []byte{0xA0, 0x00, 0xDA, 0xDA, 0xDA, 0xDA, 0xDA}

// Config is the complete service configuration.
type Config struct {
	// AID is the application identifier answered by SELECT.
	AID []byte
	// CLA and INS are the class and instruction bytes of the application protocol.
	CLA byte
	INS byte
	// PermanentResponses keeps a response in the table after it has been served.
	PermanentResponses bool
	// ListenOnlyConfiguredPorts suppresses forwarding for ports without a response.
	ListenOnlyConfiguredPorts bool
}

// DefaultConfig returns the configuration a service starts with.
func DefaultConfig() Config {
	return Config{
		AID: append([]byte(nil), DefaultAID...),
		CLA: 0x00,
		INS: byte(iso7816.INS_SELECT),
	}
}

// Update is a partial reconfiguration.
//
// PermanentResponses and ListenOnlyConfiguredPorts are mandatory; a nil AID,
// CLA or INS leaves the current value in place.
type Update struct {
	PermanentResponses        *bool
	ListenOnlyConfiguredPorts *bool
	AID                       []byte
	CLA                       *byte
	INS                       *byte
}

// apply returns cfg with u merged in, or an error wrapping ErrConfigurationInvalid.
// cfg is never modified.
func (u Update) apply(cfg Config) (Config, error) {
	if u.PermanentResponses == nil {
		return Config{}, fmt.Errorf("%w: permanent responses flag is required", ErrConfigurationInvalid)
	}
	if u.ListenOnlyConfiguredPorts == nil {
		return Config{}, fmt.Errorf("%w: listen only configured ports flag is required", ErrConfigurationInvalid)
	}

	next := cfg
	next.AID = append([]byte(nil), cfg.AID...)
	next.PermanentResponses = *u.PermanentResponses
	next.ListenOnlyConfiguredPorts = *u.ListenOnlyConfiguredPorts

	if u.AID != nil {
		next.AID = append([]byte(nil), u.AID...)
	}
	if u.CLA != nil {
		next.CLA = *u.CLA
	}
	if u.INS != nil {
		next.INS = *u.INS
	}

	if err := next.Validate(); err != nil {
		return Config{}, err
	}
	return next, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	_, err := c.registry()
	return err
}

func (c Config) registry() (Registry, error) {
	return NewRegistry(c.AID, c.CLA, c.INS)
}

// Bool returns a pointer to v, for building an Update.
func Bool(v bool) *bool { return &v }

// Byte returns a pointer to v, for building an Update.
func Byte(v byte) *byte { return &v }
