//go:build pcsc

package main

import (
	"go.uber.org/zap"

	"github.com/gregLibert/hce/pkg/hce"
	"github.com/gregLibert/hce/pkg/pcsc"
)

func init() {
	newProbe = func(logger *zap.Logger) hce.CapabilityProbe {
		return pcsc.Probe{Log: logger}
	}
}
