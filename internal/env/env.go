// Package env probes the platform the dialog runs on.
package env

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Touch modes accepted by Probe.
const (
	TouchAuto = "auto"
	TouchOn   = "on"
	TouchOff  = "off"
)

// Probe reports platform capabilities. The zero value detects touch
// support automatically.
type Probe struct {
	Mode string // auto | on | off

	lookup func(string) (string, bool)
}

// NewProbe returns a probe for the given touch mode.
func NewProbe(mode string) (*Probe, error) {
	if err := ValidateMode(mode); err != nil {
		return nil, err
	}
	return &Probe{Mode: strings.ToLower(mode), lookup: os.LookupEnv}, nil
}

// ValidateMode checks a touch mode string.
func ValidateMode(mode string) error {
	switch strings.ToLower(mode) {
	case "", TouchAuto, TouchOn, TouchOff:
		return nil
	}
	return fmt.Errorf("unsupported touch mode %q (valid: auto, on, off)", mode)
}

// TouchSupported reports whether input comes from a touch device.
// In auto mode, Android terminals (Termux and friends) count as touch.
func (p *Probe) TouchSupported() bool {
	switch p.Mode {
	case TouchOn:
		return true
	case TouchOff:
		return false
	}

	lookup := p.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range []string{"TERMUX_VERSION", "ANDROID_ROOT"} {
		if _, ok := lookup(key); ok {
			return true
		}
	}
	return false
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
