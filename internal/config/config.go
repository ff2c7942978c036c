// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/retroenv/chip8vm/internal/driver"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// MaxScale is the largest supported window scale.
const MaxScale = 64

var errInvalidOption = errors.New("invalid option")

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Emulator contains the validated settings of a virtual machine run.
type Emulator struct {
	Driver driver.Config

	Scale           int
	Seed            int64
	Headless        bool
	Mute            bool
	Trace           bool
	Dump            bool
	ResumeAfterCall bool
}

// FromOptions converts the program options into a validated emulator configuration.
// A zero seed is replaced by a time based seed.
func FromOptions(opts options.Program) (Emulator, error) {
	breakpoints, err := ParseAddresses(opts.Breakpoints)
	if err != nil {
		return Emulator{}, err
	}

	cfg := Emulator{
		Driver: driver.Config{
			CPUHz:       opts.CPUHz,
			DelayHz:     opts.DelayHz,
			SoundHz:     opts.SoundHz,
			MaxCycles:   opts.Cycles,
			Breakpoints: breakpoints,
		},
		Scale:           opts.Scale,
		Seed:            opts.Seed,
		Headless:        opts.Headless,
		Mute:            opts.Mute || opts.Headless,
		Trace:           opts.Trace,
		Dump:            opts.Dump,
		ResumeAfterCall: opts.ResumeAfterCall,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return Emulator{}, err
	}
	return cfg, nil
}

// Validate checks that all frequencies are positive and the scale is supported.
func (e Emulator) Validate() error {
	frequencies := []struct {
		name  string
		value int
	}{
		{"cpu-hz", e.Driver.CPUHz},
		{"delay-hz", e.Driver.DelayHz},
		{"sound-hz", e.Driver.SoundHz},
	}
	for _, f := range frequencies {
		if f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", errInvalidOption, f.name, f.value)
		}
	}

	if e.Scale < 1 || e.Scale > MaxScale {
		return fmt.Errorf("%w: scale must be between 1 and %d, got %d", errInvalidOption, MaxScale, e.Scale)
	}
	return nil
}

// ParseAddresses parses a comma separated list of hexadecimal memory addresses,
// an optional 0x or $ prefix is accepted.
func ParseAddresses(s string) ([]uint16, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(strings.TrimPrefix(part, "0x"), "$")

		value, err := strconv.ParseUint(part, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: address '%s': %w", errInvalidOption, part, err)
		}
		if !memory.Valid(int(value)) {
			return nil, fmt.Errorf("%w: address $%04X is outside of the memory", errInvalidOption, value)
		}
		addresses = append(addresses, uint16(value))
	}
	return addresses, nil
}
