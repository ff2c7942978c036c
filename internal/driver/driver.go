// Package driver paces the instruction execution and the timers of the machine
// at independent fixed frequencies.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	// DefaultCPUHz is the default instruction execution rate.
	DefaultCPUHz = 700
	// DefaultTimerHz is the default decrement rate of the delay and sound timers.
	DefaultTimerHz = 60

	// maxElapsed limits the time that is caught up within a single advance,
	// a stalled host does not lead to a burst of instructions.
	maxElapsed = 250 * time.Millisecond

	tickInterval = time.Millisecond
)

var (
	// ErrBreakpoint is returned when the program counter reaches a breakpoint address.
	ErrBreakpoint = errors.New("breakpoint reached")
	// ErrCycleLimit is returned after the configured number of instructions was executed.
	ErrCycleLimit = errors.New("cycle limit reached")
)

// Machine is the emulated system that the driver advances.
type Machine interface {
	Step() error
	DecrementDelayTimer()
	DecrementSoundTimer()
	PC() uint16
}

// Config contains the frequencies and stop conditions of the driver.
type Config struct {
	CPUHz   int
	DelayHz int
	SoundHz int

	MaxCycles   uint64   // 0 means unlimited
	Breakpoints []uint16 // addresses to stop at before executing them
}

// DefaultConfig returns a configuration with the default frequencies.
func DefaultConfig() Config {
	return Config{
		CPUHz:   DefaultCPUHz,
		DelayHz: DefaultTimerHz,
		SoundHz: DefaultTimerHz,
	}
}

// schedule accumulates elapsed time and reports when a periodic operation is due.
type schedule struct {
	period      time.Duration
	accumulated time.Duration
}

func newSchedule(hz int) schedule {
	return schedule{period: time.Second / time.Duration(hz)}
}

func (s *schedule) due() bool {
	if s.accumulated < s.period {
		return false
	}
	s.accumulated -= s.period
	return true
}

// Driver executes the machine operations when their schedules elapse.
type Driver struct {
	machine     Machine
	logger      *log.Logger
	maxCycles   uint64
	breakpoints set.Set[uint16]

	cpu    schedule
	delay  schedule
	sound  schedule
	cycles uint64
}

// New returns a driver for the machine. All frequencies have to be positive.
func New(machine Machine, cfg Config, logger *log.Logger) (*Driver, error) {
	if cfg.CPUHz <= 0 || cfg.DelayHz <= 0 || cfg.SoundHz <= 0 {
		return nil, fmt.Errorf("invalid frequencies: cpu %d Hz, delay %d Hz, sound %d Hz",
			cfg.CPUHz, cfg.DelayHz, cfg.SoundHz)
	}

	breakpoints := set.New[uint16]()
	for _, address := range cfg.Breakpoints {
		breakpoints.Add(address)
	}

	return &Driver{
		machine:     machine,
		logger:      logger,
		maxCycles:   cfg.MaxCycles,
		breakpoints: breakpoints,
		cpu:         newSchedule(cfg.CPUHz),
		delay:       newSchedule(cfg.DelayHz),
		sound:       newSchedule(cfg.SoundHz),
	}, nil
}

// Cycles returns the number of instructions executed by the driver.
func (d *Driver) Cycles() uint64 {
	return d.cycles
}

// Reset clears the accumulated time and the executed cycle count.
func (d *Driver) Reset() {
	d.cpu.accumulated = 0
	d.delay.accumulated = 0
	d.sound.accumulated = 0
	d.cycles = 0
}

// Advance runs all operations that became due within the elapsed time.
func (d *Driver) Advance(elapsed time.Duration) error {
	elapsed = min(elapsed, maxElapsed)
	d.cpu.accumulated += elapsed
	d.delay.accumulated += elapsed
	d.sound.accumulated += elapsed

	for d.cpu.due() {
		if err := d.step(); err != nil {
			return err
		}
	}
	for d.sound.due() {
		d.machine.DecrementSoundTimer()
	}
	for d.delay.due() {
		d.machine.DecrementDelayTimer()
	}
	return nil
}

func (d *Driver) step() error {
	if d.maxCycles > 0 && d.cycles >= d.maxCycles {
		return fmt.Errorf("%w: %d instructions executed", ErrCycleLimit, d.cycles)
	}

	pc := d.machine.PC()
	if d.breakpoints.Contains(pc) {
		return fmt.Errorf("%w: $%04X", ErrBreakpoint, pc)
	}

	if err := d.machine.Step(); err != nil {
		return err
	}
	d.cycles++
	return nil
}

// Run advances the machine by the real elapsed time until the context is
// canceled or a stop condition or step error occurs.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("Driver stopped", log.Int("cycles", int(d.cycles)))
			return nil

		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if err := d.Advance(elapsed); err != nil {
				return err
			}
		}
	}
}
