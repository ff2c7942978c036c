// Package main implements the entry point of the CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/audio"
	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/driver"
	"github.com/retroenv/chip8vm/internal/frontend"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/registers"
	"github.com/retroenv/chip8vm/internal/stack"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid arguments", log.Err(err))
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	cfg, err := config.FromOptions(opts)
	if err != nil {
		logger.Error("Invalid configuration", log.Err(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, opts.Input, cfg); err != nil {
		logger.Error("Running program failed", log.String("file", opts.Input), log.Err(err))
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("chip8vm", log.String("version", buildinfo.Version(version, commit, date)))
}

func run(ctx context.Context, logger *log.Logger, input string, cfg config.Emulator) error {
	program, err := loader.New().Load(input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	mem := memory.New()
	if err := mem.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}
	logger.Debug("Program loaded",
		log.String("file", input),
		log.Int("size", len(program)),
		log.Hex("address", memory.ProgramStart))

	if cfg.Dump {
		if err := mem.Dump(os.Stdout); err != nil {
			return fmt.Errorf("dumping memory: %w", err)
		}
	}

	machine := cpu.New(mem, registers.New(), stack.New(), display.New(), keypad.New(),
		cpu.WithLogger(logger),
		cpu.WithSeed(cfg.Seed),
		cpu.WithTrace(cfg.Trace),
		cpu.WithResumeAfterCall(cfg.ResumeAfterCall),
	)

	drv, err := driver.New(machine, cfg.Driver, logger)
	if err != nil {
		return fmt.Errorf("creating driver: %w", err)
	}

	if cfg.Headless {
		return runHeadless(ctx, logger, machine, drv)
	}
	return runWindow(logger, machine, drv, cfg)
}

func runHeadless(ctx context.Context, logger *log.Logger, machine *cpu.CPU, drv *driver.Driver) error {
	err := drv.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, driver.ErrCycleLimit), errors.Is(err, driver.ErrBreakpoint):
		logger.Info("Execution stopped", log.String("reason", err.Error()))
	default:
		return err
	}

	regs := machine.Registers()
	logger.Info("Final state",
		log.Hex("pc", regs.PC()),
		log.Hex("i", regs.I()),
		log.Int("cycles", int(machine.Cycles())))
	fmt.Print(machine.FrameBuffer().String())
	return nil
}

func runWindow(logger *log.Logger, machine *cpu.CPU, drv *driver.Driver, cfg config.Emulator) error {
	var tone frontend.ToneOutput
	if !cfg.Mute {
		beeper, err := audio.NewBeeper(audio.DefaultSampleRate)
		if err != nil {
			logger.Warn("Audio output disabled", log.Err(err))
		} else {
			defer func() { _ = beeper.Close() }()
			tone = beeper
		}
	}

	game := frontend.NewGame(machine, drv, tone, logger)
	windowCfg := frontend.Config{
		Title: "chip8vm",
		Scale: cfg.Scale,
	}
	return frontend.Run(windowCfg, game)
}
