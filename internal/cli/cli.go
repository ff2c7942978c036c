// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/driver"
	"github.com/retroenv/chip8vm/internal/options"
)

// DefaultScale is the default window pixels per display pixel.
const DefaultScale = 10

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <program.ch8>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input .ch8 program file")
	flags.StringVar(&opts.Breakpoints, "break", "", "comma separated list of hex addresses to stop at, for example 0x200,2A4")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Headless, "headless", false, "run without window and audio, the final display is logged")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the audio output")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.BoolVar(&opts.Dump, "dump", false, "print a hex dump of the memory after loading the program")
	flags.BoolVar(&opts.ResumeAfterCall, "resume-after-call", true, "return to the instruction following a call")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after executing the given number of instructions, 0 is unlimited")
	flags.IntVar(&opts.CPUHz, "cpu-hz", driver.DefaultCPUHz, "instructions executed per second")
	flags.IntVar(&opts.DelayHz, "delay-hz", driver.DefaultTimerHz, "delay timer decrements per second")
	flags.IntVar(&opts.SoundHz, "sound-hz", driver.DefaultTimerHz, "sound timer decrements per second")
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "window pixels per display pixel")
	flags.Int64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
}
