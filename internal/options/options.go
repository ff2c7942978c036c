// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input       string `flag:"i" usage:"input .ch8 program file"`
	Breakpoints string `flag:"break" usage:"comma separated hex addresses to stop at"`
}

// Flags contains behavior options.
type Flags struct {
	Debug           bool `flag:"debug" usage:"enable debug logging"`
	Quiet           bool `flag:"q" usage:"quiet mode"`
	Headless        bool `flag:"headless" usage:"run without window and audio"`
	Mute            bool `flag:"mute" usage:"disable audio output"`
	Trace           bool `flag:"trace" usage:"log every executed instruction"`
	Dump            bool `flag:"dump" usage:"print a hex dump of the memory after loading"`
	ResumeAfterCall bool `flag:"resume-after-call" usage:"return to the instruction after a call" default:"true"`
}

// Emulation contains timing and presentation options.
type Emulation struct {
	Cycles  uint64 `flag:"cycles" usage:"stop after executing this many instructions (0: unlimited)"`
	CPUHz   int    `flag:"cpu-hz" usage:"instructions executed per second" default:"700"`
	DelayHz int    `flag:"delay-hz" usage:"delay timer decrements per second" default:"60"`
	SoundHz int    `flag:"sound-hz" usage:"sound timer decrements per second" default:"60"`
	Scale   int    `flag:"scale" usage:"window pixels per display pixel" default:"10"`
	Seed    int64  `flag:"seed" usage:"random number generator seed (0: time based)"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	Emulation
}
