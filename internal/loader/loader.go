// Package loader handles CHIP-8 program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/memory"
)

// Extension is the file extension of CHIP-8 program files.
const Extension = ".ch8"

var (
	// ErrRomNotFound is returned when the program file does not exist.
	ErrRomNotFound = errors.New("program file not found")
	// ErrUnsupportedFormat is returned for files without the program file extension.
	ErrUnsupportedFormat = errors.New("unsupported program file format")
	// ErrInvalidSize is returned for empty programs or programs that exceed the memory.
	ErrInvalidSize = errors.New("invalid program size")
)

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads and validates the program file. The returned bytes fit into the
// memory starting at the program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRomNotFound, path)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	if err := l.Validate(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Validate checks the name and size of program data that is already in memory.
func (l *Loader) Validate(name string, data []byte) error {
	if !strings.EqualFold(filepath.Ext(name), Extension) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if len(data) == 0 || len(data) > memory.MaxProgramSize {
		return fmt.Errorf("%w: %s has %d bytes, supported are 1 to %d bytes",
			ErrInvalidSize, name, len(data), memory.MaxProgramSize)
	}
	return nil
}
