// Package loader reads program images for the RV32 simulator.
//
// Two formats are supported: a text file of whitespace-separated hex bytes,
// and 32-bit little-endian RISC-V ELF executables.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrImageTooLarge is returned when a program does not fit the
	// instruction memory capacity.
	ErrImageTooLarge = errors.New("program image too large")

	// ErrBadHexByte is returned for a token that is not a hex byte.
	ErrBadHexByte = errors.New("bad hex byte")
)

// Format identifies the file format a program was loaded from.
type Format string

// Supported formats.
const (
	FormatHex Format = "hex"
	FormatELF Format = "elf"
)

// Program represents a loaded program image ready for execution.
type Program struct {
	// Image holds instruction memory contents starting at address 0.
	Image []byte

	// Length is the end-of-image boundary. Execution halts once the PC
	// reaches it.
	Length uint64

	// Entry is the address execution starts at.
	Entry uint32

	// Format is the format the program was read from.
	Format Format
}

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// Load reads the program at path, choosing the ELF loader when the file
// starts with the ELF magic and the hex loader otherwise. capacity is the
// instruction memory size in bytes.
func Load(path string, capacity uint64) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program: %w", err)
	}
	defer func() { _ = f.Close() }()

	magic := make([]byte, len(elfMagic))
	n, err := io.ReadFull(f, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}

	if n == len(elfMagic) && bytes.Equal(magic, elfMagic) {
		return LoadELF(path, capacity)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind program: %w", err)
	}
	return ParseHex(f, capacity)
}
