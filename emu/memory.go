package emu

import (
	"errors"
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"

	"github.com/sarchlab/rvsim/insts"
)

// Default memory capacities in bytes.
const (
	DefaultInstMemorySize uint64 = 4096
	DefaultDataMemorySize uint64 = 409600
)

// storageUnit is the granularity the backing storage is allocated in.
const storageUnit = 4096

var (
	// ErrAddressOutOfRange is returned for accesses that run past the end of
	// a memory.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrInstMemOverflow is returned when a program image does not fit in
	// instruction memory.
	ErrInstMemOverflow = errors.New("program image larger than instruction memory")
)

func newStorage(size uint64) *mem.Storage {
	capacity := (size + storageUnit - 1) / storageUnit * storageUnit
	if capacity == 0 {
		capacity = storageUnit
	}
	return mem.NewStorage(capacity)
}

// byteArray is a bounds-checked byte-addressable array backed by akita
// storage.
type byteArray struct {
	name    string
	size    uint64
	storage *mem.Storage
}

func (b *byteArray) read(addr uint32, n uint64) ([]byte, error) {
	if uint64(addr)+n > b.size {
		return nil, fmt.Errorf("%w: %s read of %d bytes at 0x%x (size 0x%x)",
			ErrAddressOutOfRange, b.name, n, addr, b.size)
	}

	data, err := b.storage.Read(uint64(addr), n)
	if err != nil {
		return nil, fmt.Errorf("%s read at 0x%x: %w", b.name, addr, err)
	}
	return data, nil
}

func (b *byteArray) write(addr uint32, data []byte) error {
	if uint64(addr)+uint64(len(data)) > b.size {
		return fmt.Errorf("%w: %s write of %d bytes at 0x%x (size 0x%x)",
			ErrAddressOutOfRange, b.name, len(data), addr, b.size)
	}

	if err := b.storage.Write(uint64(addr), data); err != nil {
		return fmt.Errorf("%s write at 0x%x: %w", b.name, addr, err)
	}
	return nil
}

func littleEndian(data []byte) uint32 {
	var value uint32
	for i, b := range data {
		value |= uint32(b) << (8 * i)
	}
	return value
}

// DataMemory is the byte-addressable little-endian data memory.
//
// Loads are byte or word sized, stores are halfword or word sized. The wide
// form is selected by funct3 == 010 in both directions; any other funct3
// selects the narrow form.
type DataMemory struct {
	byteArray
}

// NewDataMemory creates a zero-filled data memory of size bytes.
func NewDataMemory(size uint64) *DataMemory {
	return &DataMemory{byteArray{
		name:    "data memory",
		size:    size,
		storage: newStorage(size),
	}}
}

// Size returns the capacity in bytes.
func (m *DataMemory) Size() uint64 {
	return m.size
}

// Read loads from addr when enable is set and returns 0 otherwise. The wide
// form returns the little-endian word at addr; the narrow form returns the
// single byte at addr in the low 8 bits.
func (m *DataMemory) Read(addr uint32, enable bool, funct3 uint8) (int32, error) {
	if !enable {
		return 0, nil
	}

	n := uint64(1)
	if funct3 == insts.Funct3Word {
		n = 4
	}

	data, err := m.read(addr, n)
	if err != nil {
		return 0, err
	}
	return int32(littleEndian(data)), nil
}

// Write stores value at addr when enable is set. The low two bytes are
// always written; the wide form also writes the upper two.
func (m *DataMemory) Write(addr uint32, value uint32, enable bool, funct3 uint8) error {
	if !enable {
		return nil
	}

	buf := []byte{byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)}
	if funct3 != insts.Funct3Word {
		buf = buf[:2]
	}
	return m.write(addr, buf)
}

// LoadBytes copies data into memory starting at addr.
func (m *DataMemory) LoadBytes(addr uint32, data []byte) error {
	return m.write(addr, data)
}

// Bytes returns a copy of n bytes starting at addr.
func (m *DataMemory) Bytes(addr uint32, n uint64) ([]byte, error) {
	return m.read(addr, n)
}

// InstructionMemory holds the program image. It is read-only after
// construction.
type InstructionMemory struct {
	byteArray
}

// NewInstructionMemory creates an instruction memory of size bytes and
// copies image into it from address 0.
func NewInstructionMemory(image []byte, size uint64) (*InstructionMemory, error) {
	if uint64(len(image)) > size {
		return nil, fmt.Errorf("%w: %d bytes, capacity %d", ErrInstMemOverflow, len(image), size)
	}

	m := &InstructionMemory{byteArray{
		name:    "instruction memory",
		size:    size,
		storage: newStorage(size),
	}}

	if len(image) > 0 {
		if err := m.write(0, image); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Size returns the capacity in bytes.
func (m *InstructionMemory) Size() uint64 {
	return m.size
}

// Fetch returns the little-endian instruction word at pc.
func (m *InstructionMemory) Fetch(pc uint32) (uint32, error) {
	data, err := m.read(pc, 4)
	if err != nil {
		return 0, err
	}
	return littleEndian(data), nil
}
