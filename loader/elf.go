package loader

import (
	"debug/elf"
	"fmt"
	"io"
)

// LoadELF parses a 32-bit little-endian RISC-V ELF executable and flattens
// its PT_LOAD segments into an image based at address 0. Every segment must
// lie within capacity bytes. The program length is the end of the highest
// segment.
func LoadELF(path string, capacity uint64) (*Program, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("not a 32-bit ELF file")
	}

	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("not a RISC-V ELF file (machine type: %v)", f.Machine)
	}

	if f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("not a little-endian ELF file")
	}

	var end uint64
	image := make([]byte, capacity)

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		if phdr.Filesz > phdr.Memsz {
			return nil, fmt.Errorf("segment at 0x%x: file size 0x%x exceeds memory size 0x%x",
				phdr.Vaddr, phdr.Filesz, phdr.Memsz)
		}

		if phdr.Vaddr+phdr.Memsz > capacity {
			return nil, fmt.Errorf("%w: segment 0x%x-0x%x exceeds capacity 0x%x",
				ErrImageTooLarge, phdr.Vaddr, phdr.Vaddr+phdr.Memsz, capacity)
		}

		if phdr.Filesz > 0 {
			seg := image[phdr.Vaddr : phdr.Vaddr+phdr.Filesz]
			n, err := phdr.ReadAt(seg, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		if e := phdr.Vaddr + phdr.Memsz; e > end {
			end = e
		}
	}

	if f.Entry >= capacity {
		return nil, fmt.Errorf("entry point 0x%x outside instruction memory", f.Entry)
	}

	return &Program{
		Image:  image[:end],
		Length: end,
		Entry:  uint32(f.Entry),
		Format: FormatELF,
	}, nil
}
