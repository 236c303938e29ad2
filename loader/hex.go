package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadHex reads a hex image file. See ParseHex.
func LoadHex(path string, capacity uint64) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hex file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseHex(f, capacity)
}

// ParseHex reads whitespace-separated hex byte tokens ("93", "0x0a", "FF")
// into an image, in order, starting at address 0. The number of bytes read
// becomes the program length.
func ParseHex(r io.Reader, capacity uint64) (*Program, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	image := make([]byte, 0, capacity)
	for scanner.Scan() {
		tok := scanner.Text()

		if uint64(len(image)) == capacity {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, capacity)
		}

		digits := strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
		b, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w %q at byte %d", ErrBadHexByte, tok, len(image))
		}
		image = append(image, byte(b))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hex image: %w", err)
	}

	return &Program{
		Image:  image,
		Length: uint64(len(image)),
		Format: FormatHex,
	}, nil
}

// WriteHex writes image as one hex byte per line, the format ParseHex
// reads.
func WriteHex(w io.Writer, image []byte) error {
	bw := bufio.NewWriter(w)
	for _, b := range image {
		if _, err := fmt.Fprintf(bw, "%02x\n", b); err != nil {
			return err
		}
	}
	return bw.Flush()
}
