package loader_test

import (
	"encoding/binary"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rvsim/insts"
	"github.com/sarchlab/rvsim/loader"
)

type segment struct {
	vaddr   uint32
	data    []byte
	memSize uint32
}

var _ = Describe("ELF Loader", func() {
	var tempDir string

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
	})

	code := insts.BuildProgram(
		insts.EncodeADDI(10, 0, 42),
		insts.EncodeADDI(11, 0, 7),
	)

	Context("with a valid RV32 ELF binary", func() {
		var elfPath string

		BeforeEach(func() {
			elfPath = filepath.Join(tempDir, "test.elf")
			createRV32ELF(elfPath, 0x10, 243, segment{vaddr: 0x10, data: code, memSize: uint32(len(code))})
		})

		It("should flatten the segment into the image", func() {
			prog, err := loader.LoadELF(elfPath, 4096)
			Expect(err).NotTo(HaveOccurred())

			Expect(prog.Format).To(Equal(loader.FormatELF))
			Expect(prog.Entry).To(Equal(uint32(0x10)))
			Expect(prog.Length).To(Equal(uint64(0x18)))
			Expect(prog.Image[:0x10]).To(Equal(make([]byte, 0x10)))
			Expect(prog.Image[0x10:0x18]).To(Equal(code))
		})

		It("should be detected by Load", func() {
			prog, err := loader.Load(elfPath, 4096)
			Expect(err).NotTo(HaveOccurred())
			Expect(prog.Format).To(Equal(loader.FormatELF))
		})

		It("should reject segments beyond the capacity", func() {
			_, err := loader.LoadELF(elfPath, 0x14)
			Expect(err).To(MatchError(loader.ErrImageTooLarge))
		})
	})

	It("should zero-fill and count BSS", func() {
		elfPath := filepath.Join(tempDir, "bss.elf")
		createRV32ELF(elfPath, 0, 243,
			segment{vaddr: 0, data: code, memSize: uint32(len(code))},
			segment{vaddr: 0x100, data: []byte{0xAA}, memSize: 0x10},
		)

		prog, err := loader.LoadELF(elfPath, 4096)
		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Length).To(Equal(uint64(0x110)))
		Expect(prog.Image[0x100]).To(Equal(byte(0xAA)))
		Expect(prog.Image[0x101:0x110]).To(Equal(make([]byte, 0xF)))
	})

	It("should reject segments with more file bytes than memory bytes", func() {
		elfPath := filepath.Join(tempDir, "filesz.elf")
		createRV32ELF(elfPath, 0, 243, segment{vaddr: 0xFF0, data: make([]byte, 0x20), memSize: 4})

		var err error
		Expect(func() { _, err = loader.LoadELF(elfPath, 4096) }).NotTo(Panic())
		Expect(err).To(MatchError(ContainSubstring("exceeds memory size")))
	})

	It("should reject non RISC-V machines", func() {
		elfPath := filepath.Join(tempDir, "arm.elf")
		createRV32ELF(elfPath, 0, 40, segment{vaddr: 0, data: code, memSize: uint32(len(code))})

		_, err := loader.LoadELF(elfPath, 4096)
		Expect(err).To(MatchError(ContainSubstring("not a RISC-V ELF file")))
	})

	It("should reject 64-bit ELF files", func() {
		elfPath := filepath.Join(tempDir, "elf64.elf")
		header := make([]byte, 64)
		copy(header[0:4], []byte{0x7f, 'E', 'L', 'F'})
		header[4] = 2 // ELFCLASS64
		header[5] = 1
		header[6] = 1
		binary.LittleEndian.PutUint16(header[16:18], 2)
		binary.LittleEndian.PutUint16(header[18:20], 243)
		binary.LittleEndian.PutUint32(header[20:24], 1)
		binary.LittleEndian.PutUint16(header[52:54], 64)
		binary.LittleEndian.PutUint16(header[54:56], 56)
		Expect(os.WriteFile(elfPath, header, 0644)).To(Succeed())

		_, err := loader.LoadELF(elfPath, 4096)
		Expect(err).To(MatchError(ContainSubstring("not a 32-bit ELF file")))
	})

	It("should reject an entry point outside memory", func() {
		elfPath := filepath.Join(tempDir, "entry.elf")
		createRV32ELF(elfPath, 0x2000, 243, segment{vaddr: 0, data: code, memSize: uint32(len(code))})

		_, err := loader.LoadELF(elfPath, 4096)
		Expect(err).To(MatchError(ContainSubstring("entry point")))
	})

	It("should report a missing file", func() {
		_, err := loader.LoadELF(filepath.Join(tempDir, "missing.elf"), 4096)
		Expect(err).To(MatchError(ContainSubstring("failed to open ELF file")))
	})
})

// createRV32ELF writes a minimal ELF32 executable with one PT_LOAD program
// header per segment and the segment data right after the headers.
func createRV32ELF(path string, entry uint32, machine uint16, segs ...segment) {
	const ehsize, phentsize = 52, 32

	header := make([]byte, ehsize)
	copy(header[0:4], []byte{0x7f, 'E', 'L', 'F'})
	header[4] = 1                                         // ELFCLASS32
	header[5] = 1                                         // little endian
	header[6] = 1                                         // version
	binary.LittleEndian.PutUint16(header[16:18], 2)       // executable
	binary.LittleEndian.PutUint16(header[18:20], machine) // e_machine
	binary.LittleEndian.PutUint32(header[20:24], 1)       // version
	binary.LittleEndian.PutUint32(header[24:28], entry)   // entry
	binary.LittleEndian.PutUint32(header[28:32], ehsize)  // phoff
	binary.LittleEndian.PutUint16(header[40:42], ehsize)
	binary.LittleEndian.PutUint16(header[42:44], phentsize)
	binary.LittleEndian.PutUint16(header[44:46], uint16(len(segs)))
	binary.LittleEndian.PutUint16(header[46:48], 40) // shentsize

	offset := uint32(ehsize + phentsize*len(segs))
	progHeaders := make([]byte, 0, phentsize*len(segs))
	var payload []byte

	for _, s := range segs {
		ph := make([]byte, phentsize)
		binary.LittleEndian.PutUint32(ph[0:4], 1) // PT_LOAD
		binary.LittleEndian.PutUint32(ph[4:8], offset)
		binary.LittleEndian.PutUint32(ph[8:12], s.vaddr)
		binary.LittleEndian.PutUint32(ph[12:16], s.vaddr)
		binary.LittleEndian.PutUint32(ph[16:20], uint32(len(s.data)))
		binary.LittleEndian.PutUint32(ph[20:24], s.memSize)
		binary.LittleEndian.PutUint32(ph[24:28], 0x5) // PF_R | PF_X
		binary.LittleEndian.PutUint32(ph[28:32], 4)

		progHeaders = append(progHeaders, ph...)
		payload = append(payload, s.data...)
		offset += uint32(len(s.data))
	}

	file, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())
	defer func() { _ = file.Close() }()

	_, _ = file.Write(header)
	_, _ = file.Write(progHeaders)
	_, _ = file.Write(payload)
}
