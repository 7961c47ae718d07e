package nes

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"os"
	"testing"
)

// newSyntheticCartridge writes a minimal, well-formed iNES file to a temp
// path and loads it, since no real ROM image ships with this repository.
func newSyntheticCartridge(t *testing.T, prgChunks, chrChunks, mapperId byte) *Cartridge {
	t.Helper()

	f, err := ioutil.TempFile("", "synthetic-*.nes")
	if err != nil {
		t.Fatalf("TempFile: %v", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	header := CartridgeHeader{
		Name:         [4]byte{'N', 'E', 'S', 0x1A},
		PrgRomChunks: prgChunks,
		ChrRomChunks: chrChunks,
		Mapper1:      (mapperId & 0x0F) << 4,
		Mapper2:      (mapperId & 0xF0),
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, header); err != nil {
		t.Fatalf("binary.Write header: %v", err)
	}
	buf.Write(make([]byte, 16*1024*int(prgChunks)))
	buf.Write(make([]byte, 8*1024*int(chrChunks)))

	if _, err := f.Write(buf.Bytes()); err != nil {
		t.Fatalf("write rom: %v", err)
	}

	cart, err := NewCartridge(f.Name())
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}

	return cart
}

func TestNewCartridgeParsesHeader(t *testing.T) {
	cart := newSyntheticCartridge(t, 2, 1, 0)

	if len(cart.prgMem) != 2*16*1024 {
		t.Errorf("len(prgMem) = %d, want %d", len(cart.prgMem), 2*16*1024)
	}
	if len(cart.chrMem) != 8*1024 {
		t.Errorf("len(chrMem) = %d, want %d", len(cart.chrMem), 8*1024)
	}
	if _, ok := cart.mapper.(*Mapper000); !ok {
		t.Errorf("mapper = %T, want *Mapper000", cart.mapper)
	}
}

func TestNewCartridgeRejectsUnsupportedMapper(t *testing.T) {
	// Built by hand rather than via newSyntheticCartridge, which calls
	// t.Fatalf on error; this test wants to assert the error itself.
	f, ferr := ioutil.TempFile("", "unsupported-*.nes")
	if ferr != nil {
		t.Fatalf("TempFile: %v", ferr)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	header := CartridgeHeader{
		Name:         [4]byte{'N', 'E', 'S', 0x1A},
		PrgRomChunks: 1,
		ChrRomChunks: 1,
		Mapper1:      0xF0, // mapper ID 255, not implemented
		Mapper2:      0xF0,
	}
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, header)
	buf.Write(make([]byte, 16*1024))
	buf.Write(make([]byte, 8*1024))
	f.Write(buf.Bytes())

	if _, err := NewCartridge(f.Name()); err == nil {
		t.Error("expected an error for an unsupported mapper ID, got nil")
	}
}

func TestCartridgeCpuReadWriteRoundTrip(t *testing.T) {
	cart := newSyntheticCartridge(t, 1, 1, 0)

	cart.cpuWrite(0x8000, 0x42)
	if got := cart.cpuRead(0x8000); got != 0x42 {
		t.Errorf("cpuRead(0x8000) = %#02x, want 0x42", got)
	}
}

func TestCartridgePpuReadWriteRoundTrip(t *testing.T) {
	cart := newSyntheticCartridge(t, 1, 1, 0)

	cart.ppuWrite(0x0000, 0x7B)
	if got := cart.ppuRead(0x0000); got != 0x7B {
		t.Errorf("ppuRead(0x0000) = %#02x, want 0x7B", got)
	}
}
