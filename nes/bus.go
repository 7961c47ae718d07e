package nes

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"time"
)

// Main bus used by the CPU.
type Bus struct {
	Cpu        *Cpu6502        // NES CPU.
	Ppu        *Ppu            // Picture processing unit.
	Ram        [64 * 1024]byte // 64kb RAM used for initial development.
	Cart       *Cartridge      // NES Cartridge.
	Controller *Controller     // NES Controller.
	Disp       *Display
	apuIO      [apuMaxAddr - apuMinAddr + 1]byte // Stubbed APU/IO register window.

	ClockCount int

	isDebug   bool // Enable debug panel
	isLogging bool // Enable logging
}

const (
	// RAM
	ramMinAddr uint16 = 0x0000
	ramMaxAddr uint16 = 0x1FFF
	ramMirror  uint16 = 0x07FF // mirror every 2KB.

	// PPU
	ppuMinAddr uint16 = 0x2000
	ppuMaxAddr uint16 = 0x3FFF
	ppuMirror  uint16 = 0x0007 // mirror every 8 bytes.

	// APU / IO (including the APU/IO test range); stubbed to a flat
	// register array since the APU is out of scope for this core.
	apuMinAddr uint16 = 0x4000
	apuMaxAddr uint16 = 0x401F

	// Cartridge
	cartMinAddr uint16 = 0x4020
	cartMaxAddr uint16 = 0xFFFF

	// Frames per second
	fps float64 = 30.0
)

func NewBus(isDebug, isLogging bool) *Bus {
	// Create a new CPU. Here we use a 6502.
	cpu := NewCpu6502(isLogging)

	// Attach devices to the bus.
	bus := &Bus{
		Cpu:        cpu,
		Ppu:        NewPpu(),
		Ram:        [64 * 1024]byte{},
		Controller: NewController(),
		isDebug:    isDebug,
		isLogging:  isLogging,
	}

	// Connect this bus to the cpu.
	cpu.ConnectBus(bus)

	return bus
}

// Read implements the CPU-facing bus contract: read(addr, readOnly) -> u8.
// readOnly signals a debugger peek that must not trigger peripheral side
// effects; core memory ignores it since plain RAM has none.
func (b *Bus) Read(addr uint16, readOnly bool) byte {
	if readOnly && addr >= ppuMinAddr && addr <= ppuMaxAddr {
		// Same value CpuRead returns, without touching PPU state.
		switch addr & ppuMirror {
		case 0x0002:
			return byte(b.Ppu.status) & 0xE0
		case 0x0004:
			return b.Ppu.oam.read(b.Ppu.oamAddr)
		case 0x0007:
			if b.Ppu.vramAddr.value() >= 0x3F00 {
				return b.Ppu.ppuRead(b.Ppu.vramAddr.value())
			}
			return b.Ppu.dataBuffer
		}
		return 0x00
	}
	return b.CpuRead(addr)
}

// Write implements the CPU-facing bus contract: write(addr, data).
func (b *Bus) Write(addr uint16, data byte) {
	b.CpuWrite(addr, data)
}

// Run the NES.
func (b *Bus) Run() {
	// Create a PixelGL display for the PPU to render to.
	display := NewDisplay(b.isDebug)
	b.Disp = display

	// PPU needs access to the display.
	b.Ppu.ConnectDisplay(display)

	intervalInMilli := (1 / fps) * 1000
	interval := time.Duration(intervalInMilli) * time.Millisecond
	fmt.Println("Frame refresh time:", interval)

	// Use a timer to keep frames rendered steadily at a set FPS.
	var t time.Time
	for !display.window.Closed() {
		// Run 1 whole frame.
		t = time.Now()
		for !b.Ppu.frameComplete {
			b.Clock()
		}

		b.Controller.updateControllerInput(b.Disp.window)

		if b.isDebug {
			b.DrawDebugPanel()
			b.Disp.WriteControllerDebugString(b.Controller.debugString())
		}

		b.Disp.UpdateScreen()

		time.Sleep(interval - time.Since(t))

		// Prepare for new frame
		b.Ppu.frameComplete = false
	}
}

// RunHeadless drives the emulation loop without opening a pixelgl window,
// for environments with no GL context (CI, automated nestest-style runs).
// It runs full frames back-to-back as fast as the host can go and checks
// the nestest error codes after each one.
func (b *Bus) RunHeadless(frames int) {
	for i := 0; frames <= 0 || i < frames; i++ {
		for !b.Ppu.frameComplete {
			b.Clock()
		}
		b.Ppu.frameComplete = false

		b.CheckForNestestErrors()
	}
}

// Used by the CPU to read data from the main bus at a specified address.
func (b *Bus) CpuRead(addr uint16) byte {
	var data byte

	if addr >= ramMinAddr && addr <= ramMaxAddr {
		data = b.Ram[addr&ramMirror]
	} else if addr >= ppuMinAddr && addr <= ppuMaxAddr {
		data = b.Ppu.cpuRead(addr & ppuMirror)
	} else if addr >= apuMinAddr && addr <= apuMaxAddr {
		data = b.apuIO[addr-apuMinAddr]
	} else if addr >= cartMinAddr && addr <= cartMaxAddr {
		// Spec §3/§4.1: the cartridge window is flat, always-addressable
		// R/W storage in this core (mapper = identity) — bank-switching
		// mapper logic beyond the flat PRG window is out of scope, so this
		// core never dereferences b.Cart here, and reads are well-defined
		// whether or not a cartridge has been inserted yet.
		data = b.Ram[addr]
	}

	return data
}

// Used by the CPU to write data to the main bus at a specified address.
func (b *Bus) CpuWrite(addr uint16, data byte) {
	if addr >= ramMinAddr && addr <= ramMaxAddr {
		b.Ram[addr&ramMirror] = data
	} else if addr >= ppuMinAddr && addr <= ppuMaxAddr {
		b.Ppu.cpuWrite(addr&ppuMirror, data)
	} else if addr >= apuMinAddr && addr <= apuMaxAddr {
		b.apuIO[addr-apuMinAddr] = data
	} else if addr >= cartMinAddr && addr <= cartMaxAddr {
		b.Ram[addr] = data
	}

}

// Load a cartridge to the NES. The cartridge is connected to both the CPU and
// PPU: PPU-side CHR access still goes through the cartridge's mapper (see
// Ppu.ppuRead/ppuWrite), but the CPU-side PRG window is identity-mapped flat
// storage, so the loaded PRG bytes are copied into place here, once, instead
// of being translated by a mapper on every access.
func (b *Bus) InsertCartridge(cart *Cartridge) {
	b.Cart = cart
	b.Ppu.ConnectCartridge(cart)

	b.loadCartridgePrg(cart)
}

// loadCartridgePrg flattens the cartridge's PRG ROM into the bus's
// 0x8000-0xFFFF window. A 16KB PRG ROM is mirrored across both halves of the
// window, matching Mapper000's NROM mirroring; a 32KB PRG ROM fills it
// directly.
func (b *Bus) loadCartridgePrg(cart *Cartridge) {
	const prgWindow = 0x8000
	prgBanks := len(cart.prgMem) / (16 * 1024)

	for i, prgByte := range cart.prgMem {
		b.Ram[prgWindow+i] = prgByte
		if prgBanks <= 1 {
			b.Ram[prgWindow+0x4000+i] = prgByte
		}
	}
}

// Reset the NES.
func (b *Bus) Reset() {
	b.Cpu.Reset()

	b.ClockCount = 0
}

// 1 NES clock cycle.
func (b *Bus) Clock() {
	b.Ppu.Clock()

	// CPU runs 3 times slower than PPU.
	if b.ClockCount%3 == 0 {
		b.Cpu.Clock()
	}

	if b.Ppu.nmi {
		b.Ppu.nmi = false
		b.Cpu.NMI()
	}

	b.ClockCount++
}

// TODO: move this out of Bus, and into main or something. Also, rewrite this.
func (b *Bus) DrawDebugPanel() {
	defer TimeTrack(time.Now())

	// Pattern tables
	patternTable0 := b.Ppu.GetPatternTable(0)
	patternTable1 := b.Ppu.GetPatternTable(1)

	b.Disp.DrawDebugRGBA(8, int(gameH)-128-8, patternTable0)
	b.Disp.DrawDebugRGBA(128+16, int(gameH)-128-8, patternTable1)

	b.Disp.debugRegText.Clear()
	debugStr := b.getCpuDebugString()
	b.Disp.WriteRegDebugString(debugStr)

	// Disassembly
	diss := b.getDisassemblyLines()
	b.Disp.WriteInstDebugString(diss)
}

func (b *Bus) getDisassemblyLines() string {
	var buf bytes.Buffer

	pc := b.Cpu.Pc

	idx := pc
	for i := 0; i < 10; i++ {
		idx, err := getNextIdx(&b.Cpu.disassembly, idx)
		if err != nil {
			// End of the map
			break
		}
		idx++
		buf.WriteString(b.Cpu.disassembly[idx])
		buf.WriteByte('\n')
	}

	return buf.String()
}

// Items are stored by memory address, not all memory address are filled. This
// function returns the next item at or after the given memory address.
func getNextIdx(m *map[uint16]string, addr uint16) (uint16, error) {
	for {
		if _, ok := (*m)[addr]; ok {
			return addr, nil
		}
		if addr >= 0xFFFF {
			return 0, errors.New("End of map")
		}
		addr++
	}
}

func (b *Bus) getCpuDebugString() string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Flags: %08b\n", b.Cpu.Status))
	buf.WriteString(fmt.Sprintf("PC: %#04X\n", b.Cpu.Pc))
	buf.WriteString(fmt.Sprintf("A: %#02X\n", b.Cpu.A))
	buf.WriteString(fmt.Sprintf("X: %#02X\n", b.Cpu.X))
	buf.WriteString(fmt.Sprintf("Y: %#02X\n", b.Cpu.Y))
	buf.WriteString(fmt.Sprintf("SP: %#02X\n\n", b.Cpu.Sp))

	// Cycles
	buf.WriteString(fmt.Sprintf("Cycle Count: %d\n\n", b.Cpu.CycleCount))

	// Instructions
	//buf.WriteString(fmt.Sprintf(t, "%#02X: %s\n\n", b.Cpu.Opcode, nesEmu.Cpu.InstLookup[nesEmu.Cpu.Opcode].Name)
	buf.WriteString(fmt.Sprintf("Previous Instruction:\n%s\n", b.Cpu.OpDiss))

	return buf.String()
}

// Load a ROM to the NES.
func (b *Bus) Load(filepath string) {
	data, err := ioutil.ReadFile(filepath)

	if err != nil {
		log.Fatalf("Unable to open %v\n%v\n", filepath, err)
	}

	romOffset := 0x8000

	for i, bte := range data {
		b.Ram[romOffset+i] = bte
	}
}

// Load a slice of bytes to the NES.
func (b *Bus) LoadBytes(rom []byte) {
	romOffset := 0x8000

	for i, bte := range rom {
		b.Ram[romOffset+i] = bte
	}
}

// Used for testing the emulator with nestest.
func (b *Bus) CheckForNestestErrors() {
	errAddr1 := 0x02
	errAddr2 := 0x03

	if b.Ram[errAddr1] != 0x00 {
		log.Printf("nestest error %#X\n", b.Ram[errAddr1])
	}
	if b.Ram[errAddr2] != 0x00 {
		log.Printf("nestest error %#X\n", b.Ram[errAddr2])
	}
}
