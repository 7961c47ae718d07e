package nes

import "testing"

func TestRamMirroring(t *testing.T) {
	bus := NewBus(false, false)

	bus.CpuWrite(0x0000, 0xAB)

	mirrors := []uint16{0x0800, 0x1000, 0x1800}
	for _, addr := range mirrors {
		if got := bus.CpuRead(addr); got != 0xAB {
			t.Errorf("CpuRead(%#04x) = %#02x, want %#02x (mirror of $0000)", addr, got, 0xAB)
		}
	}
}

func TestPpuRegisterMirroring(t *testing.T) {
	bus := NewBus(false, false)

	bus.CpuWrite(0x2000, 0x7E) // PPUCTRL

	mirrors := []uint16{0x2008, 0x2010, 0x3FF8}
	for _, addr := range mirrors {
		bus.CpuRead(addr) // should not panic; stubbed registers return data only for implemented cases
	}

	if bus.Ppu.ctrl != PpuReg(0x7E) {
		t.Errorf("Ppu.ctrl = %#02x, want %#02x", bus.Ppu.ctrl, 0x7E)
	}
}

func TestApuIoWindowIsFlatRegisterArray(t *testing.T) {
	bus := NewBus(false, false)

	bus.CpuWrite(0x4000, 0x55)
	if got := bus.CpuRead(0x4000); got != 0x55 {
		t.Errorf("CpuRead(0x4000) = %#02x, want 0x55", got)
	}
}

func TestCartridgeWindowIsFlatRWBeforeCartridgeInserted(t *testing.T) {
	bus := NewBus(false, false)

	// Spec: the whole 0x4020-0xFFFF window is R/W in this core (mapper =
	// identity), regardless of whether a cartridge has been inserted yet.
	bus.CpuWrite(0x4020, 0x12)
	if got := bus.CpuRead(0x4020); got != 0x12 {
		t.Errorf("CpuRead(0x4020) = %#02x, want 0x12", got)
	}

	bus.CpuWrite(0xFFFF, 0x34)
	if got := bus.CpuRead(0xFFFF); got != 0x34 {
		t.Errorf("CpuRead(0xFFFF) = %#02x, want 0x34", got)
	}
}

func TestCartridgeWindowLoadsPrgOnInsert(t *testing.T) {
	bus := NewBus(false, false)
	cart := newSyntheticCartridge(t, 1, 1, 0)
	cart.prgMem[0] = 0xAB
	cart.prgMem[len(cart.prgMem)-1] = 0xCD
	bus.InsertCartridge(cart)

	if got := bus.CpuRead(0x8000); got != 0xAB {
		t.Errorf("CpuRead(0x8000) = %#02x, want 0xAB (first PRG byte)", got)
	}
	// 1 PRG bank (16KB) mirrors into the top half of the window too.
	if got := bus.CpuRead(0xC000); got != 0xAB {
		t.Errorf("CpuRead(0xC000) = %#02x, want 0xAB (mirrored first PRG byte)", got)
	}
	if got := bus.CpuRead(0xBFFF); got != 0xCD {
		t.Errorf("CpuRead(0xBFFF) = %#02x, want 0xCD (last PRG byte)", got)
	}

	// The cartridge window stays writable flat storage after insertion too.
	bus.CpuWrite(0x8000, 0x99)
	if got := bus.CpuRead(0x8000); got != 0x99 {
		t.Errorf("CpuRead(0x8000) = %#02x, want 0x99", got)
	}
}

func TestInstructionStream(t *testing.T) {
	bus := newTestBus()

	// LDA #$01; STA $0200; LDX #$05; loop: DEX; BNE loop; BRK
	load(bus, 0x8000,
		0xA9, 0x01, // LDA #$01
		0x8D, 0x00, 0x02, // STA $0200
		0xA2, 0x05, // LDX #$05
		0xCA,       // DEX
		0xD0, 0xFD, // BNE -3 (loop)
	)

	cyclesToRun := 200
	for i := 0; i < cyclesToRun; i++ {
		bus.Cpu.Clock()
	}

	if bus.Ram[0x0200] != 0x01 {
		t.Errorf("RAM[$0200] = %#02x, want 0x01", bus.Ram[0x0200])
	}
	if bus.Cpu.X != 0x00 {
		t.Errorf("X = %#02x, want 0x00 after the DEX/BNE loop finished", bus.Cpu.X)
	}
}
