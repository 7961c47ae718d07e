package nes

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// newTestBus builds a bus with logging disabled, ready for direct RAM
// manipulation in tests. Loads the reset vector to point at 0x8000, the
// conventional start of cartridge PRG space.
func newTestBus() *Bus {
	bus := NewBus(false, false)
	bus.Ram[resetVectAddr] = 0x00
	bus.Ram[resetVectAddr+1] = 0x80
	bus.Cpu.Reset()
	// Reset leaves Cycles at 7; tests want the next Clock() to fetch.
	bus.Cpu.Cycles = 0
	return bus
}

// load writes prg starting at addr into RAM.
func load(bus *Bus, addr uint16, prg ...byte) {
	for i, b := range prg {
		bus.Ram[addr+uint16(i)] = b
	}
}

// runInstruction clocks the CPU once (triggering fetch+execute) and drains
// the remaining announced cycles, returning the executed instruction's
// mnemonic and total cycle count spent.
func runInstruction(bus *Bus) (mnemonic string, cycles int) {
	cpu := bus.Cpu
	opcode := bus.Ram[cpu.Pc]
	mnemonic = cpu.InstLookup[opcode].Name

	cpu.Clock()
	cycles = 1
	for cpu.Cycles != 0 {
		cpu.Clock()
		cycles++
	}

	return mnemonic, cycles
}

////////////////////////////////////////////////////////////////
// Reset / interrupts

func TestReset(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	if cpu.Pc != 0x8000 {
		t.Errorf("Pc = %#04x, want %#04x", cpu.Pc, 0x8000)
	}
	if cpu.Sp != 0xFD {
		t.Errorf("Sp = %#02x, want %#02x", cpu.Sp, 0xFD)
	}
	if cpu.getFlag(StatusFlagU) == 0 {
		t.Error("U flag should be set after reset")
	}
	if cpu.getFlag(StatusFlagI) == 0 {
		t.Error("I flag should be set after reset")
	}
}

// BRK pushes PC+2 and P|B|U, loads PC from the IRQ/BRK vector, and RTI is
// its exact inverse: after the round trip every visible register is back
// to where it started except PC, which resumes one byte after the BRK's
// padding byte.
func TestBrkRtiRoundTrip(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, irqVectAddr, 0x00, 0x90) // BRK/IRQ vector -> 0x9000
	load(bus, 0x8000, 0x00, 0x00)      // BRK, padding byte
	load(bus, 0x9000, 0x40)            // RTI

	cpu.A, cpu.X, cpu.Y = 0x11, 0x22, 0x33
	cpu.setFlag(StatusFlagC, true)

	runInstruction(bus) // BRK

	if cpu.Pc != 0x9000 {
		t.Fatalf("after BRK, Pc = %#04x, want %#04x", cpu.Pc, 0x9000)
	}
	pushedStatus := bus.Ram[stackBase|uint16(cpu.Sp+1)]
	if pushedStatus&byte(StatusFlagB) == 0 {
		t.Error("pushed status should have B set")
	}
	if pushedStatus&byte(StatusFlagU) == 0 {
		t.Error("pushed status should have U set")
	}
	if cpu.getFlag(StatusFlagI) == 0 {
		t.Error("I flag should be set after BRK")
	}

	runInstruction(bus) // RTI

	if cpu.Pc != 0x8002 {
		t.Errorf("after RTI, Pc = %#04x, want %#04x (BRK+2)", cpu.Pc, 0x8002)
	}
	if cpu.getFlag(StatusFlagB) != 0 {
		t.Error("B flag should read 0 on the live register after RTI")
	}
	if cpu.getFlag(StatusFlagC) == 0 {
		t.Error("C flag should have survived the BRK/RTI round trip")
	}
}

// NMI behaves like an unmaskable BRK: it fires even with I set, and uses
// its own vector.
func TestNmiIgnoresInterruptDisable(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, nmiVectAddr, 0x00, 0xA0)
	cpu.setFlag(StatusFlagI, true)

	cpu.NMI()

	if cpu.Pc != 0xA000 {
		t.Errorf("Pc = %#04x, want %#04x", cpu.Pc, 0xA000)
	}
	if cpu.Cycles != 8 {
		t.Errorf("NMI Cycles = %d, want 8", cpu.Cycles)
	}
}

func TestIrqIgnoredWhenDisabled(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	cpu.setFlag(StatusFlagI, true)
	pc := cpu.Pc

	cpu.IRQ()

	if cpu.Pc != pc {
		t.Errorf("IRQ fired while I flag set: Pc moved from %#04x to %#04x", pc, cpu.Pc)
	}
}

////////////////////////////////////////////////////////////////
// Subroutines

func TestJsrRtsRoundTrip(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0x20, 0x00, 0x90) // JSR $9000
	load(bus, 0x9000, 0x60)             // RTS

	runInstruction(bus) // JSR

	if cpu.Pc != 0x9000 {
		t.Fatalf("after JSR, Pc = %#04x, want %#04x", cpu.Pc, 0x9000)
	}
	retAddr := readWordFromStack(bus, cpu.Sp)
	if retAddr != 0x8002 {
		t.Errorf("JSR pushed return address %#04x, want %#04x (JSR addr + 2)", retAddr, 0x8002)
	}

	runInstruction(bus) // RTS

	if cpu.Pc != 0x8003 {
		t.Errorf("after RTS, Pc = %#04x, want %#04x", cpu.Pc, 0x8003)
	}
}

// readWordFromStack reads the two bytes JSR pushed (high then low), as a
// little-endian-assembled value, without disturbing Sp.
func readWordFromStack(bus *Bus, sp byte) uint16 {
	hi := bus.Ram[stackBase|uint16(sp+2)]
	lo := bus.Ram[stackBase|uint16(sp+1)]
	return uint16(hi)<<8 | uint16(lo)
}

////////////////////////////////////////////////////////////////
// Addressing modes

func TestAmIndJmpPageWrapBug(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	// Pointer ends in 0xFF: the real 6502 fails to carry into the next
	// page when reading the indirect address's high byte.
	load(bus, 0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	bus.Ram[0x02FF] = 0x40
	bus.Ram[0x0200] = 0x50 // wrong-page byte the bug reads instead of 0x0300
	bus.Ram[0x0300] = 0x60

	runInstruction(bus)

	want := uint16(0x5040)
	if cpu.Pc != want {
		t.Errorf("Pc = %#04x, want %#04x (page-wrap bug not reproduced)", cpu.Pc, want)
	}
}

func TestAmAbxPageCrossAddsCycle(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0xBD, 0xFF, 0x20) // LDA $20FF,X
	cpu.X = 0x01                        // crosses into $2100

	_, cycles := runInstruction(bus)
	if cycles != 5 { // base 4 + 1 page-cross penalty
		t.Errorf("LDA abs,X page-crossing cycles = %d, want 5", cycles)
	}
}

func TestAmAbxNoPageCross(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0xBD, 0x00, 0x20) // LDA $2000,X
	cpu.X = 0x01

	_, cycles := runInstruction(bus)
	if cycles != 4 {
		t.Errorf("LDA abs,X cycles = %d, want 4", cycles)
	}
}

////////////////////////////////////////////////////////////////
// Instructions

func TestOpAdcSignedOverflow(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0x69, 0x01) // ADC #$01
	cpu.A = 0x7F                  // +127 + 1 overflows into negative

	runInstruction(bus)

	if cpu.A != 0x80 {
		t.Errorf("A = %#02x, want %#02x", cpu.A, 0x80)
	}
	if cpu.getFlag(StatusFlagV) == 0 {
		t.Error("V flag should be set on signed overflow")
	}
	if cpu.getFlag(StatusFlagN) == 0 {
		t.Error("N flag should be set")
	}
	if cpu.getFlag(StatusFlagC) != 0 {
		t.Error("C flag should be clear, no unsigned carry occurred")
	}
}

func TestOpSbcAsInvertedAdc(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0xE9, 0x01) // SBC #$01
	cpu.A = 0x05
	cpu.setFlag(StatusFlagC, true) // carry set means no borrow going in

	runInstruction(bus)

	if cpu.A != 0x04 {
		t.Errorf("A = %#02x, want %#02x", cpu.A, 0x04)
	}
	if cpu.getFlag(StatusFlagC) == 0 {
		t.Error("C flag should remain set, no borrow occurred")
	}
}

func TestOpAndClearsNegativeFlag(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0x29, 0x0F) // AND #$0F
	cpu.A = 0x80                  // N set going in

	runInstruction(bus)

	if cpu.A != 0x00 {
		t.Errorf("A = %#02x, want 0x00", cpu.A)
	}
	if cpu.getFlag(StatusFlagN) != 0 {
		t.Error("N flag should be cleared, bit 7 of result is 0")
	}
	if cpu.getFlag(StatusFlagZ) == 0 {
		t.Error("Z flag should be set, result is 0")
	}
}

func TestOpAslMemoryUsesResultNotStaleAccumulator(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0x06, 0x10) // ASL $10
	bus.Ram[0x0010] = 0x80        // shifts to 0x00, carry set
	cpu.A = 0x7F                  // accumulator is untouched by memory ASL

	runInstruction(bus)

	if bus.Ram[0x0010] != 0x00 {
		t.Errorf("memory at $10 = %#02x, want 0x00", bus.Ram[0x0010])
	}
	if cpu.getFlag(StatusFlagZ) == 0 {
		t.Error("Z flag should reflect the shifted memory value, not cpu.A")
	}
	if cpu.getFlag(StatusFlagC) == 0 {
		t.Error("C flag should carry the old bit 7")
	}
}

func TestOpPlpClearsBreakSetsUnused(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	cpu.stackPush(0xFF)      // all flags set, including B
	load(bus, 0x8000, 0x28) // PLP

	runInstruction(bus)

	if cpu.getFlag(StatusFlagB) != 0 {
		t.Error("B flag should always read 0 on the live status register")
	}
	if cpu.getFlag(StatusFlagU) == 0 {
		t.Error("U flag should always read 1 on the live status register")
	}
}

// TestStackPointerWraps checks page-1 wraparound: pushing past 0x00 wraps
// to 0xFF rather than overflowing outside the stack page.
func TestStackPointerWraps(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	cpu.Sp = 0x00
	cpu.stackPush(0xAB)

	if cpu.Sp != 0xFF {
		t.Errorf("Sp = %#02x, want %#02x after wraparound push", cpu.Sp, 0xFF)
	}
	if bus.Ram[stackBase] != 0xAB {
		t.Errorf("pushed byte landed at %#04x, want $0100", stackBase)
	}
}

////////////////////////////////////////////////////////////////
// Illegal opcodes are out of scope; unmapped bytes fall back to a fixed
// 2-cycle no-op, never a panic.
func TestUnmappedOpcodeFallsBackToXXX(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0x02) // not a legal 6502 opcode

	mnemonic, cycles := runInstruction(bus)
	if mnemonic != "XXX" {
		t.Errorf("mnemonic = %s, want XXX", mnemonic)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
}

func TestDebugSnapshotReportsDecodedMode(t *testing.T) {
	bus := newTestBus()
	cpu := bus.Cpu

	load(bus, 0x8000, 0xA9, 0x42) // LDA #$42
	runInstruction(bus)

	snap := cpu.Debug()
	if snap.Mnemonic != "LDA" || snap.Mode != "IMM" {
		t.Errorf("Debug() = %s, unexpected snapshot: %s", spew.Sdump(snap), snap.Mode)
	}
	if snap.A != 0x42 {
		t.Errorf("Debug().A = %#02x, want %#02x", snap.A, 0x42)
	}
}
