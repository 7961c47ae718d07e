package nes

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"time"
)

type Cpu6502 struct {
	Pc     uint16 // Program Counter
	Sp     byte   // Stack Pointer: low 8 bits of next free location on stack.
	A      byte   // Accumulator Register
	X      byte   // X Register
	Y      byte   // Y Register
	Status byte   // Processor Status Flags

	bus *Bus // Communication Bus

	// Internal variables
	Cycles        byte   // Remaining cycles for current insturction
	Opcode        byte   // Opcode representing next instruction to be executed
	AddrAbs       uint16 // Set by addressing mode functions, used by instructions
	AddrRel       uint16 // Relative displacement address used for branching
	Fetched       byte   // Byte of memory used by CPU instructions
	CycleCount    uint32 // Total # of cycles executed by the CPU
	isImpliedAddr bool   // Whether the current instruction's address mode is implied

	InstLookup [16 * 16]Instruction // Instruction operation lookup

	OpDiss string // Dissasembly for the current instruction, used for debug

	disassembly map[uint16]string // Most recent full-range disassembly, cached by Disassemble

	Logger *log.Logger // CPU logging
}

const (
	stackBase uint16 = 0x0100
)

func NewCpu6502(logging bool) *Cpu6502 {
	cpu := &Cpu6502{
		Pc:     0x0000,
		Sp:     0xFD,
		A:      0x00,
		X:      0x00,
		Y:      0x00,
		Status: 0x00,

		Cycles:        0,
		Opcode:        0x00,
		AddrAbs:       0x0000,
		AddrRel:       0x0000,
		Fetched:       0x00,
		isImpliedAddr: false,
		CycleCount:    0,
	}

	if logging {
		now := time.Now()
		logFile := fmt.Sprintf("./logs/cpu%s.log", now.Format("20060102-150405"))
		f, err := os.OpenFile(logFile, os.O_WRONLY|os.O_CREATE, 0664)
		if err != nil {
			log.Fatal("Unable to create CPU log file...\n", err)
		}

		cpu.Logger = log.New(f, "", 0)
	}

	// Create the lookup table containing all the CPU instructions.
	// Reference: http://archive.6502.org/datasheets/rockwell_r650x_r651x.pdf
	cpu.InstLookup = [16 * 16]Instruction{
		{"BRK", cpu.opBRK, cpu.amIMP, IMP, 7}, {"ORA", cpu.opORA, cpu.amIZX, IZX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"ORA", cpu.opORA, cpu.amZP0, ZP0, 3}, {"ASL", cpu.opASL, cpu.amZP0, ZP0, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"PHP", cpu.opPHP, cpu.amIMP, IMP, 3}, {"ORA", cpu.opORA, cpu.amIMM, IMM, 2}, {"ASL", cpu.opASL, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"ORA", cpu.opORA, cpu.amABS, ABS, 4}, {"ASL", cpu.opASL, cpu.amABS, ABS, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BPL", cpu.opBPL, cpu.amREL, REL, 2}, {"ORA", cpu.opORA, cpu.amIZY, IZY, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"ORA", cpu.opORA, cpu.amZPX, ZPX, 4}, {"ASL", cpu.opASL, cpu.amZPX, ZPX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CLC", cpu.opCLC, cpu.amIMP, IMP, 2}, {"ORA", cpu.opORA, cpu.amABY, ABY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"ORA", cpu.opORA, cpu.amABX, ABX, 4}, {"ASL", cpu.opASL, cpu.amABX, ABX, 7}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"JSR", cpu.opJSR, cpu.amABS, ABS, 6}, {"AND", cpu.opAND, cpu.amIZX, IZX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"BIT", cpu.opBIT, cpu.amZP0, ZP0, 3}, {"AND", cpu.opAND, cpu.amZP0, ZP0, 3}, {"ROL", cpu.opROL, cpu.amZP0, ZP0, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"PLP", cpu.opPLP, cpu.amIMP, IMP, 4}, {"AND", cpu.opAND, cpu.amIMM, IMM, 2}, {"ROL", cpu.opROL, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"BIT", cpu.opBIT, cpu.amABS, ABS, 4}, {"AND", cpu.opAND, cpu.amABS, ABS, 4}, {"ROL", cpu.opROL, cpu.amABS, ABS, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BMI", cpu.opBMI, cpu.amREL, REL, 2}, {"AND", cpu.opAND, cpu.amIZY, IZY, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"AND", cpu.opAND, cpu.amZPX, ZPX, 4}, {"ROL", cpu.opROL, cpu.amZPX, ZPX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"SEC", cpu.opSEC, cpu.amIMP, IMP, 2}, {"AND", cpu.opAND, cpu.amABY, ABY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"AND", cpu.opAND, cpu.amABX, ABX, 4}, {"ROL", cpu.opROL, cpu.amABX, ABX, 7}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"RTI", cpu.opRTI, cpu.amIMP, IMP, 6}, {"EOR", cpu.opEOR, cpu.amIZX, IZX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"EOR", cpu.opEOR, cpu.amZP0, ZP0, 3}, {"LSR", cpu.opLSR, cpu.amZP0, ZP0, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"PHA", cpu.opPHA, cpu.amIMP, IMP, 3}, {"EOR", cpu.opEOR, cpu.amIMM, IMM, 2}, {"LSR", cpu.opLSR, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"JMP", cpu.opJMP, cpu.amABS, ABS, 3}, {"EOR", cpu.opEOR, cpu.amABS, ABS, 4}, {"LSR", cpu.opLSR, cpu.amABS, ABS, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BVC", cpu.opBVC, cpu.amREL, REL, 2}, {"EOR", cpu.opEOR, cpu.amIZY, IZY, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"EOR", cpu.opEOR, cpu.amZPX, ZPX, 4}, {"LSR", cpu.opLSR, cpu.amZPX, ZPX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CLI", cpu.opCLI, cpu.amIMP, IMP, 2}, {"EOR", cpu.opEOR, cpu.amABY, ABY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"EOR", cpu.opEOR, cpu.amABX, ABX, 4}, {"LSR", cpu.opLSR, cpu.amABX, ABX, 7}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"RTS", cpu.opRTS, cpu.amIMP, IMP, 6}, {"ADC", cpu.opADC, cpu.amIZX, IZX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"ADC", cpu.opADC, cpu.amZP0, ZP0, 3}, {"ROR", cpu.opROR, cpu.amZP0, ZP0, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"PLA", cpu.opPLA, cpu.amIMP, IMP, 4}, {"ADC", cpu.opADC, cpu.amIMM, IMM, 2}, {"ROR", cpu.opROR, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"JMP", cpu.opJMP, cpu.amIND, IND, 5}, {"ADC", cpu.opADC, cpu.amABS, ABS, 4}, {"ROR", cpu.opROR, cpu.amABS, ABS, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BVS", cpu.opBVS, cpu.amREL, REL, 2}, {"ADC", cpu.opADC, cpu.amIZY, IZY, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"ADC", cpu.opADC, cpu.amZPX, ZPX, 4}, {"ROR", cpu.opROR, cpu.amZPX, ZPX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"SEI", cpu.opSEI, cpu.amIMP, IMP, 2}, {"ADC", cpu.opADC, cpu.amABY, ABY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"ADC", cpu.opADC, cpu.amABX, ABX, 4}, {"ROR", cpu.opROR, cpu.amABX, ABX, 7}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"STA", cpu.opSTA, cpu.amIZX, IZX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"STY", cpu.opSTY, cpu.amZP0, ZP0, 3}, {"STA", cpu.opSTA, cpu.amZP0, ZP0, 3}, {"STX", cpu.opSTX, cpu.amZP0, ZP0, 3}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"DEY", cpu.opDEY, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"TXA", cpu.opTXA, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"STY", cpu.opSTY, cpu.amABS, ABS, 4}, {"STA", cpu.opSTA, cpu.amABS, ABS, 4}, {"STX", cpu.opSTX, cpu.amABS, ABS, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BCC", cpu.opBCC, cpu.amREL, REL, 2}, {"STA", cpu.opSTA, cpu.amIZY, IZY, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"STY", cpu.opSTY, cpu.amZPX, ZPX, 4}, {"STA", cpu.opSTA, cpu.amZPX, ZPX, 4}, {"STX", cpu.opSTX, cpu.amZPY, ZPY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"TYA", cpu.opTYA, cpu.amIMP, IMP, 2}, {"STA", cpu.opSTA, cpu.amABY, ABY, 5}, {"TXS", cpu.opTXS, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"STA", cpu.opSTA, cpu.amABX, ABX, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"LDY", cpu.opLDY, cpu.amIMM, IMM, 2}, {"LDA", cpu.opLDA, cpu.amIZX, IZX, 6}, {"LDX", cpu.opLDX, cpu.amIMM, IMM, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"LDY", cpu.opLDY, cpu.amZP0, ZP0, 3}, {"LDA", cpu.opLDA, cpu.amZP0, ZP0, 3}, {"LDX", cpu.opLDX, cpu.amZP0, ZP0, 3}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"TAY", cpu.opTAY, cpu.amIMP, IMP, 2}, {"LDA", cpu.opLDA, cpu.amIMM, IMM, 2}, {"TAX", cpu.opTAX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"LDY", cpu.opLDY, cpu.amABS, ABS, 4}, {"LDA", cpu.opLDA, cpu.amABS, ABS, 4}, {"LDX", cpu.opLDX, cpu.amABS, ABS, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BCS", cpu.opBCS, cpu.amREL, REL, 2}, {"LDA", cpu.opLDA, cpu.amIZY, IZY, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"LDY", cpu.opLDY, cpu.amZPX, ZPX, 4}, {"LDA", cpu.opLDA, cpu.amZPX, ZPX, 4}, {"LDX", cpu.opLDX, cpu.amZPY, ZPY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CLV", cpu.opCLV, cpu.amIMP, IMP, 2}, {"LDA", cpu.opLDA, cpu.amABY, ABY, 4}, {"TSX", cpu.opTSX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"LDY", cpu.opLDY, cpu.amABX, ABX, 4}, {"LDA", cpu.opLDA, cpu.amABX, ABX, 4}, {"LDX", cpu.opLDX, cpu.amABY, ABY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"CPY", cpu.opCPY, cpu.amIMM, IMM, 2}, {"CMP", cpu.opCMP, cpu.amIZX, IZX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CPY", cpu.opCPY, cpu.amZP0, ZP0, 3}, {"CMP", cpu.opCMP, cpu.amZP0, ZP0, 3}, {"DEC", cpu.opDEC, cpu.amZP0, ZP0, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"INY", cpu.opINY, cpu.amIMP, IMP, 2}, {"CMP", cpu.opCMP, cpu.amIMM, IMM, 2}, {"DEX", cpu.opDEX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CPY", cpu.opCPY, cpu.amABS, ABS, 4}, {"CMP", cpu.opCMP, cpu.amABS, ABS, 4}, {"DEC", cpu.opDEC, cpu.amABS, ABS, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BNE", cpu.opBNE, cpu.amREL, REL, 2}, {"CMP", cpu.opCMP, cpu.amIZY, IZY, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CMP", cpu.opCMP, cpu.amZPX, ZPX, 4}, {"DEC", cpu.opDEC, cpu.amZPX, ZPX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CLD", cpu.opCLD, cpu.amIMP, IMP, 2}, {"CMP", cpu.opCMP, cpu.amABY, ABY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CMP", cpu.opCMP, cpu.amABX, ABX, 4}, {"DEC", cpu.opDEC, cpu.amABX, ABX, 7}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"CPX", cpu.opCPX, cpu.amIMM, IMM, 2}, {"SBC", cpu.opSBC, cpu.amIZX, IZX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CPX", cpu.opCPX, cpu.amZP0, ZP0, 3}, {"SBC", cpu.opSBC, cpu.amZP0, ZP0, 3}, {"INC", cpu.opINC, cpu.amZP0, ZP0, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"INX", cpu.opINX, cpu.amIMP, IMP, 2}, {"SBC", cpu.opSBC, cpu.amIMM, IMM, 2}, {"NOP", cpu.opNOP, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"CPX", cpu.opCPX, cpu.amABS, ABS, 4}, {"SBC", cpu.opSBC, cpu.amABS, ABS, 4}, {"INC", cpu.opINC, cpu.amABS, ABS, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},

		{"BEQ", cpu.opBEQ, cpu.amREL, REL, 2}, {"SBC", cpu.opSBC, cpu.amIZY, IZY, 5}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"SBC", cpu.opSBC, cpu.amZPX, ZPX, 4}, {"INC", cpu.opINC, cpu.amZPX, ZPX, 6}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"SED", cpu.opSED, cpu.amIMP, IMP, 2}, {"SBC", cpu.opSBC, cpu.amABY, ABY, 4}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2}, {"SBC", cpu.opSBC, cpu.amABX, ABX, 4}, {"INC", cpu.opINC, cpu.amABX, ABX, 7}, {"XXX", cpu.opXXX, cpu.amIMP, IMP, 2},
	}

	return cpu
}

// Connect the CPU to a 16-bit address bus.
func (cpu *Cpu6502) ConnectBus(b *Bus) { cpu.bus = b }

// Read from the attached bus. Never a debugger peek; the CPU's own reads
// always have side effects.
func (cpu *Cpu6502) read(addr uint16) byte {
	return cpu.bus.Read(addr, false)
}

// readOnlyPeek reads a byte without signalling any peripheral side effects
// (the Bus read_only contract), for disassembly and other inspector code.
func (cpu *Cpu6502) readOnlyPeek(addr uint16) byte {
	return cpu.bus.Read(addr, true)
}

// Write to the attached bus.
func (cpu *Cpu6502) write(addr uint16, data byte) {
	cpu.bus.Write(addr, data)
}

// Read a word from memory (little endian order).
func (cpu *Cpu6502) readWord(addr uint16) uint16 {
	lo := cpu.read(addr)
	hi := cpu.read(addr + 1)

	return (uint16(hi) << 8) | uint16(lo)
}

// Read a byte from memory at the address previously set by the appropriate
// addressing mode function. Avoid if current instruction's address mode is implied.
func (cpu *Cpu6502) fetch() {
	if !cpu.isImpliedAddr {
		cpu.Fetched = cpu.read(cpu.AddrAbs)
	}
}

// Functions to push and pop from the stack.
func (cpu *Cpu6502) stackPush(data byte) {
	cpu.write((stackBase | uint16(cpu.Sp)), data)
	cpu.Sp--
}

func (cpu *Cpu6502) stackPop() byte {
	cpu.Sp++
	return cpu.read(stackBase | uint16(cpu.Sp))
}

////////////////////////////////////////////////////////////////
// Status Flags
type SF6502 byte // 6502 Status Flag

const (
	StatusFlagC SF6502 = 1 << iota // Carry
	StatusFlagZ                    // Zero
	StatusFlagI                    // Interrupt Disable
	StatusFlagD                    // Decimal Mode (not used on NES)
	StatusFlagB                    // Break Command, only meaningful on the pushed copy of P
	StatusFlagU                    // Unused, always reads 1
	StatusFlagV                    // Overflow
	StatusFlagN                    // Negative
)

// Convenience functions used to get and set CPU status flags.
func (cpu *Cpu6502) getFlag(f SF6502) byte {
	return cpu.Status & byte(f)
}

func (cpu *Cpu6502) setFlag(f SF6502, b bool) {
	if b {
		cpu.Status |= byte(f)
	} else {
		cpu.Status &^= byte(f)
	}
}

////////////////////////////////////////////////////////////////
// Interrupts
const resetVectAddr = 0xFFFC
const irqVectAddr = 0xFFFE
const nmiVectAddr = 0xFFFA

func (cpu *Cpu6502) Reset() {
	// Clear registers, reset stack pointer
	cpu.A = 0x00
	cpu.X = 0x00
	cpu.Y = 0x00
	cpu.Status = 0x00 | byte(StatusFlagU) | byte(StatusFlagI)
	cpu.Sp = 0xFD

	// Get the program counter from the reset vector location in RAM.
	cpu.Pc = cpu.readWord(resetVectAddr)

	cpu.AddrAbs = 0x0000
	cpu.AddrRel = 0x0000
	cpu.Fetched = 0x00

	// Spend time on reset
	cpu.Cycles = 7
}

// IRQ requests a maskable interrupt. Ignored while the interrupt-disable
// flag is set. Behaves like BRK but pushes P with B clear, and loads PC
// from the IRQ/BRK vector.
func (cpu *Cpu6502) IRQ() {
	if cpu.getFlag(StatusFlagI) != 0 {
		return
	}

	cpu.stackPush(byte((cpu.Pc >> 8) & 0xFF))
	cpu.stackPush(byte(cpu.Pc))

	cpu.setFlag(StatusFlagB, false)
	cpu.setFlag(StatusFlagU, true)
	cpu.stackPush(cpu.Status)

	cpu.setFlag(StatusFlagI, true)

	cpu.Pc = cpu.readWord(irqVectAddr)

	cpu.Cycles = 7
}

// NMI requests a non-maskable interrupt; unlike IRQ it cannot be disabled
// by the interrupt-disable flag and is given its own vector.
func (cpu *Cpu6502) NMI() {
	cpu.stackPush(byte((cpu.Pc >> 8) & 0xFF))
	cpu.stackPush(byte(cpu.Pc))

	cpu.setFlag(StatusFlagB, false)
	cpu.setFlag(StatusFlagU, true)
	cpu.stackPush(cpu.Status)

	cpu.setFlag(StatusFlagI, true)

	cpu.Pc = cpu.readWord(nmiVectAddr)

	cpu.Cycles = 8
}

// Cycle represents one CPU clock cycle.
func (cpu *Cpu6502) Cycle() {
	if cpu.Cycles == 0 {
		// Get the next opcode by reading from the bus at the location of the
		// current program counter.
		cpu.Opcode = cpu.read(cpu.Pc)

		// Store CPU state for logging.
		cpuState := fmt.Sprintf("\t\tA:%02X X:%02X Y:%02X P:%02X SP:%02X\tCYC:%d",
			cpu.A, cpu.X, cpu.Y, cpu.Status, cpu.Sp, cpu.CycleCount)
		oldpc := cpu.Pc

		// Lookup by opcode the instruction to be executed.
		inst := cpu.InstLookup[cpu.Opcode]

		// Increment program counter.
		cpu.Pc++

		// Set required cycles for instruction execution.
		cpu.Cycles = inst.Cycles

		// Add the page-cross cycle only when both the addressing mode and the
		// instruction report it.
		extraCycles1 := inst.AddrMode()

		// Execute the instruction.
		extraCycles2 := inst.Execute()

		// Log CPU instructions, if a logger is attached.
		var buf bytes.Buffer
		buf.WriteString(fmt.Sprintf("%04X\t%02X - %s ", oldpc, cpu.Opcode, inst.Name))
		buf.WriteString(cpuState)
		cpu.OpDiss = buf.String()
		if cpu.Logger != nil {
			cpu.Logger.Print(buf.String())
		}

		cpu.Cycles += (extraCycles1 & extraCycles2)
	}

	// Always reassert the unused status bit.
	cpu.setFlag(StatusFlagU, true)

	// Turn implied address mode off, just in case the last instruction turned it on.
	cpu.isImpliedAddr = false

	cpu.CycleCount++

	cpu.Cycles--
}

// Clock advances the CPU by exactly one cycle. It is the spec-facing name
// for Cycle, kept as a thin alias so existing call sites (and tests written
// against the teacher's original naming) keep working.
func (cpu *Cpu6502) Clock() { cpu.Cycle() }

////////////////////////////////////////////////////////////////
// Addressing Modes
// These functions return any extra cycles needed for execution.

// Implied:
func (cpu *Cpu6502) amIMP() byte {
	cpu.isImpliedAddr = true

	cpu.Fetched = cpu.A
	return 0x00
}

// Immediate:
func (cpu *Cpu6502) amIMM() byte {
	// The second byte of the instruction contains the operand.
	cpu.AddrAbs = cpu.Pc
	cpu.Pc++

	return 0x00
}

// Relative:
func (cpu *Cpu6502) amREL() byte {
	addr := cpu.read(cpu.Pc)
	cpu.Pc++

	cpu.AddrRel = uint16(addr)

	// Pad left 8 bits if bit 7 (sign bit) is set.
	if cpu.AddrRel&0x0080 != 0 {
		cpu.AddrRel |= 0xFF00
	}

	return 0x00
}

// Zero Page:
func (cpu *Cpu6502) amZP0() byte {
	// Use the second byte of the instruction to index into page zero.
	lo := cpu.read(cpu.Pc)
	cpu.Pc++

	cpu.AddrAbs = uint16(lo)

	return 0x00
}

// Zero Page, X
func (cpu *Cpu6502) amZPX() byte {
	cpu.AddrAbs = uint16(cpu.read(cpu.Pc)+cpu.X) & 0x00FF
	cpu.Pc++

	return 0x00
}

// Zero Page, Y
func (cpu *Cpu6502) amZPY() byte {
	cpu.AddrAbs = uint16(cpu.read(cpu.Pc)+cpu.Y) & 0x00FF
	cpu.Pc++

	return 0x00
}

// Absolute:
func (cpu *Cpu6502) amABS() byte {
	// The second byte of the instruction contains the low order byte of the
	// address. The third byte of the instruction contains the high order byte.
	cpu.AddrAbs = cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	return 0x00
}

// Absolute, X:
func (cpu *Cpu6502) amABX() byte {
	// This is the same as absolute addressing, but offsetting by the value in
	// register X.
	addr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	cpu.AddrAbs = addr + uint16(cpu.X)

	// Add a cycle if page cross occurred.
	if cpu.AddrAbs&0xFF00 != addr&0xFF00 {
		return 1
	}

	return 0x00
}

// Absolute, Y:
func (cpu *Cpu6502) amABY() byte {
	// This is the same as absolute addressing, but offsetting by the value in
	// register Y.
	addr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	cpu.AddrAbs = addr + uint16(cpu.Y)

	// Add a cycle if page cross occurred.
	if cpu.AddrAbs&0xFF00 != addr&0xFF00 {
		return 1
	}

	return 0x00
}

// Indirect:
func (cpu *Cpu6502) amIND() byte {
	// The next 16 bits contain a memory address pointing to the effective address.
	ptr := cpu.readWord(cpu.Pc)
	cpu.Pc += 2

	lo := cpu.read(ptr)

	var hi byte
	if ptr&0x00FF == 0x00FF {
		// Hardware bug: a pointer ending in 0xFF does not carry into the
		// next page, it wraps within the current page instead.
		hi = cpu.read(ptr & 0xFF00)
	} else {
		hi = cpu.read(ptr + 1)
	}

	cpu.AddrAbs = uint16(hi)<<8 | uint16(lo)

	return 0x00
}

// Indexed Indirect:
func (cpu *Cpu6502) amIZX() byte {
	// Add the second byte of the instruction with the contents of register X.
	// This result is a zero page memory location pointing to the low order byte
	// of the effective address. The next memory location contains the high
	// order byte. Both memory locations must be in page zero.

	// Get the low order byte of the address.
	addr := (cpu.read(cpu.Pc) + cpu.X) & 0x00FF
	cpu.Pc++

	// Read effective address from page zero.
	lo := cpu.read(uint16(addr))
	hi := cpu.read((uint16(addr) + 1) & 0x00FF) // Zero page wraparound
	cpu.AddrAbs = uint16(hi)<<8 | uint16(lo)

	return 0x00
}

// Indirect Indexed:
func (cpu *Cpu6502) amIZY() byte {
	// The second byte of the instruction points to a zero page memory location.
	// The contents of this memory location are added to the contents of
	// register Y to form the low order byte of the effective address. The carry
	// from this addition is added to the contents of the next page zero memory
	// location to form the high order byte of the effective address.
	addr := uint16(cpu.read(cpu.Pc)) & 0x00FF
	cpu.Pc++

	lo := cpu.read(addr)
	hi := cpu.read((addr + 1) & 0x00FF) // Zero page wraparound

	cpu.AddrAbs = (uint16(hi)<<8 | uint16(lo)) + uint16(cpu.Y)

	// Add a cycle if page cross occurred.
	if cpu.AddrAbs&0xFF00 != (uint16(hi) << 8) {
		return 1
	}

	return 0x00
}

////////////////////////////////////////////////////////////////
// Instructions
type Instruction struct {
	Name     string
	Execute  func() byte
	AddrMode func() byte
	Mode     AddressingMode
	Cycles   byte
}

// CPU insturctions. Each instruction method returns the number of any extra
// cycles necessary for execution.

// ADC - Add with Carry
func (cpu *Cpu6502) opADC() byte {
	cpu.fetch()

	// 16-bit to keep any carry.
	result := uint16(cpu.A) + uint16(cpu.Fetched) + uint16(cpu.getFlag(StatusFlagC))

	cpu.setFlag(StatusFlagC, result > 0xFF)
	cpu.setFlag(StatusFlagZ, byte(result) == 0)

	// Set negative flag if bit 7 of result is set.
	cpu.setFlag(StatusFlagN, (result&(1<<7) > 0))

	// Determine if overflow using MSB from accumulator, memory, and result:
	// v = (a == m && a != r)
	a := (cpu.A & (1 << 7))
	m := (cpu.Fetched & (1 << 7))
	r := (byte(result) & (1 << 7))

	cpu.setFlag(StatusFlagV, (a == m) && (a != r))

	cpu.A = byte(result)

	return 0x00
}

// AND - Logical AND
func (cpu *Cpu6502) opAND() byte {
	cpu.fetch()

	cpu.A &= cpu.Fetched

	cpu.setFlag(StatusFlagZ, cpu.A == 0)
	cpu.setFlag(StatusFlagN, cpu.A&(1<<7) > 0)

	return 0x00
}

// ASL - Arithmetic Shift Left
func (cpu *Cpu6502) opASL() byte {
	cpu.fetch()

	// Set carry flag to old bit 7.
	cpu.setFlag(StatusFlagC, cpu.Fetched&(1<<7) > 0)

	result := cpu.Fetched << 1

	// Write result to accumulator register if in implied addressing mode, else
	// write to addrAbs location in memory.
	if cpu.isImpliedAddr {
		cpu.A = result
	} else {
		cpu.write(cpu.AddrAbs, result)
	}

	cpu.setFlag(StatusFlagZ, result == 0)
	cpu.setFlag(StatusFlagN, result&(1<<7) > 0)

	return 0x00
}

// BCC - Branch if Carry Clear
func (cpu *Cpu6502) opBCC() byte {
	if cpu.getFlag(StatusFlagC) == 0 {
		// Extra cycle when branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// BCS - Branch if Carry Set
func (cpu *Cpu6502) opBCS() byte {
	if cpu.getFlag(StatusFlagC) != 0 {
		// Extra cycle when branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// BEQ - Branch if Equal
func (cpu *Cpu6502) opBEQ() byte {
	if cpu.getFlag(StatusFlagZ) != 0 {
		// Extra cycle if branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// BIT - Bit Test
func (cpu *Cpu6502) opBIT() byte {
	cpu.fetch()

	result := cpu.Fetched & cpu.A

	cpu.setFlag(StatusFlagZ, result == 0)

	// Set if bit 6 of the operand is set.
	cpu.setFlag(StatusFlagV, cpu.Fetched&(1<<6) > 0)

	// Set if bit 7 of the operand is set.
	cpu.setFlag(StatusFlagN, cpu.Fetched&(1<<7) > 0)

	return 0x00
}

// BMI - Branch if Minus
func (cpu *Cpu6502) opBMI() byte {
	if cpu.getFlag(StatusFlagN) != 0 {
		// Extra cycle when branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// BNE - Branch if Not Equal
func (cpu *Cpu6502) opBNE() byte {
	if cpu.getFlag(StatusFlagZ) == 0 {
		// Extra cycle if branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// BPL - Branch if Positive
func (cpu *Cpu6502) opBPL() byte {
	if cpu.getFlag(StatusFlagN) == 0 {
		// Extra cycle if branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// BRK - Force Interrupt
func (cpu *Cpu6502) opBRK() byte {
	// BRK carries an extra padding byte after the opcode; skip it before
	// pushing the return address.
	cpu.Pc++

	// Push the high byte of the program counter to the stack.
	cpu.stackPush(byte((cpu.Pc >> 8) & 0xFF))

	// Push the low byte of the program counter to the stack.
	cpu.stackPush(byte(cpu.Pc))

	// Push the CPU status to the stack with B and U set, to mark that this
	// copy came from a software BRK rather than a hardware IRQ.
	// http://visual6502.org/wiki/index.php?title=6502_BRK_and_B_bit
	cpu.stackPush(cpu.Status | byte(StatusFlagB) | byte(StatusFlagU))

	cpu.setFlag(StatusFlagI, true)

	// Load the IRQ interrupt vector at $FFFE/F to the PC.
	cpu.Pc = cpu.readWord(irqVectAddr)

	// The live status register's B flag is never actually set; only the
	// pushed copy carries it.
	cpu.setFlag(StatusFlagB, false)

	return 0x00
}

// BVC - Branch if Overflow Clear
func (cpu *Cpu6502) opBVC() byte {
	if cpu.getFlag(StatusFlagV) == 0 {
		// Add cycle if branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// BVS - Branch if Overflow Set
func (cpu *Cpu6502) opBVS() byte {
	if cpu.getFlag(StatusFlagV) > 0 {
		// Add cycle if branch succeeds
		cpu.Cycles++

		cpu.AddrAbs = cpu.Pc + cpu.AddrRel

		if cpu.AddrAbs&0xFF00 != cpu.Pc&0xFF00 {
			// Extra cycle if cross pages
			cpu.Cycles++
		}

		cpu.Pc = cpu.AddrAbs
	}

	return 0x00
}

// CLC - Clear Carry Flag
func (cpu *Cpu6502) opCLC() byte {
	cpu.setFlag(StatusFlagC, false)

	return 0x00
}

// CLD - Clear Decimal Mode
func (cpu *Cpu6502) opCLD() byte {
	cpu.setFlag(StatusFlagD, false)

	return 0x00
}

// CLI - Clear Interrupt Disable
func (cpu *Cpu6502) opCLI() byte {
	cpu.setFlag(StatusFlagI, false)

	return 0x00
}

// CLV - Clear Overflow Flag
func (cpu *Cpu6502) opCLV() byte {
	cpu.setFlag(StatusFlagV, false)

	return 0x00
}

// CMP - Compare (Accumulator)
func (cpu *Cpu6502) opCMP() byte {
	cpu.fetch()

	cpu.setFlag(StatusFlagC, cpu.A >= cpu.Fetched)
	cpu.setFlag(StatusFlagZ, cpu.A == cpu.Fetched)
	cpu.setFlag(StatusFlagN, ((cpu.A-cpu.Fetched)&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// CPX - Compare X Register
func (cpu *Cpu6502) opCPX() byte {
	cpu.fetch()

	cpu.setFlag(StatusFlagC, cpu.X >= cpu.Fetched)
	cpu.setFlag(StatusFlagZ, cpu.X == cpu.Fetched)
	cpu.setFlag(StatusFlagN, ((cpu.X-cpu.Fetched)&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// CPY - Compare Y Register
func (cpu *Cpu6502) opCPY() byte {
	cpu.fetch()

	cpu.setFlag(StatusFlagC, cpu.Y >= cpu.Fetched)
	cpu.setFlag(StatusFlagZ, cpu.Y == cpu.Fetched)
	cpu.setFlag(StatusFlagN, ((cpu.Y-cpu.Fetched)&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// DEC - Decrement Memory
func (cpu *Cpu6502) opDEC() byte {
	cpu.fetch()

	cpu.Fetched--

	cpu.write(cpu.AddrAbs, cpu.Fetched)

	cpu.setFlag(StatusFlagZ, cpu.Fetched == 0)         // if result == 0
	cpu.setFlag(StatusFlagN, (cpu.Fetched&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// DEX - Decrement X Register
func (cpu *Cpu6502) opDEX() byte {
	cpu.X--

	cpu.setFlag(StatusFlagZ, cpu.X == 0)

	// Set negative flag if bit 7 of X register is set.
	cpu.setFlag(StatusFlagN, cpu.X&(1<<7) > 0)

	return 0x00
}

// DEY - Decrement Y Register
func (cpu *Cpu6502) opDEY() byte {
	cpu.Y--

	cpu.setFlag(StatusFlagZ, cpu.Y == 0)

	// Set negative flag if bit 7 of Y register is set.
	cpu.setFlag(StatusFlagN, cpu.Y&(1<<7) > 0)

	return 0x00
}

// EOR - Exclusive OR
func (cpu *Cpu6502) opEOR() byte {
	cpu.fetch()

	cpu.A ^= cpu.Fetched

	cpu.setFlag(StatusFlagZ, cpu.A == 0)

	// Set negative flag if bit 7 is set.
	cpu.setFlag(StatusFlagN, cpu.A&(1<<7) > 0)

	return 0x00
}

// INC - Increment Memory
func (cpu *Cpu6502) opINC() byte {
	cpu.fetch()

	cpu.Fetched++

	cpu.write(cpu.AddrAbs, cpu.Fetched)

	cpu.setFlag(StatusFlagZ, cpu.Fetched == 0)         // if result == 0
	cpu.setFlag(StatusFlagN, (cpu.Fetched&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// INX - Increment X Register
func (cpu *Cpu6502) opINX() byte {
	cpu.X++

	cpu.setFlag(StatusFlagZ, cpu.X == 0)         // if X == 0
	cpu.setFlag(StatusFlagN, (cpu.X&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// INY - Increment Y Register
func (cpu *Cpu6502) opINY() byte {
	cpu.Y++

	cpu.setFlag(StatusFlagZ, cpu.Y == 0)         // if Y == 0
	cpu.setFlag(StatusFlagN, (cpu.Y&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// JMP - Jump
func (cpu *Cpu6502) opJMP() byte {
	cpu.Pc = cpu.AddrAbs

	return 0x00
}

// JSR - Jump to Subroutine
func (cpu *Cpu6502) opJSR() byte {
	// The return address pushed is one less than the address of the next
	// instruction; RTS compensates by incrementing PC after pulling it.
	retAddr := cpu.Pc - 1

	// Push the high byte of the return address to the stack.
	cpu.stackPush(byte((retAddr >> 8) & 0xFF))

	// Push the low byte of the return address to the stack.
	cpu.stackPush(byte(retAddr))

	// Set program counter to the given address.
	cpu.Pc = cpu.AddrAbs

	return 0x00
}

// LDA - Load Accumulator
func (cpu *Cpu6502) opLDA() byte {
	cpu.fetch()

	cpu.A = cpu.Fetched

	cpu.setFlag(StatusFlagZ, cpu.A == 0)         // if A == 0
	cpu.setFlag(StatusFlagN, (cpu.A&(1<<7) > 0)) // if bit 7 set

	// LDA takes the addressing mode's page-cross penalty.
	return 0x01
}

// LDX - Load X Register
func (cpu *Cpu6502) opLDX() byte {
	cpu.fetch()

	cpu.X = cpu.Fetched

	cpu.setFlag(StatusFlagZ, cpu.X == 0)         // if X == 0
	cpu.setFlag(StatusFlagN, (cpu.X&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// LDY - Load Y Register
func (cpu *Cpu6502) opLDY() byte {
	cpu.fetch()

	cpu.Y = cpu.Fetched

	cpu.setFlag(StatusFlagZ, cpu.Y == 0)         // if Y == 0
	cpu.setFlag(StatusFlagN, (cpu.Y&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// LSR - Logical Shift Right
func (cpu *Cpu6502) opLSR() byte {
	cpu.fetch()

	// Set carry flag to old bit 0.
	cpu.setFlag(StatusFlagC, cpu.Fetched&0x1 > 0)

	cpu.Fetched = cpu.Fetched >> 1

	cpu.setFlag(StatusFlagZ, cpu.Fetched == 0)

	if cpu.isImpliedAddr {
		cpu.A = cpu.Fetched
	} else {
		cpu.write(cpu.AddrAbs, cpu.Fetched)
	}

	return 0x00
}

// NOP - No Operation
func (cpu *Cpu6502) opNOP() byte { return 0x00 }

// ORA - Logical Inclusive OR
func (cpu *Cpu6502) opORA() byte {
	cpu.fetch()

	cpu.A |= cpu.Fetched

	cpu.setFlag(StatusFlagZ, cpu.A == 0)         // if A == 0
	cpu.setFlag(StatusFlagN, (cpu.A&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// PHA - Push Accumulator
func (cpu *Cpu6502) opPHA() byte {
	cpu.stackPush(cpu.A)
	return 0x00
}

// PHP - Push Processor Status
func (cpu *Cpu6502) opPHP() byte {
	// Set B flag according to: http://visual6502.org/wiki/index.php?title=6502_BRK_and_B_bit
	cpu.stackPush(cpu.Status | byte(StatusFlagB))

	return 0x00
}

// PLA - Pull Accumulator
func (cpu *Cpu6502) opPLA() byte {
	// Pull value from stack to accumulator.
	cpu.A = cpu.stackPop()

	cpu.setFlag(StatusFlagZ, cpu.A == 0)         // if A == 0
	cpu.setFlag(StatusFlagN, (cpu.A&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// PLP - Pull Processor Status
func (cpu *Cpu6502) opPLP() byte {
	// Load processor status flags from the stack; B only ever exists on the
	// pushed copy, so it is cleared here, and U is always forced set.
	cpu.Status = cpu.stackPop()
	cpu.setFlag(StatusFlagB, false)
	cpu.setFlag(StatusFlagU, true)

	return 0x00
}

// ROL - Rotate Left
func (cpu *Cpu6502) opROL() byte {
	cpu.fetch()

	carry := cpu.getFlag(StatusFlagC)

	// Set carry flag to bit 7 of old value.
	cpu.setFlag(StatusFlagC, cpu.Fetched&(1<<7) > 0)

	// Shift left one, set bit 0 to old carry.
	cpu.Fetched = (cpu.Fetched << 1) | carry

	cpu.setFlag(StatusFlagZ, cpu.Fetched == 0)

	// Set negative flag to bit 7 of new value.
	cpu.setFlag(StatusFlagN, cpu.Fetched&(1<<7) > 0)

	if cpu.isImpliedAddr {
		cpu.A = cpu.Fetched
	} else {
		cpu.write(cpu.AddrAbs, cpu.Fetched)
	}

	return 0x00
}

// ROR - Rotate Right
func (cpu *Cpu6502) opROR() byte {
	cpu.fetch()

	carry := cpu.getFlag(StatusFlagC)

	// Set carry flag to bit 0 of old value.
	cpu.setFlag(StatusFlagC, cpu.Fetched&1 > 0)

	// Shift right one, set bit 7 to old carry.
	cpu.Fetched = (cpu.Fetched >> 1) | (carry << 7)

	cpu.setFlag(StatusFlagZ, cpu.Fetched == 0)

	// Set negative flag to bit 7 of new value.
	cpu.setFlag(StatusFlagN, cpu.Fetched&(1<<7) > 0)

	if cpu.isImpliedAddr {
		cpu.A = cpu.Fetched
	} else {
		cpu.write(cpu.AddrAbs, cpu.Fetched)
	}

	return 0x00
}

// RTI - Return from Interrupt
func (cpu *Cpu6502) opRTI() byte {
	// Pull the status flags then the program counter from the stack. B only
	// ever exists on the pushed copy, so it is cleared here, and U is always
	// forced set.
	cpu.Status = cpu.stackPop()
	cpu.setFlag(StatusFlagB, false)
	cpu.setFlag(StatusFlagU, true)

	lo := cpu.stackPop()
	hi := cpu.stackPop()

	cpu.Pc = uint16(hi)<<8 | uint16(lo)

	return 0x00
}

// RTS - Return from Subroutine
func (cpu *Cpu6502) opRTS() byte {
	// Pull the program counter from the stack.
	lo := cpu.stackPop()
	hi := cpu.stackPop()

	cpu.Pc = uint16(hi)<<8 | uint16(lo)
	cpu.Pc++

	return 0x00
}

// SBC - Subtract with Carry
func (cpu *Cpu6502) opSBC() byte {
	cpu.fetch()

	// Invert to subtract
	sub := uint16(cpu.Fetched) ^ 0x00FF

	// 16-bit to keep any carry.
	result := uint16(cpu.A) + sub + uint16(cpu.getFlag(StatusFlagC))

	cpu.setFlag(StatusFlagC, result > 0xFF)
	cpu.setFlag(StatusFlagZ, byte(result) == 0)

	// Set negative flag if bit 7 of result is set.
	cpu.setFlag(StatusFlagN, (result&(1<<7) > 0))

	// Determine if overflow using MSB from accumulator, memory, and result:
	// v = (a != m && m == r)
	a := (cpu.A & (1 << 7))
	m := (cpu.Fetched & (1 << 7))
	r := (byte(result) & (1 << 7))

	cpu.setFlag(StatusFlagV, (a != m) && (m == r))

	cpu.A = byte(result)

	return 0x00
}

// SEC - Set Carry Flag
func (cpu *Cpu6502) opSEC() byte {
	cpu.setFlag(StatusFlagC, true)

	return 0x00
}

// SED - Set Decimal Flag
func (cpu *Cpu6502) opSED() byte {
	cpu.setFlag(StatusFlagD, true)

	return 0x00
}

// SEI - Set Interrupt Disable
func (cpu *Cpu6502) opSEI() byte {
	cpu.setFlag(StatusFlagI, true)

	return 0x00
}

// STA - Store Accumulator
func (cpu *Cpu6502) opSTA() byte {
	cpu.write(cpu.AddrAbs, cpu.A)

	return 0x00
}

// STX - Store X Register
func (cpu *Cpu6502) opSTX() byte {
	cpu.write(cpu.AddrAbs, cpu.X)

	return 0x00
}

// STY - Store Y Register
func (cpu *Cpu6502) opSTY() byte {
	cpu.write(cpu.AddrAbs, cpu.Y)

	return 0x00
}

// TAX - Transfer Accumulator to X
func (cpu *Cpu6502) opTAX() byte {
	cpu.X = cpu.A

	cpu.setFlag(StatusFlagZ, cpu.X == 0)         // if X == 0
	cpu.setFlag(StatusFlagN, (cpu.X&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// TAY - Transfer Accumulator to Y
func (cpu *Cpu6502) opTAY() byte {
	cpu.Y = cpu.A

	cpu.setFlag(StatusFlagZ, cpu.Y == 0)         // if Y == 0
	cpu.setFlag(StatusFlagN, (cpu.Y&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// TSX - Transfer Stack Pointer to X
func (cpu *Cpu6502) opTSX() byte {
	cpu.X = cpu.Sp

	cpu.setFlag(StatusFlagZ, cpu.X == 0)         // if X == 0
	cpu.setFlag(StatusFlagN, (cpu.X&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// TXA - Transfer X to Accumulator
func (cpu *Cpu6502) opTXA() byte {
	cpu.A = cpu.X

	cpu.setFlag(StatusFlagZ, cpu.A == 0)         // if A == 0
	cpu.setFlag(StatusFlagN, (cpu.A&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// TXS - Transfer X to Stack Pointer
func (cpu *Cpu6502) opTXS() byte {
	cpu.Sp = cpu.X

	return 0x00
}

// TYA - Transfer Y to Accumulator
func (cpu *Cpu6502) opTYA() byte {
	cpu.A = cpu.Y

	cpu.setFlag(StatusFlagZ, cpu.A == 0)         // if A == 0
	cpu.setFlag(StatusFlagN, (cpu.A&(1<<7) > 0)) // if bit 7 set

	return 0x00
}

// Catch-all instruction for illegal opcodes.
func (cpu *Cpu6502) opXXX() byte { return 0x00 }
