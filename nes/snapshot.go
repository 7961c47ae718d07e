package nes

// FlagSnapshot is a read-only view of the processor status register,
// broken out into its individual bits. Intended for test assertions and
// debug displays rather than hot-path code.
type FlagSnapshot struct {
	C, Z, I, D, B, U, V, N byte
}

// Flags returns the current value of every status flag as 0 or 1.
func (cpu *Cpu6502) Flags() FlagSnapshot {
	bit := func(f SF6502) byte {
		if cpu.getFlag(f) != 0 {
			return 1
		}
		return 0
	}

	return FlagSnapshot{
		C: bit(StatusFlagC),
		Z: bit(StatusFlagZ),
		I: bit(StatusFlagI),
		D: bit(StatusFlagD),
		B: bit(StatusFlagB),
		U: bit(StatusFlagU),
		V: bit(StatusFlagV),
		N: bit(StatusFlagN),
	}
}

// DebugSnapshot is a point-in-time view of the CPU's full architectural
// and internal state, used by inspectors and golden-trace comparisons.
type DebugSnapshot struct {
	A, X, Y, Sp byte
	Pc          uint16
	P           byte

	Fetched        byte
	AddrAbs        uint16
	AddrRel        uint16
	Opcode         byte
	Mnemonic       string
	Mode           string
	CyclesRemaining byte
}

// Debug captures the CPU's current state for inspection. Mode reports the
// addressing mode of the in-flight instruction by name, resolved from the
// static addressing-mode table rather than the current (possibly stale)
// AddrAbs/AddrRel contents.
func (cpu *Cpu6502) Debug() DebugSnapshot {
	inst := cpu.InstLookup[cpu.Opcode]

	return DebugSnapshot{
		A:               cpu.A,
		X:               cpu.X,
		Y:               cpu.Y,
		Sp:              cpu.Sp,
		Pc:              cpu.Pc,
		P:               cpu.Status,
		Fetched:         cpu.Fetched,
		AddrAbs:         cpu.AddrAbs,
		AddrRel:         cpu.AddrRel,
		Opcode:          cpu.Opcode,
		Mnemonic:        inst.Name,
		Mode:            inst.Mode.String(),
		CyclesRemaining: cpu.Cycles,
	}
}
