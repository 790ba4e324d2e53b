package machine

// AccessKind distinguishes a hardware-register read from a write in the
// hw_access trace, matching the reference simulator's rw ∈ {READ=1,
// WRITE=2} encoding.
type AccessKind uint8

const (
	AccessRead  AccessKind = 1
	AccessWrite AccessKind = 2
)

func (k AccessKind) String() string {
	if k == AccessRead {
		return "READ"
	}
	return "WRITE"
}

// StatusEntry is one line of the per-instruction execution trace:
// the fetched PC, the raw 48-bit instruction word, and the register
// file immediately after immediate injection, before the opcode's
// own effect.
type StatusEntry struct {
	PC   uint16
	Inst uint64
	Regs [RegSize]int32
}

// HWAccessEntry is one line of the hardware-register access trace,
// recorded for every executed in/out instruction that addresses a
// valid IO register index.
type HWAccessEntry struct {
	Cycle uint64
	Kind  AccessKind
	IOReg uint32
	Data  uint32
}

// appendStatus records the trace entry an execute step must emit before
// any opcode-specific work, per the spec's execute-unit contract.
func (m *Machine) appendStatus() {
	m.StatusLog = append(m.StatusLog, StatusEntry{
		PC:   m.PC,
		Inst: m.IMEM[m.PC],
		Regs: m.R,
	})
}

// appendHWAccess records one in/out trace line. Callers must only call
// this after checking the IO register index is in range; the sentinel
// out-of-range accesses are silent, per spec, and never reach this log.
func (m *Machine) appendHWAccess(kind AccessKind, ioReg uint32) {
	m.HWLog = append(m.HWLog, HWAccessEntry{
		Cycle: m.Cycles,
		Kind:  kind,
		IOReg: ioReg,
		Data:  m.IO[ioReg],
	})
}
