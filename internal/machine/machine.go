package machine

// Machine is the whole simulated system: the register file, the two
// memories, the IO register file, the disk, the monitor framebuffer, the
// interrupt-pending state and the trace logs. The cycle loop is the sole
// owner and mutator of a Machine; every subroutine below takes an
// explicit *Machine receiver rather than reaching into file-scope state,
// which is what the reference C implementation does instead.
type Machine struct {
	// Core CPU state.
	PC uint16
	R  [RegSize]int32

	// IMEM is read-only once loaded; DMEM is read/write.
	IMEM [MemorySize]uint64
	DMEM [MemorySize]int32

	// IO is the 23-register memory-mapped control/status file.
	IO [NumIORegs]uint32

	// Disk is 128 sectors of 128 32-bit words.
	Disk [DiskSize][SectorSize]uint32

	// Monitor is a 256x256 8-bit framebuffer.
	Monitor [MonitorSize][MonitorSize]uint8

	// irqBusy is set while an ISR is running; cleared by reti.
	irqBusy bool

	// diskLastCmdCycle is nil until the first disk command is accepted,
	// so the 1024-cycle completion check can never spuriously fire
	// before any command was issued (replaces the original's all-ones
	// sentinel with an idiomatic optional value).
	diskLastCmdCycle *uint64

	// Cycles is the simulator's own cycle counter; kept in lockstep
	// with IO[CLKS].
	Cycles uint64

	irq2 *irq2Queue

	// StatusLog and HWLog are append-only, produced in cycle order.
	StatusLog []StatusEntry
	HWLog     []HWAccessEntry

	// Halted is set once the HALT opcode has executed (after that
	// cycle's peripheral ticks have still run).
	Halted bool

	// Watch, if non-nil, receives a Snapshot after every cycle. It is
	// used exclusively by the optional --watch live debugger and never
	// affects simulated state or any on-disk artifact. Sends are
	// non-blocking: a full channel silently drops the snapshot.
	Watch chan<- Snapshot
}

// New builds a Machine with zeroed memories and IO registers, ready for
// the loader to populate IMEM/DMEM/Disk/irq2 schedule.
func New(irq2Schedule []uint64) *Machine {
	return &Machine{
		irq2: newIRQ2Queue(irq2Schedule),
	}
}

// Snapshot is a point-in-time, read-only copy of machine state, used by
// the --watch debugger to render cycle-by-cycle progress without
// entangling the core cycle loop with any UI concern.
type Snapshot struct {
	PC      uint16
	R       [RegSize]int32
	IO      [NumIORegs]uint32
	Cycles  uint64
	Monitor *[MonitorSize][MonitorSize]uint8 // private copy; keeps Snapshot under the 64kB channel element limit
	Halted  bool
}

func (m *Machine) snapshot() Snapshot {
	monitor := m.Monitor
	return Snapshot{
		PC:      m.PC,
		R:       m.R,
		IO:      m.IO,
		Cycles:  m.Cycles,
		Monitor: &monitor,
		Halted:  m.Halted,
	}
}

func (m *Machine) publish() {
	if m.Watch == nil {
		return
	}
	select {
	case m.Watch <- m.snapshot():
	default:
	}
}

// Run drives the cycle loop until HALT, an invalid opcode, or PC running
// past the end of IMEM. It returns a non-nil error only for a decode
// error; reaching the PC bound or HALT are both ordinary termination.
func (m *Machine) Run() error {
	for uint32(m.PC) < MemorySize && !m.Halted {
		if err := m.step(); err != nil {
			return err
		}
	}
	return nil
}

// step runs exactly one cycle: execute, monitor, timer, disk, ISR check,
// clock tick — in that exact order (§4.6/§5 of the specification).
func (m *Machine) step() error {
	halt, err := m.executeInstruction()
	if err != nil {
		// Decode errors are fatal and skip this cycle's peripheral
		// ticks entirely, matching the reference implementation.
		return err
	}
	if halt {
		m.Halted = true
	}

	m.handleMonitor()
	m.handleTimer()
	m.handleDisk()
	m.interruptServiceRoutine()
	m.tickClock()
	m.publish()

	return nil
}

func (m *Machine) tickClock() {
	m.IO[CLKS]++
	m.Cycles++
}
