package machine

// interruptServiceRoutine refreshes IRQ2STATUS from the external
// schedule, then — if no ISR is already running — vectors to the
// handler on any enabled+pending source. Status bits are sticky: this
// routine only ever sets IRQ2STATUS, and only the handler itself (via
// out) clears a status bit.
func (m *Machine) interruptServiceRoutine() {
	if m.irq2.refresh(m.Cycles) {
		m.IO[IRQ2Status] = 1
	}

	pending := (m.IO[IRQ0Enable] != 0 && m.IO[IRQ0Status] != 0) ||
		(m.IO[IRQ1Enable] != 0 && m.IO[IRQ1Status] != 0) ||
		(m.IO[IRQ2Enable] != 0 && m.IO[IRQ2Status] != 0)

	if m.irqBusy || !pending {
		return
	}

	m.irqBusy = true
	m.IO[IRQReturn] = uint32(m.PC)
	m.PC = uint16(m.IO[IRQHandler]) & PCMask
}
