package machine

// handleDisk advances the disk controller's delayed-completion state
// machine: it first checks whether a previously-accepted command has
// reached its 1024-cycle completion point, then — independent of that —
// accepts a newly issued command if the controller is idle.
func (m *Machine) handleDisk() {
	if m.diskLastCmdCycle != nil && m.Cycles-*m.diskLastCmdCycle == DiskCompletionLatency {
		m.IO[DiskStatus] = 0
		m.IO[IRQ1Status] = 1
	}

	if m.IO[DiskStatus] != 0 || m.IO[DiskCmd] == 0 {
		return
	}

	cycle := m.Cycles
	m.diskLastCmdCycle = &cycle
	m.IO[DiskStatus] = 1

	sector := m.IO[DiskSector]
	buffer := m.IO[DiskBuffer]

	switch m.IO[DiskCmd] {
	case 1: // read: disk -> DMEM
		for i := uint32(0); i < SectorSize; i++ {
			m.DMEM[(buffer+i)&PCMask] = int32(m.Disk[sector][i])
		}
	case 2: // write: DMEM -> disk
		for i := uint32(0); i < SectorSize; i++ {
			m.Disk[sector][i] = uint32(m.DMEM[(buffer+i)&PCMask])
		}
	}

	m.IO[DiskCmd] = 0
}
