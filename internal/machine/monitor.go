package machine

// handleMonitor performs at most one framebuffer pixel write per cycle,
// triggered by MONITORCMD. The command bit is cleared immediately so a
// program must reissue it for each pixel.
func (m *Machine) handleMonitor() {
	if m.IO[MonitorCmd] == 0 {
		return
	}
	m.IO[MonitorCmd] = 0

	addr := m.IO[MonitorAddr]
	row := (addr >> 8) & 0xFF
	col := addr & 0xFF
	m.Monitor[row][col] = uint8(m.IO[MonitorData])
}
