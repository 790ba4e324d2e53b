package machine

// handleTimer ticks the free-running timer. When enabled and the
// counter reaches TIMERMAX, it wraps to zero and raises IRQ0STATUS;
// otherwise it simply increments.
func (m *Machine) handleTimer() {
	if m.IO[TimerEnable] == 0 {
		return
	}

	if m.IO[TimerCurrent] == m.IO[TimerMax] {
		m.IO[TimerCurrent] = 0
		m.IO[IRQ0Status] = 1
	} else {
		m.IO[TimerCurrent]++
	}
}
