package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(opcode, rd, rs, rt, rm uint8, imm1, imm2 uint32) uint64 {
	return uint64(opcode)<<40 |
		uint64(rd)<<36 |
		uint64(rs)<<32 |
		uint64(rt)<<28 |
		uint64(rm)<<24 |
		(uint64(imm1)&0xFFF)<<12 |
		(uint64(imm2) & 0xFFF)
}

// S1 — arithmetic with immediates.
func TestArithmeticWithImmediates(t *testing.T) {
	m := New(nil)
	m.IMEM[0] = encode(OpAdd, 7, 1, 2, 0, 5, 7)
	m.IMEM[1] = encode(OpHalt, 0, 0, 0, 0, 0, 0)

	require.NoError(t, m.Run())
	assert.Equal(t, int32(12), m.R[7])
	assert.Equal(t, uint64(2), m.Cycles)
	assert.Len(t, m.StatusLog, 2)
}

// S2 — loop with branch: r3 counts down to zero via repeated subtraction.
func TestLoopWithBranch(t *testing.T) {
	m := New(nil)
	m.R[3] = 10
	// loop: sub v0, v0, imm2, zero, 0, 1   -> r3 -= 1
	m.IMEM[0] = encode(OpSub, 3, 3, 2, 0, 0, 1)
	// bne zero, zero, v0, imm2, 0, 0       -> if r3 != 0, pc = 0
	m.IMEM[1] = encode(OpBne, 0, 0, 3, 2, 0, 0)
	m.IMEM[2] = encode(OpHalt, 0, 0, 0, 0, 0, 0)

	require.NoError(t, m.Run())
	assert.Equal(t, int32(0), m.R[3])
}

// S3 — timer IRQ increments a register in the handler and returns.
func TestTimerIRQ(t *testing.T) {
	m := New(nil)
	m.IO[TimerMax] = 4
	m.IO[TimerEnable] = 1
	m.IO[IRQ0Enable] = 1
	m.IO[IRQHandler] = 10

	// main loop: a beq to pc=0 at pc=0. Its target equals its own PC, so
	// the PC-advance rule still moves on to pc=1, and the zero words at
	// pc=1..9 run as no-op adds until the timer interrupt vectors away.
	m.IMEM[0] = encode(OpBeq, 0, 0, 0, 0, 0, 0)

	// handler at pc=10: r10 += imm1(1); out IRQ0STATUS(idx 1+2=3) = r0(0); reti.
	m.IMEM[10] = encode(OpAdd, 10, 10, 1, 0, 1, 0)
	m.IMEM[11] = encode(OpOut, 0, 1, 2, 0, 1, 2)
	m.IMEM[12] = encode(OpReti, 0, 0, 0, 0, 0, 0)

	for i := 0; i < 200 && !m.Halted; i++ {
		require.NoError(t, m.step())
	}

	assert.Greater(t, m.R[10], int32(0))
}

// S4 — disk read completes exactly 1024 cycles after the command cycle.
func TestDiskReadCompletion(t *testing.T) {
	m := New(nil)
	for i := 0; i < SectorSize; i++ {
		m.Disk[3][i] = uint32(i + 1)
	}
	m.IO[DiskSector] = 3
	m.IO[DiskBuffer] = 0x100
	m.IO[DiskCmd] = 1

	m.handleDisk()
	assert.Equal(t, uint32(1), m.IO[DiskStatus])
	assert.Equal(t, int32(1), m.DMEM[0x100])
	assert.Equal(t, int32(SectorSize), m.DMEM[0x100+SectorSize-1])

	for i := uint64(1); i < DiskCompletionLatency; i++ {
		m.Cycles = i
		m.handleDisk()
		assert.Equal(t, uint32(1), m.IO[DiskStatus], "cycle %d", i)
	}

	m.Cycles = DiskCompletionLatency
	m.handleDisk()
	assert.Equal(t, uint32(0), m.IO[DiskStatus])
	assert.Equal(t, uint32(1), m.IO[IRQ1Status])
}

// S5 — monitor pixel write.
func TestMonitorPixelWrite(t *testing.T) {
	m := New(nil)
	m.IO[MonitorAddr] = 0x0102
	m.IO[MonitorData] = 0xAB
	m.IO[MonitorCmd] = 1

	m.handleMonitor()
	assert.Equal(t, uint8(0xAB), m.Monitor[1][2])
	assert.Equal(t, uint32(0), m.IO[MonitorCmd])
}

// S6 — IRQ2 schedule fires exactly at the scheduled cycles.
func TestIRQ2Schedule(t *testing.T) {
	m := New([]uint64{100, 200})
	m.IO[IRQ2Enable] = 1

	m.Cycles = 99
	m.interruptServiceRoutine()
	assert.Equal(t, uint32(0), m.IO[IRQ2Status])

	m.Cycles = 100
	m.interruptServiceRoutine()
	assert.Equal(t, uint32(1), m.IO[IRQ2Status])
	assert.True(t, m.irqBusy)

	m.irqBusy = false
	m.IO[IRQ2Status] = 0

	m.Cycles = 200
	m.interruptServiceRoutine()
	assert.Equal(t, uint32(1), m.IO[IRQ2Status])
}

func TestR0AlwaysZero(t *testing.T) {
	m := New(nil)
	m.IMEM[0] = encode(OpAdd, 0, 1, 2, 0, 3, 4)
	m.IMEM[1] = encode(OpHalt, 0, 0, 0, 0, 0, 0)
	require.NoError(t, m.Run())
	assert.Equal(t, int32(0), m.R[0])
}

func TestInvalidOpcodeIsFatal(t *testing.T) {
	m := New(nil)
	m.IMEM[0] = encode(30, 0, 0, 0, 0, 0, 0)
	err := m.Run()
	assert.Error(t, err)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestPCMaskedAfterJump(t *testing.T) {
	m := New(nil)
	m.R[3] = 4101 // 0x1005; masked to 0x005 on jump
	m.IMEM[0] = encode(OpJal, 5, 0, 0, 3, 0, 0)
	require.NoError(t, m.step())
	assert.Equal(t, uint16(5), m.PC)
	assert.Equal(t, int32(1), m.R[5])
}

func TestCyclesMatchClksRegister(t *testing.T) {
	m := New(nil)
	m.IMEM[0] = encode(OpAdd, 0, 0, 0, 0, 0, 0)
	m.IMEM[1] = encode(OpHalt, 0, 0, 0, 0, 0, 0)
	require.NoError(t, m.Run())
	assert.Equal(t, m.Cycles, uint64(m.IO[CLKS]))
}
