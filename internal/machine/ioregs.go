// Package machine implements the cycle-stepped core of the ISA: register
// file, memory, IO registers, disk controller, timer, monitor, interrupt
// unit, execute unit and the cycle loop that drives them.
package machine

// IO register indices. There are exactly NumIORegs 32-bit registers,
// memory-mapped through the `in`/`out` opcodes.
const (
	IRQ0Enable = iota
	IRQ1Enable
	IRQ2Enable
	IRQ0Status
	IRQ1Status
	IRQ2Status
	IRQHandler
	IRQReturn
	CLKS
	LEDS
	Display7Seg
	TimerEnable
	TimerCurrent
	TimerMax
	DiskCmd
	DiskSector
	DiskBuffer
	DiskStatus
	Reserved0
	Reserved1
	MonitorAddr
	MonitorData
	MonitorCmd

	NumIORegs
)

// ioRegNames mirrors get_IO_reg_name from the reference simulator; used
// only for the hwregtrace file, so unknown indices never reach it (the
// in/out guard keeps rs+rt < NumIORegs before logging).
var ioRegNames = [NumIORegs]string{
	IRQ0Enable:   "irq0enable",
	IRQ1Enable:   "irq1enable",
	IRQ2Enable:   "irq2enable",
	IRQ0Status:   "irq0status",
	IRQ1Status:   "irq1status",
	IRQ2Status:   "irq2status",
	IRQHandler:   "irqhandler",
	IRQReturn:    "irqreturn",
	CLKS:         "clks",
	LEDS:         "leds",
	Display7Seg:  "display7seg",
	TimerEnable:  "timerenable",
	TimerCurrent: "timercurrent",
	TimerMax:     "timermax",
	DiskCmd:      "diskcmd",
	DiskSector:   "disksector",
	DiskBuffer:   "diskbuffer",
	DiskStatus:   "diskstatus",
	Reserved0:    "reserved0",
	Reserved1:    "reserved1",
	MonitorAddr:  "monitoraddr",
	MonitorData:  "monitordata",
	MonitorCmd:   "monitorcmd",
}

// IORegName returns the canonical name of an IO register index, or
// "UNKNOWN" if idx is out of range.
func IORegName(idx uint32) string {
	if idx >= NumIORegs {
		return "UNKNOWN"
	}
	return ioRegNames[idx]
}
