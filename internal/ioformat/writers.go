package ioformat

import (
	"bufio"
	"fmt"
	"os"

	"github.com/saleh2411/ISA-Project/internal/machine"
)

// WriteIMEM writes the instruction image the assembler produces: exactly
// machine.MemorySize lines of 12-hex-digit words, zero-padded.
func WriteIMEM(path string, imem [machine.MemorySize]uint64) error {
	return writeLines(path, machine.MemorySize, func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%012X\n", imem[i])
		return err
	})
}

// WriteDMEMFull writes the assembler's data image: exactly
// machine.MemorySize lines of 8-hex-digit words, unlike the simulator's
// dmemout which truncates at the last nonzero line.
func WriteDMEMFull(path string, dmem [machine.MemorySize]int32) error {
	return writeLines(path, machine.MemorySize, func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%08X\n", uint32(dmem[i]))
		return err
	})
}

// WriteDMEM writes d_mem as 8-hex-digit lines, truncated at the last
// nonzero entry (an all-zero memory produces an empty file).
func WriteDMEM(path string, dmem [machine.MemorySize]int32) error {
	last := -1
	for i, v := range dmem {
		if v != 0 {
			last = i
		}
	}
	return writeLines(path, last+1, func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%08X\n", uint32(dmem[i]))
		return err
	})
}

// WriteDiskOut writes the disk image row-major over sectors, 8-hex-digit
// lines, truncated at the last nonzero word.
func WriteDiskOut(path string, disk [machine.DiskSize][machine.SectorSize]uint32) error {
	last := -1
	for s := 0; s < machine.DiskSize; s++ {
		for w := 0; w < machine.SectorSize; w++ {
			if disk[s][w] != 0 {
				last = s*machine.SectorSize + w
			}
		}
	}
	return writeLines(path, last+1, func(w *bufio.Writer, i int) error {
		_, err := fmt.Fprintf(w, "%08X\n", disk[i/machine.SectorSize][i%machine.SectorSize])
		return err
	})
}

func writeLines(path string, n int, line func(w *bufio.Writer, i int) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i := 0; i < n; i++ {
		if err := line(w, i); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return w.Flush()
}

// WriteTrace writes one line per executed instruction:
// "<pc:3hex> <inst:12hex> <r0:8hex> ... <r15:8hex>".
func WriteTrace(path string, log []machine.StatusEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range log {
		fmt.Fprintf(w, "%03X %012X", e.PC, e.Inst)
		for _, r := range e.Regs {
			fmt.Fprintf(w, " %08x", uint32(r))
		}
		fmt.Fprint(w, "\n")
	}
	return w.Flush()
}

// WriteHWRegTrace writes the combined hwregtrace file plus the derived
// leds and display7seg per-register write traces.
func WriteHWRegTrace(hwregPath, ledsPath, displayPath string, log []machine.HWAccessEntry) error {
	fhw, err := os.Create(hwregPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", hwregPath, err)
	}
	defer fhw.Close()

	fled, err := os.Create(ledsPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", ledsPath, err)
	}
	defer fled.Close()

	fdisp, err := os.Create(displayPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", displayPath, err)
	}
	defer fdisp.Close()

	whw := bufio.NewWriter(fhw)
	wled := bufio.NewWriter(fled)
	wdisp := bufio.NewWriter(fdisp)

	for _, e := range log {
		fmt.Fprintf(whw, "%d %s %s %08x\n", e.Cycle, e.Kind, machine.IORegName(e.IOReg), e.Data)

		if e.Kind == machine.AccessWrite {
			switch e.IOReg {
			case machine.LEDS:
				fmt.Fprintf(wled, "%d %08x\n", e.Cycle, e.Data)
			case machine.Display7Seg:
				fmt.Fprintf(wdisp, "%d %08x\n", e.Cycle, e.Data)
			}
		}
	}

	if err := whw.Flush(); err != nil {
		return err
	}
	if err := wled.Flush(); err != nil {
		return err
	}
	return wdisp.Flush()
}

// WriteCyclesRegOut writes the total cycle count and r3..r15.
func WriteCyclesRegOut(cyclesPath, regoutPath string, cycles uint64, regs [machine.RegSize]int32) error {
	fc, err := os.Create(cyclesPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", cyclesPath, err)
	}
	defer fc.Close()
	if _, err := fmt.Fprintf(fc, "%d\n", cycles); err != nil {
		return err
	}

	fr, err := os.Create(regoutPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", regoutPath, err)
	}
	defer fr.Close()
	w := bufio.NewWriter(fr)
	for i := 3; i < machine.RegSize; i++ {
		fmt.Fprintf(w, "%08x\n", uint32(regs[i]))
	}
	return w.Flush()
}

// WriteMonitorText writes the monitor framebuffer as 65536 lines of
// 2-hex-digit pixel values, row-major.
func WriteMonitorText(path string, monitor [machine.MonitorSize][machine.MonitorSize]uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for r := 0; r < machine.MonitorSize; r++ {
		for c := 0; c < machine.MonitorSize; c++ {
			fmt.Fprintf(w, "%02X\n", monitor[r][c])
		}
	}
	return w.Flush()
}

// WriteMonitorYUV writes the monitor framebuffer as a raw binary blob of
// 65536 bytes, row-major. Rendering that blob is an external collaborator
// concern; this only produces the bytes.
func WriteMonitorYUV(path string, monitor [machine.MonitorSize][machine.MonitorSize]uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 0, machine.MonitorSize*machine.MonitorSize)
	for r := 0; r < machine.MonitorSize; r++ {
		buf = append(buf, monitor[r][:]...)
	}
	_, err = f.Write(buf)
	return err
}
