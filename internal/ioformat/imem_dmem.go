// Package ioformat implements the bit-exact text/binary file formats the
// assembler and simulator exchange: one hex word per line for IMEM/DMEM/
// disk images, decimal cycle numbers for the IRQ2 schedule, and the
// simulator's various trace and dump files.
package ioformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/saleh2411/ISA-Project/internal/machine"
)

// ReadIMEM reads up to machine.MemorySize lines of 12-hex-digit
// instruction words. Missing trailing lines are left as zero, matching
// how the assembler zero-pads its output.
func ReadIMEM(path string) ([machine.MemorySize]uint64, error) {
	var imem [machine.MemorySize]uint64
	err := scanHexLines(path, 64, func(i int, v uint64) error {
		if i >= machine.MemorySize {
			return nil
		}
		imem[i] = v
		return nil
	})
	return imem, err
}

// ReadDMEM reads up to machine.MemorySize lines of 8-hex-digit data
// words, reinterpreting each as a signed 32-bit value.
func ReadDMEM(path string) ([machine.MemorySize]int32, error) {
	var dmem [machine.MemorySize]int32
	err := scanHexLines(path, 32, func(i int, v uint64) error {
		if i >= machine.MemorySize {
			return nil
		}
		dmem[i] = int32(uint32(v))
		return nil
	})
	return dmem, err
}

// ReadDisk reads a diskin file: machine.DiskSize*machine.SectorSize
// 8-hex-digit words, row-major over sectors. A short file leaves the
// remaining words zero.
func ReadDisk(path string) ([machine.DiskSize][machine.SectorSize]uint32, error) {
	var disk [machine.DiskSize][machine.SectorSize]uint32
	err := scanHexLines(path, 32, func(i int, v uint64) error {
		total := machine.DiskSize * machine.SectorSize
		if i >= total {
			return nil
		}
		disk[i/machine.SectorSize][i%machine.SectorSize] = uint32(v)
		return nil
	})
	return disk, err
}

// ReadIRQ2 reads the irq2in schedule: one non-negative decimal integer
// per line, strictly increasing. Values of any width are accepted (not
// truncated through a 32-bit or `int` parse), per the spec's correction
// of the original implementation's unsigned-long sscanf bug; an entry
// too large for 64 bits is dropped, since no cycle number reaches it.
func ReadIRQ2(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open irq2in: %w", err)
	}
	defer f.Close()

	var cycles []uint64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			// A well-formed entry beyond 64 bits lies past anything the
			// uint64 cycle counter can reach, so it can never fire.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parse irq2in line %q: %w", line, err)
		}
		cycles = append(cycles, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read irq2in: %w", err)
	}
	return cycles, nil
}

// scanHexLines reads whitespace-trimmed hex lines from path, calling fn
// with the zero-based line index and parsed value. bitSize bounds the
// parse (64 for imem's 48-bit words stored in 12 hex digits, 32 for
// dmem/disk's 8 hex digit words).
func scanHexLines(path string, bitSize int, fn func(i int, v uint64) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	i := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 16, bitSize)
		if err != nil {
			return fmt.Errorf("parse %s line %d (%q): %w", path, i, line, err)
		}
		if err := fn(i, v); err != nil {
			return err
		}
		i++
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
