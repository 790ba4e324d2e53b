// Package assemble implements the two-pass assembler: pass one collects
// label addresses, pass two resolves operands and encodes each
// instruction into a 48-bit word, also applying .word directives to the
// initial data image.
package assemble

import (
	"strconv"
	"strings"

	"github.com/saleh2411/ISA-Project/internal/machine"
)

// Result holds the two output images produced by Assemble, plus any
// non-fatal diagnostics (currently: skipped out-of-range .word
// addresses) the caller should surface to the user.
type Result struct {
	IMEM     [machine.MemorySize]uint64
	DMEM     [machine.MemorySize]int32
	Warnings []string
}

// Assembler holds the state threaded between the two passes: the label
// table built in pass one is read-only by the time pass two starts.
type Assembler struct {
	labels map[string]uint32
}

// Assemble runs both passes over source and returns the encoded images.
// Source lines are whatever the caller read from the input file, one
// line per slice element, in order.
func Assemble(source []string) (*Result, error) {
	a := &Assembler{labels: make(map[string]uint32)}

	if err := a.collectLabels(source); err != nil {
		return nil, err
	}

	res := &Result{}
	if err := a.encode(source, res); err != nil {
		return nil, err
	}
	return res, nil
}

// stripComment removes a trailing `#`-comment and surrounding whitespace.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// asLabelDecl reports whether line is exactly a label declaration
// (`NAME:` with nothing else on the line) and returns the bare name.
func asLabelDecl(line string) (string, bool) {
	if !strings.HasSuffix(line, ":") {
		return "", false
	}
	name := strings.TrimSuffix(line, ":")
	if name == "" || strings.ContainsAny(name, " \t,") {
		return "", false
	}
	return name, true
}

// collectLabels is pass one: it walks the source assigning each
// non-label, non-.word line the next instruction index, recording any
// label declaration against that index without itself consuming a slot.
func (a *Assembler) collectLabels(source []string) error {
	index := uint32(0)
	for _, raw := range source {
		line := stripComment(raw)
		if line == "" {
			continue
		}
		if name, ok := asLabelDecl(line); ok {
			a.labels[name] = index
			continue
		}
		if strings.HasPrefix(line, ".word") {
			continue
		}
		index++
	}
	return nil
}

// encode is pass two: it re-walks the source, applying .word directives
// to the data image and encoding every instruction line into the next
// instruction-image slot.
func (a *Assembler) encode(source []string, res *Result) error {
	index := uint32(0)
	for lineNum, raw := range source {
		line := stripComment(raw)
		if line == "" {
			continue
		}
		if _, ok := asLabelDecl(line); ok {
			continue
		}
		if strings.HasPrefix(line, ".word") {
			if err := a.applyWord(line, lineNum+1, res); err != nil {
				return err
			}
			continue
		}

		word, err := a.encodeInstruction(line, lineNum+1)
		if err != nil {
			return err
		}
		if index >= machine.MemorySize {
			return errf(lineNum+1, "program exceeds %d instructions", machine.MemorySize)
		}
		res.IMEM[index] = word
		index++
	}
	return nil
}

// applyWord handles `.word ADDR VALUE`, accepting decimal or 0x-prefixed
// hex for both operands. An out-of-range address is reported but does
// not abort assembly, per the guard-condition error taxonomy.
func (a *Assembler) applyWord(line string, lineNum int, res *Result) error {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return errf(lineNum, "malformed .word directive: %q", line)
	}
	addr, err := parseInt(fields[1])
	if err != nil {
		return errf(lineNum, "invalid .word address %q: %v", fields[1], err)
	}
	value, err := parseInt(fields[2])
	if err != nil {
		return errf(lineNum, "invalid .word value %q: %v", fields[2], err)
	}
	if addr < 0 || addr >= machine.MemorySize {
		res.Warnings = append(res.Warnings, errf(lineNum, ".word address %d out of range, skipped", addr).Error())
		return nil
	}
	res.DMEM[addr] = int32(value)
	return nil
}

// encodeInstruction tokenizes one instruction line into its seven
// fields (mnemonic, rd, rs, rt, rm, imm1, imm2) and packs them into the
// 48-bit word layout.
func (a *Assembler) encodeInstruction(line string, lineNum int) (uint64, error) {
	fields := tokenize(line)
	if len(fields) != 7 {
		return 0, errf(lineNum, "expected mnemonic and 6 operands, got %d fields in %q", len(fields), line)
	}

	opcode, ok := mnemonics[fields[0]]
	if !ok {
		return 0, errf(lineNum, "unknown mnemonic %q", fields[0])
	}

	rd, err := a.resolveRegister(fields[1], lineNum)
	if err != nil {
		return 0, err
	}
	rs, err := a.resolveRegister(fields[2], lineNum)
	if err != nil {
		return 0, err
	}
	rt, err := a.resolveRegister(fields[3], lineNum)
	if err != nil {
		return 0, err
	}
	rm, err := a.resolveRegister(fields[4], lineNum)
	if err != nil {
		return 0, err
	}
	imm1, err := a.resolveImmediate(fields[5], lineNum)
	if err != nil {
		return 0, err
	}
	imm2, err := a.resolveImmediate(fields[6], lineNum)
	if err != nil {
		return 0, err
	}

	word := uint64(opcode)<<40 |
		uint64(rd)<<36 |
		uint64(rs)<<32 |
		uint64(rt)<<28 |
		uint64(rm)<<24 |
		(uint64(imm1)&0xFFF)<<12 |
		(uint64(imm2) & 0xFFF)
	return word, nil
}

func (a *Assembler) resolveRegister(tok string, lineNum int) (uint8, error) {
	r, ok := registerNames[tok]
	if !ok {
		return 0, errf(lineNum, "unknown register %q", tok)
	}
	return r, nil
}

// resolveImmediate accepts signed decimal, 0x-prefixed hex, or a label
// name resolved to its instruction index.
func (a *Assembler) resolveImmediate(tok string, lineNum int) (uint32, error) {
	if addr, ok := a.labels[tok]; ok {
		return addr, nil
	}
	v, err := parseInt(tok)
	if err != nil {
		return 0, errf(lineNum, "unknown immediate or undefined label %q", tok)
	}
	return uint32(v), nil
}

// parseInt parses a decimal or 0x-prefixed hex integer, signed.
func parseInt(tok string) (int64, error) {
	neg := false
	s := tok
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	base := 10
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		base = 16
		s = s[2:]
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

// tokenize splits an instruction line on whitespace and commas, per the
// spec's lexing rule, discarding empty fields produced by adjacent
// separators.
func tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return fields
}
