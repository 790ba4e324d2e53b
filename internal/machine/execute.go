package machine

// Opcode values, 0..21; anything outside this range is a decode error.
const (
	OpAdd = iota
	OpSub
	OpMac
	OpAnd
	OpOr
	OpXor
	OpSll
	OpSra
	OpSrl
	OpBeq
	OpBne
	OpBlt
	OpBgt
	OpBle
	OpBge
	OpJal
	OpLw
	OpSw
	OpReti
	OpIn
	OpOut
	OpHalt

	numOpcodes
)

// decoded holds the fields of one 48-bit instruction word, laid out
// big-endian as:
//
//	[47:40] opcode  [39:36] rd  [35:32] rs  [31:28] rt  [27:24] rm
//	[23:12] imm1    [11:0]  imm2
type decoded struct {
	opcode uint8
	rd, rs, rt, rm uint8
	imm1, imm2 uint32
}

func decode(inst uint64) decoded {
	return decoded{
		opcode: uint8(inst>>40) & 0xFF,
		rd:     uint8(inst>>36) & 0xF,
		rs:     uint8(inst>>32) & 0xF,
		rt:     uint8(inst>>28) & 0xF,
		rm:     uint8(inst>>24) & 0xF,
		imm1:   uint32(inst>>12) & 0xFFF,
		imm2:   uint32(inst>>0) & 0xFFF,
	}
}

// executeInstruction fetches IMEM[PC], decodes it, injects immediates,
// logs the status trace entry, performs the opcode's effect and applies
// the PC-advance rule. It returns (halt, err): err is non-nil only for an
// invalid opcode, halt is true only after HALT has run.
func (m *Machine) executeInstruction() (bool, error) {
	inst := m.IMEM[m.PC]
	d := decode(inst)

	if d.opcode >= numOpcodes {
		return false, &DecodeError{PC: m.PC, Opcode: d.opcode}
	}

	prevPC := m.PC

	m.R[0] = 0
	m.R[1] = sext12(d.imm1)
	m.R[2] = sext12(d.imm2)

	m.appendStatus()

	rd, rs, rt, rm := d.rd, d.rs, d.rt, d.rm
	halt := false

	switch d.opcode {
	case OpAdd:
		m.R[rd] = m.R[rs] + m.R[rt] + m.R[rm]
	case OpSub:
		m.R[rd] = m.R[rs] - m.R[rt] - m.R[rm]
	case OpMac:
		m.R[rd] = m.R[rs]*m.R[rt] + m.R[rm]
	case OpAnd:
		m.R[rd] = m.R[rs] & m.R[rt] & m.R[rm]
	case OpOr:
		m.R[rd] = m.R[rs] | m.R[rt] | m.R[rm]
	case OpXor:
		m.R[rd] = m.R[rs] ^ m.R[rt] ^ m.R[rm]
	case OpSll:
		shift := uint32(m.R[rt]) & 0x1F
		m.R[rd] = int32(uint32(m.R[rs]) << shift)
	case OpSra:
		shift := uint32(m.R[rt]) & 0x1F
		shifted := uint32(m.R[rs] >> shift)
		m.R[rd] = signExtend(shifted, 32-uint(shift))
	case OpSrl:
		shift := uint32(m.R[rt]) & 0x1F
		m.R[rd] = int32(uint32(m.R[rs]) >> shift)
	case OpBeq:
		if m.R[rs] == m.R[rt] {
			m.PC = uint16(m.R[rm]) & PCMask
		}
	case OpBne:
		if m.R[rs] != m.R[rt] {
			m.PC = uint16(m.R[rm]) & PCMask
		}
	case OpBlt:
		if m.R[rs] < m.R[rt] {
			m.PC = uint16(m.R[rm]) & PCMask
		}
	case OpBgt:
		if m.R[rs] > m.R[rt] {
			m.PC = uint16(m.R[rm]) & PCMask
		}
	case OpBle:
		if m.R[rs] <= m.R[rt] {
			m.PC = uint16(m.R[rm]) & PCMask
		}
	case OpBge:
		if m.R[rs] >= m.R[rt] {
			m.PC = uint16(m.R[rm]) & PCMask
		}
	case OpJal:
		m.R[rd] = int32((uint32(m.PC) + 1) & PCMask)
		m.PC = uint16(m.R[rm]) & PCMask
	case OpLw:
		addr := (uint32(m.R[rs]) + uint32(m.R[rt])) & PCMask
		m.R[rd] = m.DMEM[addr] + m.R[rm]
	case OpSw:
		addr := (uint32(m.R[rs]) + uint32(m.R[rt])) & PCMask
		m.DMEM[addr] = m.R[rm] + m.R[rd]
	case OpReti:
		m.PC = uint16(m.IO[IRQReturn])
		m.irqBusy = false
	case OpIn:
		idx := uint32(m.R[rs]) + uint32(m.R[rt])
		if idx < NumIORegs {
			m.R[rd] = int32(m.IO[idx])
			m.appendHWAccess(AccessRead, idx)
		}
	case OpOut:
		idx := uint32(m.R[rs]) + uint32(m.R[rt])
		if idx < NumIORegs {
			m.IO[idx] = uint32(m.R[rm])
			m.appendHWAccess(AccessWrite, idx)
		}
	case OpHalt:
		halt = true
	}

	if m.PC == prevPC {
		m.PC = (m.PC + 1) & PCMask
	}
	m.R[0] = 0

	return halt, nil
}
