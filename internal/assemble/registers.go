package assemble

// registerNames maps the assembly-level register mnemonics to their
// numeric index, per the architecture's fixed register convention.
var registerNames = map[string]uint8{
	"$zero": 0,
	"$imm1": 1,
	"$imm2": 2,
	"$v0":   3,
	"$a0":   4,
	"$a1":   5,
	"$a2":   6,
	"$t0":   7,
	"$t1":   8,
	"$t2":   9,
	"$s0":   10,
	"$s1":   11,
	"$s2":   12,
	"$gp":   13,
	"$sp":   14,
	"$ra":   15,
}

// mnemonics maps instruction mnemonics to their opcode value.
var mnemonics = map[string]uint8{
	"add":  0,
	"sub":  1,
	"mac":  2,
	"and":  3,
	"or":   4,
	"xor":  5,
	"sll":  6,
	"sra":  7,
	"srl":  8,
	"beq":  9,
	"bne":  10,
	"blt":  11,
	"bgt":  12,
	"ble":  13,
	"bge":  14,
	"jal":  15,
	"lw":   16,
	"sw":   17,
	"reti": 18,
	"in":   19,
	"out":  20,
	"halt": 21,
}
