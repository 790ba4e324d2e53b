package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleArithmeticWithImmediates(t *testing.T) {
	src := []string{
		"add $t0, $imm1, $imm2, $zero, 5, 7",
		"halt $zero, $zero, $zero, $zero, 0, 0",
	}

	res, err := Assemble(src)
	require.NoError(t, err)

	opcode := uint8(res.IMEM[0] >> 40 & 0xFF)
	rd := uint8(res.IMEM[0] >> 36 & 0xF)
	rs := uint8(res.IMEM[0] >> 32 & 0xF)
	rt := uint8(res.IMEM[0] >> 28 & 0xF)
	rm := uint8(res.IMEM[0] >> 24 & 0xF)
	imm1 := uint32(res.IMEM[0] >> 12 & 0xFFF)
	imm2 := uint32(res.IMEM[0] & 0xFFF)

	assert.Equal(t, uint8(0), opcode) // add
	assert.Equal(t, uint8(7), rd)     // $t0
	assert.Equal(t, uint8(1), rs)     // $imm1
	assert.Equal(t, uint8(2), rt)     // $imm2
	assert.Equal(t, uint8(0), rm)     // $zero
	assert.Equal(t, uint32(5), imm1)
	assert.Equal(t, uint32(7), imm2)

	assert.Equal(t, uint8(21), uint8(res.IMEM[1]>>40&0xFF)) // halt
}

func TestAssembleLabelResolution(t *testing.T) {
	src := []string{
		"loop:",
		"sub $v0, $v0, $imm2, $zero, 0, 1",
		"bne $zero, $v0, $zero, $imm2, 0, loop",
		"halt $zero, $zero, $zero, $zero, 0, 0",
	}

	res, err := Assemble(src)
	require.NoError(t, err)

	// the label declaration does not consume a slot, so the branch's
	// target immediate (loop's instruction index, 0) lands in imm2.
	imm2 := uint32(res.IMEM[1] & 0xFFF)
	assert.Equal(t, uint32(0), imm2)
}

func TestAssembleWordDirective(t *testing.T) {
	src := []string{
		".word 4 0x2A",
		"halt $zero, $zero, $zero, $zero, 0, 0",
	}

	res, err := Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, int32(0x2A), res.DMEM[4])
	assert.Empty(t, res.Warnings)
}

func TestAssembleWordOutOfRangeIsWarningNotFatal(t *testing.T) {
	src := []string{
		".word 99999 1",
		"halt $zero, $zero, $zero, $zero, 0, 0",
	}

	res, err := Assemble(src)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warnings)
}

func TestAssembleUnknownMnemonicIsFatal(t *testing.T) {
	src := []string{"frobnicate $zero, $zero, $zero, $zero, 0, 0"}
	_, err := Assemble(src)
	assert.Error(t, err)
}

func TestAssembleUnknownRegisterIsFatal(t *testing.T) {
	src := []string{"add $bogus, $zero, $zero, $zero, 0, 0"}
	_, err := Assemble(src)
	assert.Error(t, err)
}

func TestAssembleUndefinedLabelIsFatal(t *testing.T) {
	src := []string{"beq $zero, $zero, $zero, $zero, 0, nowhere"}
	_, err := Assemble(src)
	assert.Error(t, err)
}

func TestAssembleStripsComments(t *testing.T) {
	src := []string{
		"# a full-line comment",
		"add $t0, $imm1, $imm2, $zero, 1, 1 # trailing comment",
		"halt $zero, $zero, $zero, $zero, 0, 0",
	}
	res, err := Assemble(src)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), uint8(res.IMEM[0]>>40&0xFF))
}
