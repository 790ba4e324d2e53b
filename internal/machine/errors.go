package machine

import "fmt"

// DecodeError is returned when the execute unit fetches an opcode outside
// the valid 0..21 range. It is fatal: the cycle loop stops immediately,
// without running that cycle's peripheral ticks.
type DecodeError struct {
	PC     uint16
	Opcode uint8
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid opcode %d at pc %03x", e.Opcode, e.PC)
}
