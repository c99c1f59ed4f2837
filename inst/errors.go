package inst

import (
	"errors"
	"fmt"
)

// ErrUnknownOpcode is returned by the VM, wrapped in an OpcodeError,
// when an Instruction carries an Opcode value outside the defined set.
var ErrUnknownOpcode = errors.New("inst: unknown opcode")

// OpcodeError reports which instruction carried the unrecognized opcode.
type OpcodeError struct {
	StateNum int
	Opcode   Opcode
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("inst: instruction %d has unknown opcode %v", e.StateNum, e.Opcode)
}

func (e *OpcodeError) Unwrap() error { return ErrUnknownOpcode }
