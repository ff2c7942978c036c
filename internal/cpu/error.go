package cpu

import "fmt"

// StepError is returned by Step and contains the location of the failing instruction.
type StepError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("executing opcode $%04X at $%04X: %v", e.Opcode, e.PC, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
