package protocol

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyProtocol is returned when running a protocol without instructions
	ErrEmptyProtocol = errors.New("protocol has no instructions")

	// ErrProtocolNotRun is returned when exporting a protocol that hasn't been run
	ErrProtocolNotRun = errors.New("protocol has not been run")

	// ErrInvalidConfig is returned when a block's configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MissingInput is an instruction input that nothing provides.
type MissingInput struct {
	// Instruction is the name of the instruction
	Instruction string

	// Step is the 1-based position of the instruction in the protocol
	Step int

	// Input is the name of the missing input
	Input string
}

// UnsatisfiedInputError is returned by Run when instructions have inputs
// that aren't protocol inputs or outputs of an earlier instruction. It lists every missing input.
type UnsatisfiedInputError struct {
	Missing []MissingInput
}

func (e *UnsatisfiedInputError) Error() string {
	var missing []string
	for _, m := range e.Missing {
		missing = append(missing, fmt.Sprintf("step %d (%s) needs %q", m.Step, m.Instruction, m.Input))
	}
	return "unsatisfied inputs: " + strings.Join(missing, "; ")
}

// invalidConfig wraps ErrInvalidConfig with a description of the problem
func invalidConfig(block, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, block, fmt.Sprintf(format, args...))
}
