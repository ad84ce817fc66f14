package assembly

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoValidAssembly is returned when no ordering of a candidate's parts joins into a product
	ErrNoValidAssembly = errors.New("no valid assembly")

	// ErrAmbiguousAssembly is returned when more than one ordering of a candidate's parts ties for the best score
	ErrAmbiguousAssembly = errors.New("ambiguous assembly")
)

// ResolveError is a failed resolution of a candidate. It wraps
// ErrNoValidAssembly or ErrAmbiguousAssembly.
type ResolveError struct {
	// Parts are the ids of the candidate's parts
	Parts []string

	// Strategy is the name of the strategy
	Strategy string

	// Solutions are the products that tied, if the assembly is ambiguous
	Solutions []string

	// Err is the sentinel error
	Err error
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("%v of [%s] with %s", e.Err, strings.Join(e.Parts, ", "), e.Strategy)
	if len(e.Solutions) > 0 {
		msg += ": " + strings.Join(e.Solutions, " | ")
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// IncompatiblePartError is returned when a part cannot be used by a strategy.
type IncompatiblePartError struct {
	// Part is the id of the part
	Part string

	// Strategy is the name of the strategy
	Strategy string

	// Reason the part is unusable
	Reason string
}

func (e *IncompatiblePartError) Error() string {
	return fmt.Sprintf("part %s is incompatible with %s: %s", e.Part, e.Strategy, e.Reason)
}
