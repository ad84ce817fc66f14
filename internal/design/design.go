// Package design is for declaring parts and the rules for combining them into
// candidate assemblies.
package design

import (
	"fmt"
	"iter"

	"github.com/jjtimmons/synbio/internal/seq"
)

// Orientation of a Part in a design
type Orientation int

const (
	// Forward parts are used as they were read in
	Forward Orientation = iota

	// Reverse parts are used as their reverse complement
	Reverse
)

// String returns "fwd" or "rev"
func (o Orientation) String() string {
	if o == Reverse {
		return "rev"
	}
	return "fwd"
}

// Part is a record in a design, tagged with its orientation and an optional bin label.
type Part struct {
	// Record is the part's sequence record
	Record *seq.Record

	// Orientation of the part in the design
	Orientation Orientation

	// Bin groups parts that are interchangeable in a Combinatorial design, ex: "promoter"
	Bin string
}

// Seq returns the part's record in its declared orientation.
func (p Part) Seq() *seq.Record {
	if p.Orientation == Reverse {
		return p.Record.RevComp()
	}
	return p.Record
}

// ID returns the content id of the part's record.
func (p Part) ID() string {
	return p.Record.ContentID()
}

// Candidate is a single combination of parts that a design proposes be assembled.
type Candidate struct {
	// Parts in the order they were declared
	Parts []Part

	// Circular if the assembled product should be a plasmid
	Circular bool
}

// IDs returns the content ids of the candidate's parts.
func (c Candidate) IDs() []string {
	ids := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		ids[i] = p.ID()
	}
	return ids
}

// Design is a declaration of parts and how they're combined.
type Design interface {
	// Append adds a member to the design
	Append(member any) error

	// Expand yields every candidate assembly of the design. It is
	// restartable: every call yields the same candidates in the same order
	Expand() iter.Seq[Candidate]

	// Count is the number of candidates that Expand yields
	Count() int
}

// IncompatibleMemberError is returned when appending something that isn't a
// part (or a sub-design) that the design can hold.
type IncompatibleMemberError struct {
	// Design is the kind of design appended to
	Design string

	// Member is a description of what was appended
	Member string

	// Reason it was rejected
	Reason string
}

// Error implements the error interface.
func (e *IncompatibleMemberError) Error() string {
	return fmt.Sprintf("incompatible %s member %s: %s", e.Design, e.Member, e.Reason)
}

// toPart converts a record or part to a Part. bin is used if the member has none
func toPart(design string, member any) (Part, error) {
	var p Part
	switch m := member.(type) {
	case *seq.Record:
		p = Part{Record: m}
	case seq.Record:
		p = Part{Record: &m}
	case Part:
		p = m
	case *Part:
		if m == nil {
			return Part{}, &IncompatibleMemberError{design, "<nil>", "nil part"}
		}
		p = *m
	default:
		return Part{}, &IncompatibleMemberError{design, fmt.Sprintf("%T", member), "not a record or part"}
	}

	if p.Record == nil {
		return Part{}, &IncompatibleMemberError{design, "<nil>", "part has no record"}
	}
	if p.Record.Len() == 0 {
		return Part{}, &IncompatibleMemberError{design, p.Record.ContentID(), "empty sequence"}
	}
	if p.Orientation != Forward && p.Orientation != Reverse {
		return Part{}, &IncompatibleMemberError{design, p.Record.ContentID(), "unknown orientation"}
	}

	return p, nil
}

// toBin converts a slice of records or parts into a bin of Parts
func toBin(design string, member any) ([]Part, error) {
	var bin []Part
	switch m := member.(type) {
	case []*seq.Record:
		for _, r := range m {
			p, err := toPart(design, r)
			if err != nil {
				return nil, err
			}
			bin = append(bin, p)
		}
	case []Part:
		for _, mp := range m {
			p, err := toPart(design, mp)
			if err != nil {
				return nil, err
			}
			bin = append(bin, p)
		}
	default:
		return nil, &IncompatibleMemberError{design, fmt.Sprintf("%T", member), "not a bin of records or parts"}
	}

	if len(bin) == 0 {
		return nil, &IncompatibleMemberError{design, "[]", "empty bin"}
	}
	return bin, nil
}

// product yields the Cartesian product of bins. The first bin varies slowest
// and the last bin fastest, like an odometer.
func product(bins [][]Part, circular bool) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		if len(bins) == 0 {
			return
		}

		indexes := make([]int, len(bins))
		for {
			parts := make([]Part, len(bins))
			for i, bin := range bins {
				parts[i] = bin[indexes[i]]
			}
			if !yield(Candidate{Parts: parts, Circular: circular}) {
				return
			}

			// increment, carrying from the last bin towards the first
			i := len(bins) - 1
			for ; i >= 0; i-- {
				indexes[i]++
				if indexes[i] < len(bins[i]) {
					break
				}
				indexes[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// productCount is the number of candidates in the product of bins
func productCount(bins [][]Part) int {
	if len(bins) == 0 {
		return 0
	}

	count := 1
	for _, b := range bins {
		count *= len(b)
	}
	return count
}
