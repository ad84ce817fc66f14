package design

import (
	"fmt"
	"iter"

	"github.com/jjtimmons/synbio/internal/seq"
)

// PlasmidLibrary is a union of independently defined designs.
type PlasmidLibrary struct {
	members []Design
}

// NewPlasmidLibrary creates a library from designs (or slices of records, each a Plasmid).
func NewPlasmidLibrary(members ...any) (*PlasmidLibrary, error) {
	l := &PlasmidLibrary{}
	for _, m := range members {
		if err := l.Append(m); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append adds a design to the library. A slice of records is added as a Plasmid.
func (l *PlasmidLibrary) Append(member any) error {
	switch m := member.(type) {
	case []*seq.Record:
		p, err := NewPlasmid()
		if err != nil {
			return err
		}
		for _, r := range m {
			if err := p.Append(r); err != nil {
				return err
			}
		}
		l.members = append(l.members, p)
		return nil
	case Design:
		if isNil(m) {
			return &IncompatibleMemberError{"PlasmidLibrary", "<nil>", "nil design"}
		}
		if contains(m, l) {
			return &IncompatibleMemberError{"PlasmidLibrary", fmt.Sprintf("%T", m), "library would contain itself"}
		}
		l.members = append(l.members, m)
		return nil
	default:
		return &IncompatibleMemberError{"PlasmidLibrary", fmt.Sprintf("%T", member), "not a design"}
	}
}

// Members returns the library's designs.
func (l *PlasmidLibrary) Members() []Design {
	return append([]Design(nil), l.members...)
}

// Expand yields each member's candidates, member after member.
func (l *PlasmidLibrary) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for _, m := range l.members {
			for c := range m.Expand() {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Count is the sum of the members' counts.
func (l *PlasmidLibrary) Count() int {
	count := 0
	for _, m := range l.members {
		count += m.Count()
	}
	return count
}

// contains returns whether target is d or is nested anywhere beneath d
func contains(d Design, target *PlasmidLibrary) bool {
	lib, ok := d.(*PlasmidLibrary)
	if !ok {
		return false
	}
	if lib == target {
		return true
	}
	for _, m := range lib.members {
		if contains(m, target) {
			return true
		}
	}
	return false
}

// isNil catches typed nil pointers stored in the Design interface
func isNil(d Design) bool {
	switch v := d.(type) {
	case *Plasmid:
		return v == nil
	case *Combinatorial:
		return v == nil
	case *CombinatorialBins:
		return v == nil
	case *PlasmidLibrary:
		return v == nil
	}
	return d == nil
}
