package design

import (
	"iter"
)

// Plasmid is a single assembly of all its parts.
type Plasmid struct {
	// Linear if the assembled product is not circularized
	Linear bool

	parts []Part
}

// NewPlasmid creates a Plasmid design from records or parts.
func NewPlasmid(members ...any) (*Plasmid, error) {
	p := &Plasmid{}
	for _, m := range members {
		if err := p.Append(m); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Append adds a record or part to the plasmid.
func (p *Plasmid) Append(member any) error {
	part, err := toPart("Plasmid", member)
	if err != nil {
		return err
	}

	p.parts = append(p.parts, part)
	return nil
}

// Parts returns the plasmid's parts in append order.
func (p *Plasmid) Parts() []Part {
	return append([]Part(nil), p.parts...)
}

// Expand yields a single candidate of all the plasmid's parts.
func (p *Plasmid) Expand() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		if len(p.parts) == 0 {
			return
		}
		yield(Candidate{Parts: p.Parts(), Circular: !p.Linear})
	}
}

// Count is 1 for a plasmid with parts.
func (p *Plasmid) Count() int {
	if len(p.parts) == 0 {
		return 0
	}
	return 1
}
