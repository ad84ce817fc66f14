package protocol

import (
	"fmt"

	"github.com/jjtimmons/synbio/internal/picklist"
	"github.com/jjtimmons/synbio/internal/seq"
)

// wellsPerPlate is the number of wells on a 96 well plate
const wellsPerPlate = picklist.Rows * picklist.Columns

// Sample is a record in a well.
type Sample struct {
	// Record in the well
	Record *seq.Record

	// Plate the well is on
	Plate string

	// Well, ex: "A1"
	Well string
}

// Contents is a well on a plate and what's been put into it.
type Contents struct {
	// Plate the well is on
	Plate string

	// Well, ex: "A1"
	Well string

	// Name of the sample or reagent in the well
	Name string

	// Volume of liquid transferred into the well in µL
	Volume float64
}

// plate is a set of wells that are filled in order
type plate struct {
	name  string
	wells []*Contents
}

// Layout is every plate in a protocol and what's in their wells.
type Layout struct {
	plates []*plate

	// group is the number of plates made for each plate group
	group map[string]int
}

// newLayout creates an empty layout
func newLayout() *Layout {
	return &Layout{group: make(map[string]int)}
}

// allocate fills the next well of a plate group, ex: "inputs" fills "inputs-1"
// then "inputs-2" once the first plate is full
func (l *Layout) allocate(group, name string) *Contents {
	var p *plate
	if count := l.group[group]; count > 0 {
		last := fmt.Sprintf("%s-%d", group, count)
		for _, candidate := range l.plates {
			if candidate.name == last && len(candidate.wells) < wellsPerPlate {
				p = candidate
			}
		}
	}

	if p == nil {
		l.group[group]++
		p = &plate{name: fmt.Sprintf("%s-%d", group, l.group[group])}
		l.plates = append(l.plates, p)
	}

	c := &Contents{
		Plate: p.name,
		Well:  picklist.WellName(len(p.wells)),
		Name:  name,
	}
	p.wells = append(p.wells, c)
	return c
}

// well returns the contents of a well
func (l *Layout) well(plateName, well string) *Contents {
	for _, p := range l.plates {
		if p.name != plateName {
			continue
		}
		for _, c := range p.wells {
			if c.Well == well {
				return c
			}
		}
	}
	return nil
}

// Wells returns a copy of every filled well, by plate and then well.
func (l *Layout) Wells() []Contents {
	var wells []Contents
	for _, p := range l.plates {
		for _, c := range p.wells {
			wells = append(wells, *c)
		}
	}
	return wells
}
