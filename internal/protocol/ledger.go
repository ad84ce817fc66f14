package protocol

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Line is a reagent's total volume across a protocol and the well it's drawn from.
type Line struct {
	// Reagent on the line
	Reagent Reagent

	// Volume is the total µL needed
	Volume float64

	// Plate the reagent's reservoir is on
	Plate string

	// Well of the reagent's reservoir
	Well string
}

// ledgerKey identifies a reagent. Names are compared after unicode
// normalization and case folding; concentrations after trimming
type ledgerKey struct {
	name          string
	concentration string
}

// newLedgerKey normalizes a reagent into its key
func newLedgerKey(r Reagent) ledgerKey {
	fold := cases.Fold()
	normalize := func(s string) string {
		s = strings.Join(strings.Fields(s), " ")
		return fold.String(norm.NFC.String(s))
	}

	return ledgerKey{
		name:          normalize(r.Name),
		concentration: normalize(r.Concentration),
	}
}

// Ledger is the total volume of each reagent needed by a protocol. The same
// reagent at a different concentration is a different line.
type Ledger struct {
	lines []Line
	index map[ledgerKey]int
}

// newLedger creates an empty ledger
func newLedger() *Ledger {
	return &Ledger{index: make(map[ledgerKey]int)}
}

// add a volume of a reagent to the ledger. Returns the index of its line and
// whether the line is new
func (l *Ledger) add(r Reagent, volume float64) (index int, created bool) {
	key := newLedgerKey(r)
	if i, ok := l.index[key]; ok {
		l.lines[i].Volume += volume
		return i, false
	}

	l.lines = append(l.lines, Line{Reagent: r, Volume: volume})
	l.index[key] = len(l.lines) - 1
	return len(l.lines) - 1, true
}

// Lines returns a copy of the ledger's lines in the order they were first needed.
func (l *Ledger) Lines() []Line {
	if l == nil {
		return nil
	}
	return append([]Line(nil), l.lines...)
}

// Line returns the line for a reagent, if it's in the ledger.
func (l *Ledger) Line(r Reagent) (Line, bool) {
	if l == nil {
		return Line{}, false
	}
	i, ok := l.index[newLedgerKey(r)]
	if !ok {
		return Line{}, false
	}
	return l.lines[i], true
}
