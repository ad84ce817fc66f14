// Package assembly is for resolving candidate assemblies into products: which
// parts join, in what order and orientation, and at which junctions.
package assembly

import (
	"fmt"
	"strings"

	"github.com/jjtimmons/synbio/internal/design"
	"github.com/jjtimmons/synbio/internal/seq"
)

// maxParts is the most parts in a single candidate
const maxParts = 64

// Junction is where two neighboring parts in a Resolved assembly join.
type Junction struct {
	// Left is the index of the 5' part in Resolved.Parts
	Left int

	// Right is the index of the 3' part in Resolved.Parts
	Right int

	// Kind of junction: "overlap", "5' overhang", "3' overhang" or "blunt"
	Kind string

	// Length of the overlap or overhang
	Length int

	// Seq is the overlapping or overhanging sequence
	Seq string

	// Overhang is the typed overhang of a ligation junction, ex: "^AATT"
	Overhang string
}

// Oriented is a part as it's used in a Resolved assembly.
type Oriented struct {
	// Part from the candidate
	Part design.Part

	// Reversed if the part is used as the reverse complement of its declared orientation
	Reversed bool

	// Record is the part's sequence as it's joined, the digested fragment for ligation
	Record *seq.Record
}

// Resolved is a candidate that's been proven to join into a product.
type Resolved struct {
	// Candidate that was resolved
	Candidate design.Candidate

	// Parts in the order they're joined
	Parts []Oriented

	// Junctions between neighboring parts. If the product is circular, the
	// last junction joins the last part to the first
	Junctions []Junction

	// Circular if the product is a plasmid
	Circular bool

	// Score is the total length of the junctions
	Score int

	// Product is the assembled sequence
	Product *seq.Record

	// Strategy is the name of the strategy that resolved it
	Strategy string
}

// Resolver resolves candidates into products. Digestions are cached for
// the lifetime of the Resolver.
//
// Resolvers are not safe for concurrent use.
type Resolver struct {
	digests map[digestKey][]fragment
}

// NewResolver creates a resolution session.
func NewResolver() *Resolver {
	return &Resolver{digests: make(map[digestKey][]fragment)}
}

// Resolve finds the single best way to join the candidate's parts with a
// strategy. If fixedOrder is true, only the candidate's order and declared
// orientations are checked.
func (r *Resolver) Resolve(c design.Candidate, s Strategy, fixedOrder bool) (*Resolved, error) {
	if s == nil {
		return nil, fmt.Errorf("failed to resolve [%s]: no strategy", strings.Join(c.IDs(), ", "))
	}
	if len(c.Parts) == 0 {
		return nil, &ResolveError{Strategy: s.Name(), Err: ErrNoValidAssembly}
	}
	if len(c.Parts) > maxParts {
		return nil, fmt.Errorf("failed to resolve: %d parts is more than the max, %d", len(c.Parts), maxParts)
	}

	return s.resolve(r, c, fixedOrder)
}

// pick runs a search and returns its single best solution
func (r *Resolver) pick(c design.Candidate, g *graph, s *search, strategy string) (*Resolved, error) {
	best, overflow := s.run()
	if len(best) == 0 {
		return nil, &ResolveError{Parts: c.IDs(), Strategy: strategy, Err: ErrNoValidAssembly}
	}

	if len(best) > 1 || overflow {
		var solutions []string
		for _, p := range best {
			solutions = append(solutions, g.describe(c, p))
		}
		return nil, &ResolveError{Parts: c.IDs(), Strategy: strategy, Solutions: solutions, Err: ErrAmbiguousAssembly}
	}

	return g.resolved(c, best[0], strategy), nil
}

// resolved creates a Resolved assembly from a path through the graph
func (g *graph) resolved(c design.Candidate, p path, strategy string) *Resolved {
	res := &Resolved{
		Candidate: c,
		Circular:  p.cycle,
		Score:     p.weight,
		Product:   g.product(c, p),
		Strategy:  strategy,
	}

	for i, n := range p.nodes {
		nd := g.nodes[n]
		res.Parts = append(res.Parts, Oriented{
			Part:     c.Parts[nd.part],
			Reversed: nd.reversed,
			Record:   nd.full,
		})

		if i < len(p.edges) {
			e := p.edges[i]
			j := Junction{
				Left:   i,
				Right:  (i + 1) % len(p.nodes),
				Kind:   "overlap",
				Length: e.weight,
				Seq:    e.seq,
			}
			if !g.overlaps {
				j.Overhang = nd.right
				j.Kind = overhangKind(nd.right)
			}
			res.Junctions = append(res.Junctions, j)
		}
	}

	return res
}

// product joins the nodes of a path into a single record
func (g *graph) product(c design.Candidate, p path) *seq.Record {
	var ids []string
	var records []*seq.Record
	for i, n := range p.nodes {
		nd := g.nodes[n]
		ids = append(ids, c.Parts[nd.part].ID())

		switch {
		case i >= len(p.edges):
			records = append(records, nd.full)
		case g.overlaps:
			// the overlap is kept once, from the 3' part
			records = append(records, nd.record.Slice(0, nd.record.Len()-p.edges[i].weight))
		default:
			records = append(records, nd.record)
		}
	}

	return seq.Concat(strings.Join(ids, "+"), p.cycle, records...)
}

// describe a path as its part ids with their orientation
func (g *graph) describe(c design.Candidate, p path) string {
	var parts []string
	for _, n := range p.nodes {
		nd := g.nodes[n]
		o := c.Parts[nd.part].Orientation
		if nd.reversed {
			o = 1 - o
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", c.Parts[nd.part].ID(), o))
	}
	return strings.Join(parts, " -> ")
}

// overhangKind returns the kind of a typed overhang
func overhangKind(overhang string) string {
	switch {
	case overhang == "^":
		return "blunt"
	case strings.HasPrefix(overhang, "^"):
		return "5' overhang"
	default:
		return "3' overhang"
	}
}
