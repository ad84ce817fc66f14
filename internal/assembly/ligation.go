package assembly

import (
	"fmt"
	"strings"

	"github.com/jjtimmons/synbio/internal/design"
	"github.com/jjtimmons/synbio/internal/seq"
)

// resolve a candidate by the overhangs of its parts' fragments after digestion
func (l Ligation) resolve(r *Resolver, c design.Candidate, fixedOrder bool) (*Resolved, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}

	var nodes []node
	for i, p := range c.Parts {
		frags := r.digest(p.Seq(), l.Enzymes)
		if len(frags) == 0 {
			return nil, &IncompatiblePartError{
				Part:     p.ID(),
				Strategy: l.Name(),
				Reason:   fmt.Sprintf("no fragments after digestion with %s", strings.Join(l.EnzymeNames(), ", ")),
			}
		}

		for _, f := range frags {
			key, rev := fmt.Sprintf("%d:%d+", i, f.index), fmt.Sprintf("%d:%d-", i, f.index)
			if f.reversed {
				key, rev = rev, key
			}

			nodes = append(nodes, node{
				key:      key,
				rev:      rev,
				part:     i,
				reversed: f.reversed,
				record:   f.record,
				full:     f.full,
				left:     f.left,
				right:    f.right,
			})
		}
	}

	g := newGraph(nodes, len(c.Parts))
	for i, a := range nodes {
		for j, b := range nodes {
			if a.part == b.part && i != j {
				continue
			}

			if a.right == b.left {
				bases := strings.Trim(a.right, "^")
				g.connect(i, j, len(bases), bases)
			}
		}
	}

	minParts := len(c.Parts)
	if l.MinCount > 0 && l.MinCount < minParts {
		minParts = l.MinCount
	}

	s := &search{
		g:        g,
		cycle:    c.Circular,
		minParts: minParts,
		fixed:    fixedOrder,
		accept: func(p path) bool {
			product := g.product(c, p)
			if religates(product, c) {
				return false
			}
			return len(l.Include) == 0 || product.HasFeature(l.Include)
		},
	}
	return r.pick(c, g, s, l.Name())
}

// religates returns whether a product is just one of the candidate's
// parts ligated back together
func religates(product *seq.Record, c design.Candidate) bool {
	target := strings.ToUpper(product.Seq)
	for _, p := range c.Parts {
		part := strings.ToUpper(p.Record.Seq)
		if len(part) != len(target) {
			continue
		}

		if !product.Circular {
			if part == target || seq.RevComp(part) == target {
				return true
			}
			continue
		}

		if strings.Contains(part+part, target) || strings.Contains(seq.RevComp(part+part), target) {
			return true
		}
	}
	return false
}
