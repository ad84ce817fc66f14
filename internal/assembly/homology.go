package assembly

import (
	"fmt"
	"strings"

	"github.com/jjtimmons/synbio/internal/design"
)

// resolve a candidate by the overlaps between the ends of its parts
func (h Homology) resolve(r *Resolver, c design.Candidate, fixedOrder bool) (*Resolved, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}

	var nodes []node
	for i, p := range c.Parts {
		fwd := p.Seq()
		if fwd.Len() <= h.MinOverlap {
			return nil, &IncompatiblePartError{
				Part:     p.ID(),
				Strategy: h.Name(),
				Reason:   fmt.Sprintf("%d bp is not longer than the minimum overlap, %d bp", fwd.Len(), h.MinOverlap),
			}
		}

		rev := fwd.RevComp()
		nodes = append(nodes,
			node{key: fmt.Sprintf("%d+", i), rev: fmt.Sprintf("%d-", i), part: i, record: fwd, full: fwd},
			node{key: fmt.Sprintf("%d-", i), rev: fmt.Sprintf("%d+", i), part: i, reversed: true, record: rev, full: rev},
		)
	}

	g := newGraph(nodes, len(c.Parts))
	g.overlaps = true
	for i, a := range nodes {
		for j, b := range nodes {
			if a.part == b.part && (i != j || !c.Circular || len(c.Parts) > 1) {
				continue // a part only joins itself when it's circularized alone
			}

			if length, junction := overlap(a.record.Seq, b.record.Seq, h.MinOverlap, h.MaxOverlap, h.MaxMismatch); length > 0 {
				g.connect(i, j, length, junction)
			}
		}
	}

	s := &search{
		g:        g,
		cycle:    c.Circular,
		minParts: len(c.Parts),
		fixed:    fixedOrder,
	}
	return r.pick(c, g, s, h.Name())
}

// overlap returns the longest overlap between the end of a and the start of b that's
// within the overlap bounds and has at most maxMismatch mismatches. Returns zero
// and an empty string if there's no overlap between them
func overlap(a, b string, minOverlap, maxOverlap, maxMismatch int) (length int, junction string) {
	a = strings.ToUpper(a)
	b = strings.ToUpper(b)

	//      v-maxOverlap from end    v-minOverlap from end
	// ------------------------------------
	//                    -----------------------------
	longest := min(maxOverlap, len(a)-1, len(b)-1)
	for k := longest; k >= minOverlap; k-- {
		start := len(a) - k
		mismatches := 0
		for j := 0; j < k && mismatches <= maxMismatch; j++ {
			if a[start+j] != b[j] {
				mismatches++
			}
		}

		if mismatches <= maxMismatch {
			return k, a[start:]
		}
	}
	return 0, ""
}
