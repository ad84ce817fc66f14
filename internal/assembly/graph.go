package assembly

import (
	"math/bits"
	"strings"

	"github.com/jjtimmons/synbio/internal/seq"
)

// solutionLimit caps the number of assemblies enumerated for one candidate
const solutionLimit = 10000

// node is a part, in one orientation, that can be joined to others. For
// ligation there's a node per digested fragment of each part.
type node struct {
	// key identifies the node, ex: "0+" or "1:2-"
	key string

	// rev is the key of the same part (or fragment) on the opposite strand
	rev string

	// part is the index of the part in the candidate
	part int

	// reversed if the node is the reverse complement of the declared part
	reversed bool

	// record is the node's contribution to a product when it's followed by another node
	record *seq.Record

	// full is the node's contribution to a product when it's the last of a linear product
	full *seq.Record

	// left and right are typed overhangs for ligation nodes
	left, right string
}

// edge is a valid junction from one node's 3' end to another's 5' end
type edge struct {
	// to is the index of the node joined to
	to int

	// weight is the length of the overlap or overhang
	weight int

	// seq is the overlapping or overhanging sequence
	seq string
}

// graph is every node for a candidate's parts and the junctions between them
type graph struct {
	nodes []node
	edges [][]edge
	parts int

	// overlaps if neighboring nodes share the sequence of their junction
	overlaps bool
}

// newGraph creates a graph without edges
func newGraph(nodes []node, parts int) *graph {
	return &graph{
		nodes: nodes,
		edges: make([][]edge, len(nodes)),
		parts: parts,
	}
}

// connect adds an edge from one node to another
func (g *graph) connect(from, to, weight int, junction string) {
	g.edges[from] = append(g.edges[from], edge{to: to, weight: weight, seq: junction})
}

// path is an ordered walk of nodes. If it's a cycle, the last edge joins the
// last node back to the first
type path struct {
	nodes  []int
	edges  []edge
	weight int
	cycle  bool
}

// better returns whether this path scores higher than another: more parts and then more weight
func (p path) better(other path) bool {
	if len(p.nodes) != len(other.nodes) {
		return len(p.nodes) > len(other.nodes)
	}
	return p.weight > other.weight
}

// canonical returns a key that's the same for a path and its reverse complement
func (p path) canonical(g *graph) string {
	forward := make([]string, len(p.nodes))
	reverse := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		forward[i] = g.nodes[n].key
	}

	if p.cycle {
		// the reverse complement cycle, rotated to start at the same part
		reverse[0] = g.nodes[p.nodes[0]].rev
		for i := 1; i < len(p.nodes); i++ {
			reverse[i] = g.nodes[p.nodes[len(p.nodes)-i]].rev
		}
	} else {
		for i, n := range p.nodes {
			reverse[len(p.nodes)-1-i] = g.nodes[n].rev
		}
	}

	f, r := strings.Join(forward, " "), strings.Join(reverse, " ")
	if r < f {
		return r
	}
	return f
}

// preferred returns whether this path is a better way to write the same
// product as another: fewer reversed nodes and then the lesser key
func (p path) preferred(g *graph, other path) bool {
	reversed := func(q path) (count int, key string) {
		keys := make([]string, len(q.nodes))
		for i, n := range q.nodes {
			if g.nodes[n].reversed {
				count++
			}
			keys[i] = g.nodes[n].key
		}
		return count, strings.Join(keys, " ")
	}

	pCount, pKey := reversed(p)
	oCount, oKey := reversed(other)
	if pCount != oCount {
		return pCount < oCount
	}
	return pKey < oKey
}

// state is a position in the search: the first and current node and the parts visited
type state struct {
	start int
	node  int
	mask  uint64
}

// search finds every walk through a graph that uses each part at most once
type search struct {
	g *graph

	// cycle if walks must end with an edge back to their first node
	cycle bool

	// minParts is the fewest parts in a walk
	minParts int

	// fixed if walks must visit the parts in their declared order and orientation
	fixed bool

	// accept filters walks after they're found
	accept func(path) bool

	// dead are states with no walks beneath them
	dead map[state]bool

	// best are the highest scoring walks, by canonical key
	best map[string]path

	// bestKeys are the keys of best, in the order they were found
	bestKeys []string

	// found is the number of walks found
	found int
}

// run searches the graph and returns the highest scoring walks. overflow is
// true if the search stopped at the solution limit
func (s *search) run() (best []path, overflow bool) {
	s.dead = make(map[state]bool)
	s.best = make(map[string]path)

	for start, n := range s.g.nodes {
		if !s.startable(n) {
			continue
		}

		s.walk(state{start: start, node: start, mask: 1 << uint(n.part)}, path{nodes: []int{start}})
		if s.found >= solutionLimit {
			overflow = true
			break
		}
	}

	for _, k := range s.bestKeys {
		best = append(best, s.best[k])
	}
	return best, overflow
}

// startable returns whether a walk can start at a node
func (s *search) startable(n node) bool {
	if s.fixed {
		return n.part == 0 && !n.reversed
	}
	if s.cycle && s.minParts >= s.g.parts {
		// every part is in the cycle, so start it at the first
		return n.part == 0
	}
	return true
}

// walk extends a path from the state's node. Returns whether any walk was
// found from this state
func (s *search) walk(st state, p path) bool {
	if s.dead[st] {
		return false
	}
	if s.found >= solutionLimit {
		return true
	}

	first := s.g.nodes[st.start]
	count := bits.OnesCount64(st.mask)
	ok := false

	if count >= s.minParts {
		if s.cycle {
			for _, e := range s.g.edges[st.node] {
				if e.to == st.start {
					closed := path{
						nodes:  p.nodes,
						edges:  append(append([]edge{}, p.edges...), e),
						weight: p.weight + e.weight,
						cycle:  true,
					}
					s.record(closed)
					ok = true
				}
			}
		} else {
			s.record(p)
			ok = true
		}
	}

	for _, e := range s.g.edges[st.node] {
		next := s.g.nodes[e.to]
		if st.mask&(1<<uint(next.part)) != 0 {
			continue
		}
		if s.cycle && next.part < first.part {
			// cycles are found from their lowest part
			continue
		}
		if s.fixed && (next.part != count || next.reversed) {
			continue
		}

		extended := path{
			nodes:  append(append([]int{}, p.nodes...), e.to),
			edges:  append(append([]edge{}, p.edges...), e),
			weight: p.weight + e.weight,
		}
		if s.walk(state{start: st.start, node: e.to, mask: st.mask | 1<<uint(next.part)}, extended) {
			ok = true
		}
	}

	if !ok {
		s.dead[st] = true
	}
	return ok
}

// record a walk if it's accepted and at least as good as the best so far
func (s *search) record(p path) {
	s.found++
	if s.accept != nil && !s.accept(p) {
		return
	}

	if len(s.bestKeys) > 0 {
		current := s.best[s.bestKeys[0]]
		if current.better(p) {
			return
		}
		if p.better(current) {
			s.best = make(map[string]path)
			s.bestKeys = nil
		}
	}

	key := p.canonical(s.g)
	if seen, ok := s.best[key]; ok {
		if p.preferred(s.g, seen) {
			s.best[key] = p
		}
		return
	}
	s.best[key] = p
	s.bestKeys = append(s.bestKeys, key)
}
