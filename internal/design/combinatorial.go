package design

import (
	"iter"
)

// Combinatorial is a library of every combination of parts across their bins.
// Bins are formed from the parts' Bin labels in the order they were first
// seen. A part appended without a label is a bin of its own, so parts need
// labels to be varied: a pool of unlabeled parts is a single candidate.
type Combinatorial struct {
	// Linear if the assembled products are not circularized
	Linear bool

	parts []Part
}

// NewCombinatorial creates a Combinatorial design from records or parts.
func NewCombinatorial(members ...any) (*Combinatorial, error) {
	c := &Combinatorial{}
	for _, m := range members {
		if err := c.Append(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Append adds a record or part to the design.
func (c *Combinatorial) Append(member any) error {
	part, err := toPart("Combinatorial", member)
	if err != nil {
		return err
	}

	c.parts = append(c.parts, part)
	return nil
}

// Bins returns the parts grouped by their bin labels.
func (c *Combinatorial) Bins() [][]Part {
	var bins [][]Part
	binIndex := make(map[string]int)
	for _, p := range c.parts {
		if p.Bin == "" {
			bins = append(bins, []Part{p})
			continue
		}

		i, seen := binIndex[p.Bin]
		if !seen {
			i = len(bins)
			binIndex[p.Bin] = i
			bins = append(bins, nil)
		}
		bins[i] = append(bins[i], p)
	}
	return bins
}

// Expand yields the Cartesian product of the bins.
func (c *Combinatorial) Expand() iter.Seq[Candidate] {
	return product(c.Bins(), !c.Linear)
}

// Count is the product of the bins' sizes.
func (c *Combinatorial) Count() int {
	return productCount(c.Bins())
}

// CombinatorialBins is a library of every combination of parts across
// explicitly declared bins.
type CombinatorialBins struct {
	// Linear if the assembled products are not circularized
	Linear bool

	bins [][]Part
}

// NewCombinatorialBins creates a design from bins ([]*seq.Record or []Part).
func NewCombinatorialBins(bins ...any) (*CombinatorialBins, error) {
	c := &CombinatorialBins{}
	for _, b := range bins {
		if err := c.Append(b); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Append adds a bin to the design.
func (c *CombinatorialBins) Append(member any) error {
	bin, err := toBin("CombinatorialBins", member)
	if err != nil {
		return err
	}

	c.bins = append(c.bins, bin)
	return nil
}

// Bins returns a copy of the design's bins.
func (c *CombinatorialBins) Bins() [][]Part {
	bins := make([][]Part, len(c.bins))
	for i, b := range c.bins {
		bins[i] = append([]Part(nil), b...)
	}
	return bins
}

// Expand yields the Cartesian product of the bins.
func (c *CombinatorialBins) Expand() iter.Seq[Candidate] {
	return product(c.Bins(), !c.Linear)
}

// Count is the product of the bins' sizes.
func (c *CombinatorialBins) Count() int {
	return productCount(c.bins)
}
