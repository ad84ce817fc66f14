package assembly

import (
	"fmt"

	"github.com/jjtimmons/synbio/internal/design"
)

// Strategy is a way of joining parts into a product. It's one of Homology or Ligation.
type Strategy interface {
	// Name of the strategy, ex: "homology"
	Name() string

	// resolve a candidate with the strategy
	resolve(r *Resolver, c design.Candidate, fixedOrder bool) (*Resolved, error)
}

// Homology joins parts that share overlapping sequence at their ends (ex: Gibson).
type Homology struct {
	// MinOverlap is the shortest overlap between neighboring parts
	MinOverlap int

	// MaxOverlap is the longest overlap between neighboring parts
	MaxOverlap int

	// MaxMismatch is the number of mismatched bases allowed in an overlap
	MaxMismatch int
}

// NewHomology creates a homology strategy after validating its overlap bounds.
func NewHomology(minOverlap, maxOverlap, maxMismatch int) (Homology, error) {
	h := Homology{
		MinOverlap:  minOverlap,
		MaxOverlap:  maxOverlap,
		MaxMismatch: maxMismatch,
	}
	return h, h.validate()
}

// Name returns "homology".
func (h Homology) Name() string {
	return "homology"
}

func (h Homology) validate() error {
	if h.MinOverlap < 1 {
		return fmt.Errorf("minimum overlap must be positive: %d", h.MinOverlap)
	}
	if h.MaxOverlap < h.MinOverlap {
		return fmt.Errorf("maximum overlap %d is less than the minimum overlap %d", h.MaxOverlap, h.MinOverlap)
	}
	if h.MaxMismatch < 0 || h.MaxMismatch >= h.MinOverlap {
		return fmt.Errorf("mismatches must be between 0 and the minimum overlap %d: %d", h.MinOverlap, h.MaxMismatch)
	}
	return nil
}

// Ligation joins parts by the sticky ends left after restriction digestion (ex: Golden Gate).
type Ligation struct {
	// Enzymes the parts are digested with
	Enzymes []Enzyme

	// Include keeps only products with a feature matching one of these keywords
	Include []string

	// MinCount is the fewest parts in a product. Zero means every part
	MinCount int
}

// NewLigation creates a ligation strategy with the named enzymes.
func NewLigation(enzymes []string, include []string, minCount int) (Ligation, error) {
	if len(enzymes) == 0 {
		return Ligation{}, fmt.Errorf("failed to create a ligation strategy: no enzymes")
	}

	parsed, err := EnzymesByName(enzymes...)
	if err != nil {
		return Ligation{}, fmt.Errorf("failed to create a ligation strategy: %w", err)
	}

	l := Ligation{
		Enzymes:  parsed,
		Include:  include,
		MinCount: minCount,
	}
	return l, l.validate()
}

// Name returns "ligation".
func (l Ligation) Name() string {
	return "ligation"
}

// EnzymeNames returns the names of the ligation's enzymes.
func (l Ligation) EnzymeNames() []string {
	names := make([]string, len(l.Enzymes))
	for i, e := range l.Enzymes {
		names[i] = e.Name
	}
	return names
}

func (l Ligation) validate() error {
	if len(l.Enzymes) == 0 {
		return fmt.Errorf("ligation needs at least one enzyme")
	}
	if l.MinCount < 0 {
		return fmt.Errorf("minimum part count must not be negative: %d", l.MinCount)
	}
	return nil
}
