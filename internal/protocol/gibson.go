package protocol

import (
	"time"

	"github.com/jjtimmons/synbio/internal/assembly"
	"github.com/jjtimmons/synbio/internal/design"
)

// GibsonConfig is the configuration of a Gibson Assembly.
type GibsonConfig struct {
	// Homology is how parts are checked for overlaps
	Homology assembly.Homology

	// MasterMix is the Gibson Assembly master mix
	MasterMix Reagent

	// MasterMixVolume is the µL of master mix per assembly
	MasterMixVolume float64

	// PartVolume is the µL of each part per assembly
	PartVolume float64

	// Temperature of the incubation
	Temperature float64

	// Duration of the incubation
	Duration time.Duration

	// Transform is the transformation after assembly
	Transform TransformConfig
}

// DefaultGibsonConfig is the NEB Gibson Assembly protocol.
func DefaultGibsonConfig() GibsonConfig {
	return GibsonConfig{
		Homology:        assembly.Homology{MinOverlap: 15, MaxOverlap: 120},
		MasterMix:       Reagent{Name: "Gibson master mix", Concentration: "2X"},
		MasterMixVolume: 10,
		PartVolume:      2,
		Temperature:     50,
		Duration:        time.Hour,
		Transform:       DefaultTransformConfig(),
	}
}

func (c GibsonConfig) validate() error {
	if _, err := assembly.NewHomology(c.Homology.MinOverlap, c.Homology.MaxOverlap, c.Homology.MaxMismatch); err != nil {
		return invalidConfig("gibson", "%v", err)
	}
	if err := validReagent("gibson", "master mix", c.MasterMix, c.MasterMixVolume); err != nil {
		return err
	}
	if c.PartVolume <= 0 {
		return invalidConfig("gibson", "part volume must be positive, got %v", c.PartVolume)
	}
	if err := validIncubation("gibson", "incubation", c.Duration); err != nil {
		return err
	}
	return c.Transform.validate("gibson")
}

// Gibson is a Gibson Assembly of parts that share homology at their ends.
type Gibson struct {
	conf       GibsonConfig
	assemblies []*assembly.Resolved
}

// NewGibson creates a Gibson Assembly block for assemblies resolved by homology.
func NewGibson(conf GibsonConfig, assemblies ...*assembly.Resolved) (*Gibson, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}

	unique, err := checkAssemblies("gibson", conf.Homology.Name(), assemblies)
	if err != nil {
		return nil, err
	}
	return &Gibson{conf: conf, assemblies: unique}, nil
}

// NewGibsonFromDesign resolves every candidate of a design by homology and
// creates a Gibson Assembly block for them.
func NewGibsonFromDesign(d design.Design, conf GibsonConfig) (*Gibson, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}

	resolved, err := resolveDesign(d, conf.Homology)
	if err != nil {
		return nil, err
	}
	return NewGibson(conf, resolved...)
}

// Name returns "gibson".
func (g *Gibson) Name() string {
	return "gibson"
}

// Assemblies returns the block's resolved assemblies.
func (g *Gibson) Assemblies() []*assembly.Resolved {
	return append([]*assembly.Resolved(nil), g.assemblies...)
}

// Template is a mix of the parts with master mix, an incubation and a transformation.
func (g *Gibson) Template(prefix string) (*Template, error) {
	parts := prefix + "/parts"
	mixed := prefix + "/mix"
	assembled := prefix + "/assembled"

	setup, err := NewInstruction(prefix+" mix", []string{parts}, []string{mixed},
		mix(parts, mixed, g.assemblies, g.conf.PartVolume),
		WithRequirements(Requirement{Reagent: g.conf.MasterMix, Volume: g.conf.MasterMixVolume, Per: PerOutput}),
		WithNote("mix each assembly's parts with master mix"),
	)
	if err != nil {
		return nil, err
	}

	incubate, err := NewInstruction(prefix+" incubate", []string{mixed}, []string{assembled}, nil,
		WithTemperature(g.conf.Temperature),
		WithDuration(g.conf.Duration),
	)
	if err != nil {
		return nil, err
	}

	transformation, err := transform(prefix, assembled, g.conf.Transform)
	if err != nil {
		return nil, err
	}

	return &Template{
		Inputs:       []Input{{Name: parts, Records: partRecords(g.assemblies)}},
		Instructions: []*Instruction{setup, incubate, transformation},
	}, nil
}
