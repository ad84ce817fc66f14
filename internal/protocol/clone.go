package protocol

import (
	"time"

	"github.com/jjtimmons/synbio/internal/assembly"
	"github.com/jjtimmons/synbio/internal/design"
)

// CloneConfig is the configuration of a restriction digest followed by a ligation.
type CloneConfig struct {
	// Ligation is the digestion of the parts
	Ligation LigationConfig

	// EnzymeConcentration is the concentration of each restriction enzyme
	EnzymeConcentration string

	// EnzymeVolume is the µL of each enzyme per assembly
	EnzymeVolume float64

	// DigestBuffer is the restriction digest buffer
	DigestBuffer Reagent

	// DigestBufferVolume is the µL of digest buffer per assembly
	DigestBufferVolume float64

	// PartVolume is the µL of each part per assembly
	PartVolume float64

	// DigestTemperature is the temperature of the digestion
	DigestTemperature float64

	// DigestDuration is the duration of the digestion
	DigestDuration time.Duration

	// Ligase is the DNA ligase
	Ligase Reagent

	// LigaseVolume is the µL of ligase per assembly
	LigaseVolume float64

	// LigaseBuffer is the ligation buffer
	LigaseBuffer Reagent

	// LigaseBufferVolume is the µL of ligation buffer per assembly
	LigaseBufferVolume float64

	// LigationTemperature is the temperature of the ligation
	LigationTemperature float64

	// LigationDuration is the duration of the ligation
	LigationDuration time.Duration

	// InactivationTemperature is the temperature of the heat inactivation
	InactivationTemperature float64

	// InactivationDuration is the duration of the heat inactivation
	InactivationDuration time.Duration

	// Transform is the transformation after assembly
	Transform TransformConfig
}

// DefaultCloneConfig is a restriction digest and T4 ligation. It has no
// enzymes: they're specific to the parts.
func DefaultCloneConfig() CloneConfig {
	return CloneConfig{
		EnzymeConcentration:     "20 U/µL",
		EnzymeVolume:            1,
		DigestBuffer:            Reagent{Name: "CutSmart buffer", Concentration: "10X"},
		DigestBufferVolume:      5,
		PartVolume:              2,
		DigestTemperature:       37,
		DigestDuration:          time.Hour,
		Ligase:                  Reagent{Name: "T4 DNA ligase", Concentration: "400 U/µL"},
		LigaseVolume:            1,
		LigaseBuffer:            Reagent{Name: "T4 DNA ligase buffer", Concentration: "10X"},
		LigaseBufferVolume:      2,
		LigationTemperature:     16,
		LigationDuration:        time.Hour,
		InactivationTemperature: 65,
		InactivationDuration:    10 * time.Minute,
		Transform:               DefaultTransformConfig(),
	}
}

func (c CloneConfig) validate() (assembly.Ligation, error) {
	l, err := c.Ligation.strategy("clone")
	if err != nil {
		return assembly.Ligation{}, err
	}
	if c.EnzymeVolume <= 0 {
		return assembly.Ligation{}, invalidConfig("clone", "enzyme volume must be positive, got %v", c.EnzymeVolume)
	}
	if err := validReagent("clone", "digest buffer", c.DigestBuffer, c.DigestBufferVolume); err != nil {
		return assembly.Ligation{}, err
	}
	if c.PartVolume <= 0 {
		return assembly.Ligation{}, invalidConfig("clone", "part volume must be positive, got %v", c.PartVolume)
	}
	if err := validReagent("clone", "ligase", c.Ligase, c.LigaseVolume); err != nil {
		return assembly.Ligation{}, err
	}
	if err := validReagent("clone", "ligase buffer", c.LigaseBuffer, c.LigaseBufferVolume); err != nil {
		return assembly.Ligation{}, err
	}
	if err := validIncubation("clone", "digest", c.DigestDuration); err != nil {
		return assembly.Ligation{}, err
	}
	if err := validIncubation("clone", "ligation", c.LigationDuration); err != nil {
		return assembly.Ligation{}, err
	}
	if err := validIncubation("clone", "inactivation", c.InactivationDuration); err != nil {
		return assembly.Ligation{}, err
	}
	return l, c.Transform.validate("clone")
}

// Clone is a restriction digest of parts followed by their ligation.
type Clone struct {
	conf       CloneConfig
	ligation   assembly.Ligation
	assemblies []*assembly.Resolved
}

// NewClone creates a restriction cloning block for assemblies resolved by ligation.
func NewClone(conf CloneConfig, assemblies ...*assembly.Resolved) (*Clone, error) {
	l, err := conf.validate()
	if err != nil {
		return nil, err
	}

	unique, err := checkAssemblies("clone", l.Name(), assemblies)
	if err != nil {
		return nil, err
	}
	return &Clone{conf: conf, ligation: l, assemblies: unique}, nil
}

// NewCloneFromDesign resolves every candidate of a design by ligation and
// creates a restriction cloning block for them.
func NewCloneFromDesign(d design.Design, conf CloneConfig) (*Clone, error) {
	l, err := conf.validate()
	if err != nil {
		return nil, err
	}

	resolved, err := resolveDesign(d, l)
	if err != nil {
		return nil, err
	}
	return NewClone(conf, resolved...)
}

// Name returns "clone".
func (c *Clone) Name() string {
	return "clone"
}

// Assemblies returns the block's resolved assemblies.
func (c *Clone) Assemblies() []*assembly.Resolved {
	return append([]*assembly.Resolved(nil), c.assemblies...)
}

// Template is a digest, its incubation, a ligation, its incubation, heat
// inactivation and a transformation.
func (c *Clone) Template(prefix string) (*Template, error) {
	parts := prefix + "/parts"
	digestMix := prefix + "/digest"
	digested := prefix + "/digested"
	ligationMix := prefix + "/ligation"
	ligated := prefix + "/ligated"
	inactivated := prefix + "/inactivated"

	reqs := enzymeRequirements(c.ligation, c.conf.EnzymeConcentration, c.conf.EnzymeVolume)
	reqs = append(reqs, Requirement{Reagent: c.conf.DigestBuffer, Volume: c.conf.DigestBufferVolume, Per: PerOutput})

	digest, err := NewInstruction(prefix+" digest", []string{parts}, []string{digestMix},
		mix(parts, digestMix, c.assemblies, c.conf.PartVolume),
		WithRequirements(reqs...),
		WithNote("mix each assembly's parts with enzymes and buffer"),
	)
	if err != nil {
		return nil, err
	}

	incubateDigest, err := NewInstruction(prefix+" incubate digest", []string{digestMix}, []string{digested}, nil,
		WithTemperature(c.conf.DigestTemperature),
		WithDuration(c.conf.DigestDuration),
	)
	if err != nil {
		return nil, err
	}

	ligate, err := NewInstruction(prefix+" ligation mix", []string{digested}, []string{ligationMix}, nil,
		WithRequirements(
			Requirement{Reagent: c.conf.Ligase, Volume: c.conf.LigaseVolume, Per: PerOutput},
			Requirement{Reagent: c.conf.LigaseBuffer, Volume: c.conf.LigaseBufferVolume, Per: PerOutput},
		),
		WithNote("add ligase and buffer to each digest"),
	)
	if err != nil {
		return nil, err
	}

	incubateLigation, err := NewInstruction(prefix+" incubate ligation", []string{ligationMix}, []string{ligated}, nil,
		WithTemperature(c.conf.LigationTemperature),
		WithDuration(c.conf.LigationDuration),
	)
	if err != nil {
		return nil, err
	}

	inactivate, err := NewInstruction(prefix+" heat inactivation", []string{ligated}, []string{inactivated}, nil,
		WithTemperature(c.conf.InactivationTemperature),
		WithDuration(c.conf.InactivationDuration),
	)
	if err != nil {
		return nil, err
	}

	transformation, err := transform(prefix, inactivated, c.conf.Transform)
	if err != nil {
		return nil, err
	}

	return &Template{
		Inputs:       []Input{{Name: parts, Records: partRecords(c.assemblies)}},
		Instructions: []*Instruction{digest, incubateDigest, ligate, incubateLigation, inactivate, transformation},
	}, nil
}
