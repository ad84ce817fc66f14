package protocol

import (
	"fmt"
	"time"

	"github.com/jjtimmons/synbio/internal/assembly"
	"github.com/jjtimmons/synbio/internal/design"
)

// LigationConfig is how parts are digested and checked for compatible overhangs.
type LigationConfig struct {
	// Enzymes are the names of the restriction enzymes
	Enzymes []string

	// Include keeps only products with a feature matching one of these keywords
	Include []string

	// MinCount is the fewest parts in a product. Zero means every part
	MinCount int
}

// strategy creates the ligation strategy
func (c LigationConfig) strategy(block string) (assembly.Ligation, error) {
	l, err := assembly.NewLigation(c.Enzymes, c.Include, c.MinCount)
	if err != nil {
		return assembly.Ligation{}, invalidConfig(block, "%v", err)
	}
	return l, nil
}

// enzymeRequirements are the requirements for each of a ligation's enzymes
func enzymeRequirements(l assembly.Ligation, concentration string, volume float64) []Requirement {
	var reqs []Requirement
	for _, name := range l.EnzymeNames() {
		reqs = append(reqs, Requirement{
			Reagent: Reagent{Name: name, Concentration: concentration},
			Volume:  volume,
			Per:     PerOutput,
		})
	}
	return reqs
}

// GoldenGateConfig is the configuration of a one-pot Golden Gate Assembly.
type GoldenGateConfig struct {
	// Ligation is the digestion of the parts
	Ligation LigationConfig

	// EnzymeConcentration is the concentration of each restriction enzyme
	EnzymeConcentration string

	// EnzymeVolume is the µL of each enzyme per assembly
	EnzymeVolume float64

	// Ligase is the DNA ligase
	Ligase Reagent

	// LigaseVolume is the µL of ligase per assembly
	LigaseVolume float64

	// Buffer is the reaction buffer
	Buffer Reagent

	// BufferVolume is the µL of buffer per assembly
	BufferVolume float64

	// PartVolume is the µL of each part per assembly
	PartVolume float64

	// Cycles of digestion and ligation
	Cycles int

	// DigestTemperature is the temperature of the digestion half of a cycle
	DigestTemperature float64

	// LigationTemperature is the temperature of the ligation half of a cycle
	LigationTemperature float64

	// CycleDuration is the duration of each half of a cycle
	CycleDuration time.Duration

	// InactivationTemperature is the temperature of the heat inactivation
	InactivationTemperature float64

	// InactivationDuration is the duration of the heat inactivation
	InactivationDuration time.Duration

	// Transform is the transformation after assembly
	Transform TransformConfig
}

// DefaultGoldenGateConfig is a BsaI and BpiI Golden Gate Assembly.
func DefaultGoldenGateConfig() GoldenGateConfig {
	return GoldenGateConfig{
		Ligation:                LigationConfig{Enzymes: []string{"BsaI", "BpiI"}},
		EnzymeConcentration:     "20 U/µL",
		EnzymeVolume:            1,
		Ligase:                  Reagent{Name: "T4 DNA ligase", Concentration: "400 U/µL"},
		LigaseVolume:            0.5,
		Buffer:                  Reagent{Name: "T4 DNA ligase buffer", Concentration: "10X"},
		BufferVolume:            2,
		PartVolume:              1,
		Cycles:                  30,
		DigestTemperature:       37,
		LigationTemperature:     16,
		CycleDuration:           5 * time.Minute,
		InactivationTemperature: 80,
		InactivationDuration:    20 * time.Minute,
		Transform:               DefaultTransformConfig(),
	}
}

func (c GoldenGateConfig) validate() (assembly.Ligation, error) {
	l, err := c.Ligation.strategy("golden gate")
	if err != nil {
		return assembly.Ligation{}, err
	}
	if c.EnzymeVolume <= 0 {
		return assembly.Ligation{}, invalidConfig("golden gate", "enzyme volume must be positive, got %v", c.EnzymeVolume)
	}
	if err := validReagent("golden gate", "ligase", c.Ligase, c.LigaseVolume); err != nil {
		return assembly.Ligation{}, err
	}
	if err := validReagent("golden gate", "buffer", c.Buffer, c.BufferVolume); err != nil {
		return assembly.Ligation{}, err
	}
	if c.PartVolume <= 0 {
		return assembly.Ligation{}, invalidConfig("golden gate", "part volume must be positive, got %v", c.PartVolume)
	}
	if c.Cycles < 1 {
		return assembly.Ligation{}, invalidConfig("golden gate", "need at least one cycle, got %d", c.Cycles)
	}
	if err := validIncubation("golden gate", "cycle", c.CycleDuration); err != nil {
		return assembly.Ligation{}, err
	}
	if err := validIncubation("golden gate", "inactivation", c.InactivationDuration); err != nil {
		return assembly.Ligation{}, err
	}
	return l, c.Transform.validate("golden gate")
}

// GoldenGate is a one-pot digestion and ligation of parts with Type IIS enzymes.
type GoldenGate struct {
	conf       GoldenGateConfig
	ligation   assembly.Ligation
	assemblies []*assembly.Resolved
}

// NewGoldenGate creates a Golden Gate Assembly block for assemblies resolved by ligation.
func NewGoldenGate(conf GoldenGateConfig, assemblies ...*assembly.Resolved) (*GoldenGate, error) {
	l, err := conf.validate()
	if err != nil {
		return nil, err
	}

	unique, err := checkAssemblies("golden gate", l.Name(), assemblies)
	if err != nil {
		return nil, err
	}
	return &GoldenGate{conf: conf, ligation: l, assemblies: unique}, nil
}

// NewGoldenGateFromDesign resolves every candidate of a design by ligation and
// creates a Golden Gate Assembly block for them.
func NewGoldenGateFromDesign(d design.Design, conf GoldenGateConfig) (*GoldenGate, error) {
	l, err := conf.validate()
	if err != nil {
		return nil, err
	}

	resolved, err := resolveDesign(d, l)
	if err != nil {
		return nil, err
	}
	return NewGoldenGate(conf, resolved...)
}

// Name returns "goldengate".
func (g *GoldenGate) Name() string {
	return "goldengate"
}

// Assemblies returns the block's resolved assemblies.
func (g *GoldenGate) Assemblies() []*assembly.Resolved {
	return append([]*assembly.Resolved(nil), g.assemblies...)
}

// Template is a one-pot mix, thermocycling, heat inactivation and a transformation.
func (g *GoldenGate) Template(prefix string) (*Template, error) {
	parts := prefix + "/parts"
	mixed := prefix + "/mix"
	cycled := prefix + "/cycled"
	inactivated := prefix + "/inactivated"

	reqs := enzymeRequirements(g.ligation, g.conf.EnzymeConcentration, g.conf.EnzymeVolume)
	reqs = append(reqs,
		Requirement{Reagent: g.conf.Ligase, Volume: g.conf.LigaseVolume, Per: PerOutput},
		Requirement{Reagent: g.conf.Buffer, Volume: g.conf.BufferVolume, Per: PerOutput},
	)

	setup, err := NewInstruction(prefix+" mix", []string{parts}, []string{mixed},
		mix(parts, mixed, g.assemblies, g.conf.PartVolume),
		WithRequirements(reqs...),
		WithNote("mix each assembly's parts with enzymes, ligase and buffer"),
	)
	if err != nil {
		return nil, err
	}

	cycle, err := NewInstruction(prefix+" thermocycle", []string{mixed}, []string{cycled}, nil,
		WithTemperature(g.conf.DigestTemperature),
		WithDuration(time.Duration(2*g.conf.Cycles)*g.conf.CycleDuration),
		WithNote(fmt.Sprintf("%d cycles of %s °C for %s then %s °C for %s",
			g.conf.Cycles,
			formatFloat(g.conf.DigestTemperature), g.conf.CycleDuration,
			formatFloat(g.conf.LigationTemperature), g.conf.CycleDuration)),
	)
	if err != nil {
		return nil, err
	}

	inactivate, err := NewInstruction(prefix+" heat inactivation", []string{cycled}, []string{inactivated}, nil,
		WithTemperature(g.conf.InactivationTemperature),
		WithDuration(g.conf.InactivationDuration),
	)
	if err != nil {
		return nil, err
	}

	transformation, err := transform(prefix, inactivated, g.conf.Transform)
	if err != nil {
		return nil, err
	}

	return &Template{
		Inputs:       []Input{{Name: parts, Records: partRecords(g.assemblies)}},
		Instructions: []*Instruction{setup, cycle, inactivate, transformation},
	}, nil
}
