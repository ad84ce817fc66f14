package protocol

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jjtimmons/synbio/internal/assembly"
	"github.com/jjtimmons/synbio/internal/design"
	"github.com/jjtimmons/synbio/internal/seq"
)

// Block is a set of instructions for an assembly method that's added to a
// protocol as a unit, ex: Gibson Assembly.
type Block interface {
	// Name of the block, ex: "gibson"
	Name() string

	// Template creates the block's inputs and instructions. Every input and
	// output name starts with prefix so multiple blocks can be in one protocol
	Template(prefix string) (*Template, error)
}

// Input is a named set of records.
type Input struct {
	Name    string
	Records []*seq.Record
}

// Template is a block expanded into its inputs and instructions.
type Template struct {
	// Inputs are added to the protocol's inputs
	Inputs []Input

	// Instructions are appended to the protocol's instructions
	Instructions []*Instruction
}

// TransformConfig is the transformation of assembled DNA into competent cells.
type TransformConfig struct {
	// Cells are the competent cells
	Cells Reagent

	// CellVolume is the µL of cells per transformation
	CellVolume float64

	// Volume is the µL of assembled DNA added to the cells
	Volume float64

	// Media is the recovery media
	Media Reagent

	// MediaVolume is the µL of media per transformation
	MediaVolume float64

	// Temperature of the heat shock
	Temperature float64

	// Duration of the heat shock
	Duration time.Duration
}

// DefaultTransformConfig is a heat shock transformation into chemically competent E. coli.
func DefaultTransformConfig() TransformConfig {
	return TransformConfig{
		Cells:       Reagent{Name: "competent E. coli"},
		CellVolume:  50,
		Volume:      2,
		Media:       Reagent{Name: "SOC media"},
		MediaVolume: 250,
		Temperature: 42,
		Duration:    30 * time.Second,
	}
}

func (c TransformConfig) validate(block string) error {
	if err := validReagent(block, "cells", c.Cells, c.CellVolume); err != nil {
		return err
	}
	if err := validReagent(block, "media", c.Media, c.MediaVolume); err != nil {
		return err
	}
	if c.Volume <= 0 {
		return invalidConfig(block, "transformation volume must be positive, got %v", c.Volume)
	}
	if c.Duration < 0 {
		return invalidConfig(block, "negative transformation duration %v", c.Duration)
	}
	return nil
}

// validReagent checks that a reagent is named and has a positive volume
func validReagent(block, role string, r Reagent, volume float64) error {
	if strings.TrimSpace(r.Name) == "" {
		return invalidConfig(block, "no %s", role)
	}
	if volume <= 0 {
		return invalidConfig(block, "%s volume must be positive, got %v", role, volume)
	}
	return nil
}

// validIncubation checks an incubation's duration
func validIncubation(block, role string, d time.Duration) error {
	if d <= 0 {
		return invalidConfig(block, "%s duration must be positive, got %v", role, d)
	}
	return nil
}

// transform moves each assembly into competent cells
func transform(prefix, input string, conf TransformConfig) (*Instruction, error) {
	output := prefix + "/transformed"
	rule := func(s *Step) error {
		samples, err := s.Input(input)
		if err != nil {
			return err
		}

		var transformed []Sample
		for _, sample := range samples {
			moved, err := s.Move(sample, conf.Volume)
			if err != nil {
				return err
			}
			transformed = append(transformed, moved)
		}
		return s.SetOutput(output, transformed...)
	}

	return NewInstruction(prefix+" transform", []string{input}, []string{output}, rule,
		WithRequirements(
			Requirement{Reagent: conf.Cells, Volume: conf.CellVolume, Per: PerOutput},
			Requirement{Reagent: conf.Media, Volume: conf.MediaVolume, Per: PerOutput},
		),
		WithTemperature(conf.Temperature),
		WithDuration(conf.Duration),
		WithNote("heat shock, recover in media and plate on selective agar"),
	)
}

// mix places a well per assembly and transfers each of the assembly's parts into it
func mix(input, output string, assemblies []*assembly.Resolved, partVolume float64) Rule {
	return func(s *Step) error {
		parts, err := s.Input(input)
		if err != nil {
			return err
		}

		byID := make(map[string]Sample)
		for _, p := range parts {
			if _, ok := byID[p.Record.ContentID()]; !ok {
				byID[p.Record.ContentID()] = p
			}
		}

		var mixes []Sample
		for _, a := range assemblies {
			well := s.Place(a.Product)
			for _, id := range partIDs(a) {
				src, ok := byID[id]
				if !ok {
					return fmt.Errorf("no sample of part %s in %s", id, input)
				}
				if err := s.Transfer(src, well, partVolume); err != nil {
					return err
				}
			}
			mixes = append(mixes, well)
		}
		return s.SetOutput(output, mixes...)
	}
}

// partIDs returns the distinct content ids of an assembly's part records
func partIDs(a *assembly.Resolved) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, p := range a.Parts {
		id := p.Part.Record.ContentID()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// partRecords returns the distinct part records across assemblies
func partRecords(assemblies []*assembly.Resolved) []*seq.Record {
	var records []*seq.Record
	seen := make(map[string]bool)
	for _, a := range assemblies {
		for _, p := range a.Parts {
			id := p.Part.Record.ContentID()
			if !seen[id] {
				seen[id] = true
				records = append(records, p.Part.Record)
			}
		}
	}
	return records
}

// fragmentSet is a key for the set of fragments an assembly consumes
func fragmentSet(a *assembly.Resolved) string {
	var fragments []string
	for _, p := range a.Parts {
		s := strings.ToUpper(p.Record.Seq)
		if rc := seq.RevComp(s); rc < s {
			s = rc
		}
		fragments = append(fragments, p.Part.Record.ContentID()+":"+s)
	}
	sort.Strings(fragments)
	return strings.Join(fragments, ",")
}

// checkAssemblies validates and deduplicates assemblies for a block
func checkAssemblies(block, strategy string, assemblies []*assembly.Resolved) ([]*assembly.Resolved, error) {
	if len(assemblies) == 0 {
		return nil, invalidConfig(block, "no assemblies")
	}

	var unique []*assembly.Resolved
	seen := make(map[string]bool)
	for _, a := range assemblies {
		if a == nil {
			return nil, invalidConfig(block, "nil assembly")
		}
		if a.Strategy != strategy {
			return nil, invalidConfig(block, "assembly %s was resolved by %s, not %s", a.Product.ID, a.Strategy, strategy)
		}

		key := fragmentSet(a)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}
	return unique, nil
}

// resolveDesign resolves every candidate of a design with one resolver
func resolveDesign(d design.Design, s assembly.Strategy) ([]*assembly.Resolved, error) {
	if d == nil {
		return nil, fmt.Errorf("failed to resolve design: nil design")
	}

	r := assembly.NewResolver()
	var resolved []*assembly.Resolved
	for c := range d.Expand() {
		a, err := r.Resolve(c, s, false)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, a)
	}

	if len(resolved) == 0 {
		return nil, fmt.Errorf("failed to resolve design: no candidates")
	}
	return resolved, nil
}
