package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reagent is something consumed by an instruction, ex: a master mix or an enzyme.
type Reagent struct {
	// Name of the reagent, ex: "T4 DNA ligase"
	Name string

	// Concentration of the reagent, ex: "2X" or "400 U/µL"
	Concentration string
}

// String returns the name and, if set, the concentration in parentheses
func (r Reagent) String() string {
	if r.Concentration == "" {
		return r.Name
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.Concentration)
}

// Per is how often a Requirement's volume is consumed.
type Per int

const (
	// Once per instruction
	Once Per = iota

	// PerInput is once for each input sample
	PerInput

	// PerOutput is once for each output well. It's dispensed into the well
	PerOutput
)

// String returns the human readable frequency
func (p Per) String() string {
	switch p {
	case PerInput:
		return "per input"
	case PerOutput:
		return "per output"
	default:
		return "once"
	}
}

// Requirement is a volume of a reagent needed by an instruction.
type Requirement struct {
	// Reagent required
	Reagent Reagent

	// Volume in µL
	Volume float64

	// Per is how often the volume is needed
	Per Per
}

// String is the requirement in a protocol's summary, ex: "Gibson master mix (2X): 15 µL per output"
func (r Requirement) String() string {
	return fmt.Sprintf("%s: %s µL %s", r.Reagent, formatFloat(r.Volume), r.Per)
}

// Rule is how an instruction moves samples. It's run once per execution of the protocol.
type Rule func(s *Step) error

// Instruction is a single laboratory operation with named inputs and outputs.
// Instructions are immutable after they're created.
type Instruction struct {
	name         string
	inputs       []string
	outputs      []string
	rule         Rule
	requirements []Requirement
	temperature  float64
	duration     time.Duration
	note         string
}

// Option sets an optional field on an Instruction.
type Option func(*Instruction)

// WithRequirements adds reagent requirements to an instruction.
func WithRequirements(requirements ...Requirement) Option {
	return func(i *Instruction) {
		i.requirements = append(i.requirements, requirements...)
	}
}

// WithTemperature sets the temperature (°C) of an instruction.
func WithTemperature(celsius float64) Option {
	return func(i *Instruction) {
		i.temperature = celsius
	}
}

// WithDuration sets how long an instruction takes.
func WithDuration(d time.Duration) Option {
	return func(i *Instruction) {
		i.duration = d
	}
}

// WithNote adds a free text note to an instruction.
func WithNote(note string) Option {
	return func(i *Instruction) {
		i.note = note
	}
}

// NewInstruction creates an instruction. A nil rule passes every input sample
// through to every output unchanged (ex: an incubation).
func NewInstruction(name string, inputs, outputs []string, rule Rule, opts ...Option) (*Instruction, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("failed to create instruction: no name")
	}

	seen := make(map[string]bool)
	for _, o := range outputs {
		if o == "" {
			return nil, fmt.Errorf("failed to create instruction %s: empty output name", name)
		}
		if seen[o] {
			return nil, fmt.Errorf("failed to create instruction %s: duplicate output %s", name, o)
		}
		seen[o] = true
	}
	for _, in := range inputs {
		if in == "" {
			return nil, fmt.Errorf("failed to create instruction %s: empty input name", name)
		}
	}

	i := &Instruction{
		name:    name,
		inputs:  append([]string(nil), inputs...),
		outputs: append([]string(nil), outputs...),
		rule:    rule,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.requirements = append([]Requirement(nil), i.requirements...)

	for _, r := range i.requirements {
		if strings.TrimSpace(r.Reagent.Name) == "" {
			return nil, fmt.Errorf("failed to create instruction %s: requirement without a reagent", name)
		}
		if r.Volume <= 0 {
			return nil, fmt.Errorf("failed to create instruction %s: %s volume must be positive", name, r.Reagent)
		}
	}
	if i.duration < 0 {
		return nil, fmt.Errorf("failed to create instruction %s: negative duration", name)
	}

	return i, nil
}

// Name of the instruction.
func (i *Instruction) Name() string { return i.name }

// Inputs are the names of the sample sets the instruction uses.
func (i *Instruction) Inputs() []string { return append([]string(nil), i.inputs...) }

// Outputs are the names of the sample sets the instruction makes.
func (i *Instruction) Outputs() []string { return append([]string(nil), i.outputs...) }

// Requirements are the reagents the instruction consumes.
func (i *Instruction) Requirements() []Requirement {
	return append([]Requirement(nil), i.requirements...)
}

// Temperature in °C, zero if unset.
func (i *Instruction) Temperature() float64 { return i.temperature }

// Duration of the instruction, zero if unset.
func (i *Instruction) Duration() time.Duration { return i.duration }

// Note about the instruction.
func (i *Instruction) Note() string { return i.note }

// String is a one line summary, ex: "gibson-1 incubate at 50 °C for 1h0m0s"
func (i *Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(i.name)
	if i.temperature != 0 {
		sb.WriteString(" at " + strconv.FormatFloat(i.temperature, 'f', -1, 64) + " °C")
	}
	if i.duration > 0 {
		sb.WriteString(" for " + i.duration.String())
	}
	if i.note != "" {
		sb.WriteString(": " + i.note)
	}
	return sb.String()
}

// formatFloat formats a number without trailing zeros
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
