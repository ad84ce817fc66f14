// Package protocol is for building and running laboratory protocols: an
// ordered list of instructions that move samples between plates and consume
// reagents, plus exports of the results.
package protocol

import (
	"fmt"

	"github.com/jjtimmons/synbio/internal/seq"
)

// State of a protocol.
type State int

const (
	// Empty protocols have no instructions
	Empty State = iota

	// Building protocols have instructions and haven't been run since they changed
	Building

	// Executed protocols have been run
	Executed

	// Exported protocols have been run and exported
	Exported
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Executed:
		return "executed"
	case Exported:
		return "exported"
	default:
		return "empty"
	}
}

// Protocol is an ordered list of instructions and the named inputs they start from.
//
// A Protocol is not safe for concurrent use.
type Protocol struct {
	name         string
	inputs       map[string][]*seq.Record
	inputOrder   []string
	instructions []*Instruction
	blocks       int
	state        State

	// result is the execution from the last successful run
	result *execution
}

// New creates an empty protocol.
func New(name string) *Protocol {
	return &Protocol{
		name:   name,
		inputs: make(map[string][]*seq.Record),
	}
}

// Name of the protocol.
func (p *Protocol) Name() string {
	return p.name
}

// State of the protocol.
func (p *Protocol) State() State {
	return p.state
}

// SetInput sets a named set of records that instructions can use as an input.
func (p *Protocol) SetInput(name string, records ...*seq.Record) error {
	if err := validInput(name, records); err != nil {
		return fmt.Errorf("failed to set protocol input: %w", err)
	}

	if _, exists := p.inputs[name]; !exists {
		p.inputOrder = append(p.inputOrder, name)
	}
	p.inputs[name] = append([]*seq.Record(nil), records...)
	p.changed()
	return nil
}

// validInput checks that an input is named and has no nil records
func validInput(name string, records []*seq.Record) error {
	if name == "" {
		return fmt.Errorf("input has no name")
	}
	for _, r := range records {
		if r == nil {
			return fmt.Errorf("input %s has a nil record", name)
		}
	}
	return nil
}

// Add expands a block into its instructions and appends them to the protocol.
// Inputs the block brings are added as protocol inputs.
func (p *Protocol) Add(b Block) error {
	if b == nil {
		return fmt.Errorf("failed to add block: nil block")
	}

	prefix := fmt.Sprintf("%s-%d", b.Name(), p.blocks+1)
	t, err := b.Template(prefix)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", prefix, err)
	}

	names := make(map[string]bool)
	for _, in := range t.Inputs {
		if err := validInput(in.Name, in.Records); err != nil {
			return fmt.Errorf("failed to add %s: %w", prefix, err)
		}
		if _, exists := p.inputs[in.Name]; exists || names[in.Name] {
			return fmt.Errorf("failed to add %s: duplicate input named %s", prefix, in.Name)
		}
		names[in.Name] = true
	}
	for _, ins := range t.Instructions {
		if ins == nil {
			return fmt.Errorf("failed to add %s: nil instruction", prefix)
		}
	}

	for _, in := range t.Inputs {
		p.inputOrder = append(p.inputOrder, in.Name)
		p.inputs[in.Name] = append([]*seq.Record(nil), in.Records...)
	}
	p.instructions = append(p.instructions, t.Instructions...)
	p.blocks++
	p.changed()
	return nil
}

// AddInstruction appends a single instruction to the protocol.
func (p *Protocol) AddInstruction(i *Instruction) error {
	if i == nil {
		return fmt.Errorf("failed to add instruction: nil instruction")
	}

	p.instructions = append(p.instructions, i)
	p.changed()
	return nil
}

// changed moves the protocol back to building and clears the results of the last run
func (p *Protocol) changed() {
	p.result = nil
	if len(p.instructions) == 0 {
		p.state = Empty
		return
	}
	p.state = Building
}

// Instructions returns the protocol's instructions in order.
func (p *Protocol) Instructions() []*Instruction {
	return append([]*Instruction(nil), p.instructions...)
}

// Run executes the instructions in order. Every instruction's inputs are checked
// before any are run and the results of the run are only kept if every
// instruction succeeds.
func (p *Protocol) Run() error {
	if len(p.instructions) == 0 {
		return ErrEmptyProtocol
	}
	if err := p.preflight(); err != nil {
		return err
	}

	e := newExecution()
	for _, name := range p.inputOrder {
		for _, r := range p.inputs[name] {
			e.stock(name, r)
		}
	}

	for i, ins := range p.instructions {
		if err := e.execute(i+1, ins); err != nil {
			return fmt.Errorf("failed to run step %d (%s): %w", i+1, ins.name, err)
		}
	}

	p.result = e
	p.state = Executed
	return nil
}

// preflight checks that every instruction's inputs are either protocol inputs
// or the outputs of an earlier instruction
func (p *Protocol) preflight() error {
	available := make(map[string]bool)
	for name := range p.inputs {
		available[name] = true
	}

	var missing []MissingInput
	for i, ins := range p.instructions {
		for _, in := range ins.inputs {
			if !available[in] {
				missing = append(missing, MissingInput{Instruction: ins.name, Step: i + 1, Input: in})
			}
		}
		for _, o := range ins.outputs {
			available[o] = true
		}
	}

	if len(missing) > 0 {
		return &UnsatisfiedInputError{Missing: missing}
	}
	return nil
}

// Ledger returns the reagents needed by the last run. It's empty if the
// protocol hasn't been run.
func (p *Protocol) Ledger() []Line {
	if p.result == nil {
		return nil
	}
	return p.result.ledger.Lines()
}

// Output returns the samples of an instruction output from the last run.
func (p *Protocol) Output(name string) []Sample {
	if p.result == nil {
		return nil
	}
	return append([]Sample(nil), p.result.outputs[name]...)
}

// Transfers returns every transfer made in the last run.
func (p *Protocol) Transfers() []Transfer {
	if p.result == nil {
		return nil
	}
	return append([]Transfer(nil), p.result.transfers...)
}

// Layout returns the wells filled in the last run.
func (p *Protocol) Layout() []Contents {
	if p.result == nil {
		return nil
	}
	return p.result.layout.Wells()
}

// Products returns the records in the outputs of the last instruction, without duplicates.
func (p *Protocol) Products() []*seq.Record {
	if p.result == nil {
		return nil
	}

	var products []*seq.Record
	seen := make(map[*seq.Record]bool)
	for _, o := range p.result.last {
		for _, s := range p.result.outputs[o] {
			if s.Record != nil && !seen[s.Record] {
				seen[s.Record] = true
				products = append(products, s.Record)
			}
		}
	}
	return products
}
