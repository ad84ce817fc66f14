package protocol

import (
	"fmt"

	"github.com/jjtimmons/synbio/internal/seq"
)

// Transfer is liquid moved from one well to another.
type Transfer struct {
	// Step is the 1-based position of the instruction that made the transfer
	Step int

	// Src is the well the liquid is drawn from
	SrcPlate, SrcWell string

	// Dst is the well the liquid is dispensed into
	DstPlate, DstWell string

	// Reagent is the name of the sample or reagent transferred
	Reagent string

	// Volume in µL
	Volume float64
}

// execution is the state built up while running a protocol's instructions
type execution struct {
	layout    *Layout
	ledger    *Ledger
	transfers []Transfer

	// samples are the sample sets available to instructions, by name
	samples map[string][]Sample

	// outputs are the sample sets made by instructions, by name
	outputs map[string][]Sample

	// last are the names of the last instruction's outputs
	last []string

	// stocks are the input wells, by plate/well. They hold what's drawn from them
	stocks map[string]bool
}

// newExecution creates an empty execution
func newExecution() *execution {
	return &execution{
		layout:  newLayout(),
		ledger:  newLedger(),
		samples: make(map[string][]Sample),
		outputs: make(map[string][]Sample),
		stocks:  make(map[string]bool),
	}
}

// stock places a protocol input on the inputs plates
func (e *execution) stock(name string, record *seq.Record) {
	c := e.layout.allocate("inputs", record.ContentID())
	e.stocks[c.Plate+"/"+c.Well] = true
	e.samples[name] = append(e.samples[name], Sample{Record: record, Plate: c.Plate, Well: c.Well})
}

// Step is an instruction as it's being run. Rules use it to read their
// inputs, place samples, transfer liquid and set their outputs.
type Step struct {
	// index of the instruction, 1-based
	index       int
	instruction *Instruction
	exec        *execution
	inputs      map[string][]Sample
	outputs     map[string][]Sample
}

// Instruction returns the instruction being run.
func (s *Step) Instruction() *Instruction {
	return s.instruction
}

// Input returns the samples of one of the instruction's inputs.
func (s *Step) Input(name string) ([]Sample, error) {
	samples, ok := s.inputs[name]
	if !ok {
		return nil, fmt.Errorf("%s is not an input of %s", name, s.instruction.name)
	}
	return append([]Sample(nil), samples...), nil
}

// Place puts a record into the next empty well of the instruction's plate.
func (s *Step) Place(record *seq.Record) Sample {
	c := s.exec.layout.allocate(fmt.Sprintf("step%d", s.index), record.ContentID())
	return Sample{Record: record, Plate: c.Plate, Well: c.Well}
}

// Move transfers a volume of a sample into a new well on the instruction's plate.
func (s *Step) Move(src Sample, volume float64) (Sample, error) {
	dst := s.Place(src.Record)
	if err := s.Transfer(src, dst, volume); err != nil {
		return Sample{}, err
	}
	return dst, nil
}

// Transfer moves a volume of one sample into the well of another.
func (s *Step) Transfer(src, dst Sample, volume float64) error {
	if src.Record == nil {
		return fmt.Errorf("failed to transfer from %s %s: no sample", src.Plate, src.Well)
	}
	return s.transfer(src.Plate, src.Well, dst, src.Record.ContentID(), volume)
}

// transfer records liquid moving between wells
func (s *Step) transfer(srcPlate, srcWell string, dst Sample, reagent string, volume float64) error {
	if volume <= 0 {
		return fmt.Errorf("failed to transfer %s: volume must be positive, got %v", reagent, volume)
	}

	into := s.exec.layout.well(dst.Plate, dst.Well)
	if into == nil {
		return fmt.Errorf("failed to transfer %s: no well %s on %s", reagent, dst.Well, dst.Plate)
	}
	into.Volume += volume
	if s.exec.stocks[srcPlate+"/"+srcWell] {
		if from := s.exec.layout.well(srcPlate, srcWell); from != nil {
			from.Volume += volume
		}
	}

	s.exec.transfers = append(s.exec.transfers, Transfer{
		Step:     s.index,
		SrcPlate: srcPlate,
		SrcWell:  srcWell,
		DstPlate: dst.Plate,
		DstWell:  dst.Well,
		Reagent:  reagent,
		Volume:   volume,
	})
	return nil
}

// SetOutput sets the samples of one of the instruction's outputs.
func (s *Step) SetOutput(name string, samples ...Sample) error {
	for _, o := range s.instruction.outputs {
		if o == name {
			s.outputs[name] = append([]Sample(nil), samples...)
			return nil
		}
	}
	return fmt.Errorf("%s is not an output of %s", name, s.instruction.name)
}

// passthrough is the rule of an instruction without one: every output
// is every input sample
func passthrough(s *Step) error {
	var all []Sample
	for _, in := range s.instruction.inputs {
		samples, err := s.Input(in)
		if err != nil {
			return err
		}
		all = append(all, samples...)
	}

	for _, o := range s.instruction.outputs {
		if err := s.SetOutput(o, all...); err != nil {
			return err
		}
	}
	return nil
}

// execute runs an instruction's rule and then dispenses its requirements
func (e *execution) execute(index int, ins *Instruction) error {
	step := &Step{
		index:       index,
		instruction: ins,
		exec:        e,
		inputs:      make(map[string][]Sample),
		outputs:     make(map[string][]Sample),
	}

	inputCount := 0
	for _, in := range ins.inputs {
		step.inputs[in] = e.samples[in]
		inputCount += len(e.samples[in])
	}

	rule := ins.rule
	if rule == nil {
		rule = passthrough
	}
	if err := rule(step); err != nil {
		return err
	}

	// every distinct well across the outputs
	var wells []Sample
	seen := make(map[string]bool)
	for _, o := range ins.outputs {
		for _, sample := range step.outputs[o] {
			key := sample.Plate + "/" + sample.Well
			if !seen[key] {
				seen[key] = true
				wells = append(wells, sample)
			}
		}
	}

	for _, r := range ins.requirements {
		switch r.Per {
		case Once:
			e.reserve(r.Reagent, r.Volume)
		case PerInput:
			if inputCount > 0 {
				e.reserve(r.Reagent, r.Volume*float64(inputCount))
			}
		case PerOutput:
			for _, w := range wells {
				line := e.reserve(r.Reagent, r.Volume)
				if err := step.transfer(line.Plate, line.Well, w, r.Reagent.String(), r.Volume); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unknown requirement frequency %d for %s", r.Per, r.Reagent)
		}
	}

	for _, o := range ins.outputs {
		e.samples[o] = step.outputs[o]
		e.outputs[o] = step.outputs[o]
	}
	e.last = ins.outputs
	return nil
}

// reserve adds a volume of a reagent to the ledger and returns its line. A reagent's
// first use gets a reservoir well on the reagents plate
func (e *execution) reserve(r Reagent, volume float64) Line {
	i, created := e.ledger.add(r, volume)
	line := &e.ledger.lines[i]
	if created {
		c := e.layout.allocate("reagents", r.String())
		line.Plate, line.Well = c.Plate, c.Well
	}

	if reservoir := e.layout.well(line.Plate, line.Well); reservoir != nil {
		reservoir.Volume += volume
	}
	return *line
}
