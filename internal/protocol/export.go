package protocol

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jjtimmons/synbio/internal/picklist"
	"github.com/jjtimmons/synbio/internal/seq"
)

// exportable checks that the protocol has been run and marks it as exported
func (p *Protocol) exportable() error {
	if p.result == nil || (p.state != Executed && p.state != Exported) {
		return ErrProtocolNotRun
	}
	p.state = Exported
	return nil
}

// ToFasta writes the products of the protocol's last instruction as FASTA.
func (p *Protocol) ToFasta(w io.Writer) error {
	if err := p.exportable(); err != nil {
		return err
	}
	return seq.WriteFasta(w, p.Products()...)
}

// ToGenbank writes the products of the protocol's last instruction as Genbank.
func (p *Protocol) ToGenbank(w io.Writer) error {
	if err := p.exportable(); err != nil {
		return err
	}
	return seq.WriteGenbank(w, p.Products()...)
}

// ToCSV writes the contents of every well on every plate.
func (p *Protocol) ToCSV(w io.Writer) error {
	if err := p.exportable(); err != nil {
		return err
	}

	c := csv.NewWriter(w)
	if err := c.Write([]string{"plate", "well", "contents", "volume (uL)"}); err != nil {
		return err
	}
	for _, well := range p.result.layout.Wells() {
		if err := c.Write([]string{well.Plate, well.Well, well.Name, formatFloat(well.Volume)}); err != nil {
			return err
		}
	}

	c.Flush()
	return c.Error()
}

// ToTxt writes a human readable summary: the numbered instructions and the
// reagents needed across the protocol.
func (p *Protocol) ToTxt(w io.Writer) error {
	if err := p.exportable(); err != nil {
		return err
	}

	var sb strings.Builder
	if p.name != "" {
		fmt.Fprintf(&sb, "%s\n\n", p.name)
	}

	sb.WriteString("Instructions:\n")
	for i, ins := range p.instructions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, ins)
		for _, r := range ins.requirements {
			fmt.Fprintf(&sb, "   - %s\n", r)
		}
	}

	sb.WriteString("\nReagents:\n")
	for _, line := range p.result.ledger.Lines() {
		fmt.Fprintf(&sb, "- %s: %s µL (%s %s)\n", line.Reagent, formatFloat(line.Volume), line.Plate, line.Well)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// ToPicklists writes a pick-list of every transfer for a liquid handler platform: tecan, hamilton or csv.
func (p *Protocol) ToPicklists(w io.Writer, platform string) error {
	if err := p.exportable(); err != nil {
		return err
	}

	var rows []picklist.Row
	for _, t := range p.result.transfers {
		rows = append(rows, picklist.Row{
			SrcPlate: t.SrcPlate,
			SrcWell:  t.SrcWell,
			DstPlate: t.DstPlate,
			DstWell:  t.DstWell,
			Reagent:  t.Reagent,
			Volume:   t.Volume,
		})
	}
	return picklist.Write(w, platform, rows)
}
