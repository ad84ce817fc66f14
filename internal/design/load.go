package design

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jjtimmons/synbio/internal/seq"
)

// File is a design as it's declared in a YAML design file.
//
//	type: bins
//	bins:
//	  - [J23100_AB.gb, J23106_AB.gb]
//	  - [B0032m_BC.gb]
//	  - file: DVK_AE.gb
//	    reverse: false
type File struct {
	// Type is one of plasmid, combinatorial, bins or library
	Type string `yaml:"type"`

	// Linear if the products aren't circularized
	Linear bool `yaml:"linear,omitempty"`

	// Parts of a plasmid or combinatorial design
	Parts []PartFile `yaml:"parts,omitempty"`

	// Bins of a bins design
	Bins [][]PartFile `yaml:"bins,omitempty"`

	// Members of a library
	Members []File `yaml:"members,omitempty"`
}

// PartFile is a sequence file referenced by a design file. All the records
// in the file become parts.
type PartFile struct {
	// File is the path to a FASTA or Genbank, relative to the design file
	File string `yaml:"file"`

	// Bin label of the parts in a combinatorial design
	Bin string `yaml:"bin,omitempty"`

	// Reverse if the parts are used as their reverse complement
	Reverse bool `yaml:"reverse,omitempty"`
}

// UnmarshalYAML accepts either a path or a mapping.
func (p *PartFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.File = node.Value
		return nil
	}

	type plain PartFile
	return node.Decode((*plain)(p))
}

// Load reads a design from a YAML design file.
func Load(path string) (Design, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read design file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(dat, &f); err != nil {
		return nil, fmt.Errorf("failed to parse design file %s: %w", path, err)
	}

	return f.Build(filepath.Dir(path))
}

// Build creates the design, reading part files relative to dir.
func (f File) Build(dir string) (Design, error) {
	switch f.Type {
	case "plasmid", "":
		d := &Plasmid{Linear: f.Linear}
		if err := appendParts(d, f.Parts, dir); err != nil {
			return nil, err
		}
		return d, nil
	case "combinatorial":
		d := &Combinatorial{Linear: f.Linear}
		if err := appendParts(d, f.Parts, dir); err != nil {
			return nil, err
		}
		return d, nil
	case "bins":
		d := &CombinatorialBins{Linear: f.Linear}
		for _, b := range f.Bins {
			var bin []Part
			for _, pf := range b {
				parts, err := pf.read(dir)
				if err != nil {
					return nil, err
				}
				bin = append(bin, parts...)
			}
			if err := d.Append(bin); err != nil {
				return nil, err
			}
		}
		return d, nil
	case "library":
		d := &PlasmidLibrary{}
		for _, m := range f.Members {
			member, err := m.Build(dir)
			if err != nil {
				return nil, err
			}
			if err := d.Append(member); err != nil {
				return nil, err
			}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown design type %q: expected plasmid, combinatorial, bins or library", f.Type)
	}
}

// appendParts reads each part file and appends its parts to the design
func appendParts(d Design, parts []PartFile, dir string) error {
	for _, pf := range parts {
		read, err := pf.read(dir)
		if err != nil {
			return err
		}
		for _, p := range read {
			if err := d.Append(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// read the records of a part file
func (p PartFile) read(dir string) ([]Part, error) {
	path := p.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	records, err := seq.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", p.File, err)
	}

	orientation := Forward
	if p.Reverse {
		orientation = Reverse
	}

	parts := make([]Part, len(records))
	for i, r := range records {
		parts[i] = Part{Record: r, Orientation: orientation, Bin: p.Bin}
	}
	return parts, nil
}
