package seq

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/TimothyStiles/poly/io/fasta"
	"github.com/TimothyStiles/poly/io/genbank"
)

// now is the timestamp for Genbank headers
var now = time.Now

// WriteFasta writes records to a multi-FASTA.
func WriteFasta(w io.Writer, records ...*Record) error {
	fastas := make([]fasta.Fasta, len(records))
	for i, r := range records {
		header := r.ContentID()
		if r.Circular {
			header += " circular"
		}
		fastas[i] = fasta.Fasta{Name: header, Sequence: r.Seq}
	}

	out, err := fasta.Build(fastas)
	if err != nil {
		return fmt.Errorf("failed to build FASTA: %v", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write FASTA: %v", err)
	}
	return nil
}

// WriteGenbank writes records, with their features, to a multi-Genbank.
func WriteGenbank(w io.Writer, records ...*Record) error {
	for _, r := range records {
		out, err := genbank.Build(toGenbank(r))
		if err != nil {
			return fmt.Errorf("failed to build Genbank for %s: %v", r.ContentID(), err)
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("failed to write Genbank: %v", err)
		}
	}
	return nil
}

// toGenbank converts a Record to a Genbank entry
func toGenbank(r *Record) genbank.Genbank {
	name := r.ContentID()
	if len(name) > 16 {
		name = name[:16] // LOCUS names are limited in width
	}

	definition := r.Name
	if definition == "" {
		definition = "."
	}

	gbk := genbank.Genbank{
		Meta: genbank.Meta{
			Definition: definition,
			Accession:  ".",
			Locus: genbank.Locus{
				Name:             name,
				SequenceLength:   strconv.Itoa(r.Len()),
				MoleculeType:     "DNA",
				GenbankDivision:  "SYN",
				ModificationDate: strings.ToUpper(now().Format("02-Jan-2006")),
				Circular:         r.Circular,
				Linear:           !r.Circular,
			},
		},
		Sequence: strings.ToLower(r.Seq),
	}

	for _, f := range r.Features {
		featureType := f.Type
		if featureType == "" {
			featureType = "misc_feature"
		}

		attributes := map[string]string{"label": f.Label}
		for k, v := range f.Qualifiers {
			attributes[k] = v
		}

		gbk.Features = append(gbk.Features, genbank.Feature{
			Type:       featureType,
			Attributes: attributes,
			Location:   location(f),
		})
	}
	return gbk
}

// location is a feature's Genbank location, ex: complement(12..140)
func location(f Feature) genbank.Location {
	loc := genbank.Location{
		Start:             f.Start,
		End:               f.End,
		GbkLocationString: fmt.Sprintf("%d..%d", f.Start+1, f.End),
	}
	if f.Forward {
		return loc
	}

	return genbank.Location{
		Complement:        true,
		GbkLocationString: "complement(" + loc.GbkLocationString + ")",
		SubLocations:      []genbank.Location{loc},
	}
}
