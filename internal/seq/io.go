package seq

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/TimothyStiles/poly/io/fasta"
	"github.com/TimothyStiles/poly/io/genbank"
)

// unwantedChars are removed from sequences while reading
var unwantedChars = regexp.MustCompile(`(?i)[^atgcrykmswbdhvn]`)

// Read a FASTA or Genbank file (by its path on local FS) to a slice of Records.
func Read(path string) (records []*Record, err error) {
	if !filepath.IsAbs(path) {
		path, err = filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create path to input file: %v", err)
		}
	}

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	file := string(dat)
	if strings.TrimSpace(file) == "" {
		return nil, fmt.Errorf("failed to parse %s: empty file", path)
	}

	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, "fa") ||
		strings.HasSuffix(lower, "fasta") ||
		file[0] == '>' {
		return ReadFasta(path, file)
	}

	if strings.HasSuffix(lower, "gb") ||
		strings.HasSuffix(lower, "gbk") ||
		strings.HasSuffix(lower, "genbank") ||
		strings.HasPrefix(file, "LOCUS") {
		return ReadGenbank(path, file)
	}

	return nil, fmt.Errorf("failed to parse %s: unrecognized file type", path)
}

// ReadFasta parses a multi-FASTA file's contents to Records. A header
// containing "circular" marks the record as circular.
func ReadFasta(path, contents string) (records []*Record, err error) {
	if !strings.HasPrefix(strings.TrimSpace(contents), ">") {
		return nil, fmt.Errorf("failed to parse record(s) from %s: no FASTA header", path)
	}

	fastas, err := fasta.Parse(strings.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	for _, f := range fastas {
		header := strings.TrimSpace(f.Name)
		id := header
		if fields := strings.Fields(header); len(fields) > 0 {
			id = fields[0]
		}

		r := New(id, unwantedChars.ReplaceAllString(f.Sequence, ""), strings.Contains(header, "circular"))
		r.Name = header
		records = append(records, r)
	}

	// opened and parsed file but found nothing
	if len(records) < 1 {
		return nil, fmt.Errorf("failed to parse record(s) from %s", path)
	}

	return records, nil
}

// ReadGenbank parses the contents of a Genbank file to Records (one per LOCUS).
func ReadGenbank(path, contents string) (records []*Record, err error) {
	gbks, err := genbank.ParseMulti(strings.NewReader(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}

	for _, gbk := range gbks {
		if gbk.Meta.Locus.Name == "" {
			return nil, fmt.Errorf("failed to parse %s: no locus name", path)
		}
		records = append(records, fromGenbank(gbk))
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("failed to parse record(s) from %s", path)
	}

	return records, nil
}

// fromGenbank converts a parsed Genbank entry to a Record
func fromGenbank(gbk genbank.Genbank) *Record {
	r := New(gbk.Meta.Locus.Name, unwantedChars.ReplaceAllString(gbk.Sequence, ""), gbk.Meta.Locus.Circular)
	if def := strings.TrimSpace(gbk.Meta.Definition); def != "." {
		r.Name = def
	}

	for _, f := range gbk.Features {
		start, end, ok := span(f.Location)
		if !ok || start < 0 || end > r.Len() || start >= end {
			continue // unsupported location, ex: single bp
		}

		feature := Feature{
			Type:       f.Type,
			Start:      start,
			End:        end,
			Forward:    !f.Location.Complement,
			Qualifiers: map[string]string{},
		}
		for k, v := range f.Attributes {
			v = strings.Trim(v, `"`)
			if k == "label" {
				feature.Label = v
			} else {
				feature.Qualifiers[k] = v
			}
		}
		if feature.Label == "" {
			feature.Label = feature.Type
		}
		r.Features = append(r.Features, feature)
	}
	return r
}

// span is the 0-based start and exclusive end covered by a location and its sub-locations
func span(loc genbank.Location) (start, end int, ok bool) {
	if len(loc.SubLocations) == 0 {
		return loc.Start, loc.End, loc.End > 0
	}

	for _, sub := range loc.SubLocations {
		s, e, subOK := span(sub)
		if !subOK {
			continue
		}
		if !ok || s < start {
			start = s
		}
		if !ok || e > end {
			end = e
		}
		ok = true
	}
	return start, end, ok
}
