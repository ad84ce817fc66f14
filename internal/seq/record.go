// Package seq is for annotated DNA sequence records: the read-only inputs to
// designs and the products of assemblies
package seq

import (
	"strings"

	"github.com/google/uuid"
)

// namespace is the UUID namespace for content ids of unnamed records
var namespace = uuid.MustParse("6d2f1a62-6a47-4d8e-9a53-7c4c0b5e5f0e")

// Feature is a single annotation on a Record.
type Feature struct {
	// Type of the feature, ex: "CDS", "promoter", "misc_feature"
	Type string

	// Label is the feature's name (the /label qualifier in a Genbank)
	Label string

	// Start of the feature (0-based, inclusive)
	Start int

	// End of the feature (0-based, exclusive)
	End int

	// Forward is false if the feature is on the reverse complement strand
	Forward bool

	// Qualifiers other than the label
	Qualifiers map[string]string
}

// Record is a sequence of DNA with an identity, a topology and features.
//
// Records are not mutated after they're created. Every transformation
// returns a new Record.
type Record struct {
	// ID is a unique identifier for this record
	ID string

	// Name is a human readable name (the Genbank definition)
	Name string

	// Seq is the record's sequence, uppercase
	Seq string

	// Circular if the record is a plasmid
	Circular bool

	// Features annotated on the record
	Features []Feature
}

// New creates a new record with an uppercased sequence.
func New(id, seq string, circular bool, features ...Feature) *Record {
	return &Record{
		ID:       id,
		Seq:      strings.ToUpper(seq),
		Circular: circular,
		Features: append([]Feature(nil), features...),
	}
}

// Len returns the length of the record's sequence.
func (r *Record) Len() int {
	return len(r.Seq)
}

// ContentID returns the record's ID or, if the record has none, an id
// derived from its sequence. Two unnamed records with the same sequence share a ContentID.
func (r *Record) ContentID() string {
	if r.ID != "" {
		return r.ID
	}
	return uuid.NewSHA1(namespace, []byte(strings.ToUpper(r.Seq))).String()
}

// copy returns a deep copy of a record.
func (r *Record) copy() *Record {
	features := make([]Feature, len(r.Features))
	for i, f := range r.Features {
		features[i] = f.copy()
	}

	return &Record{
		ID:       r.ID,
		Name:     r.Name,
		Seq:      r.Seq,
		Circular: r.Circular,
		Features: features,
	}
}

// WithID returns a copy of the record with a new ID.
func (r *Record) WithID(id string) *Record {
	c := r.copy()
	c.ID = id
	return c
}

// RevComp returns the reverse complement of the record. Features are
// flipped onto the opposite strand.
func (r *Record) RevComp() *Record {
	c := r.copy()
	c.Seq = RevComp(r.Seq)

	n := len(r.Seq)
	for i, f := range c.Features {
		c.Features[i].Start = n - f.End
		c.Features[i].End = n - f.Start
		c.Features[i].Forward = !f.Forward
	}

	return c
}

// Slice returns the sub-record between start and end. If the record is
// circular, end may be past the end of the sequence: the slice wraps across the zero-index.
// Only features entirely within the range are kept.
func (r *Record) Slice(start, end int) *Record {
	n := len(r.Seq)
	seq := r.Seq
	features := r.Features
	if r.Circular && end > n {
		seq += r.Seq
		for _, f := range r.Features {
			shifted := f.copy()
			shifted.Start += n
			shifted.End += n
			features = append(features, shifted)
		}
	}

	if start < 0 {
		start = 0
	}
	if end > len(seq) {
		end = len(seq)
	}
	if start > end {
		start = end
	}

	var kept []Feature
	for _, f := range features {
		if f.Start >= start && f.End <= end {
			shifted := f.copy()
			shifted.Start -= start
			shifted.End -= start
			kept = append(kept, shifted)
		}
	}

	return &Record{
		ID:       r.ID,
		Name:     r.Name,
		Seq:      seq[start:end],
		Features: kept,
	}
}

// HasFeature returns whether any of the record's features have a type, label
// or qualifier containing one of the keywords (case insensitive).
func (r *Record) HasFeature(keywords []string) bool {
	var values []string
	for _, f := range r.Features {
		values = append(values, strings.ToLower(f.Label), strings.ToLower(f.Type))
		for _, q := range f.Qualifiers {
			values = append(values, strings.ToLower(q))
		}
	}

	for _, v := range values {
		for _, k := range keywords {
			if k != "" && strings.Contains(v, strings.ToLower(k)) {
				return true
			}
		}
	}
	return false
}

// Concat joins records end to end into a new record.
func Concat(id string, circular bool, records ...*Record) *Record {
	var sb strings.Builder
	var features []Feature
	offset := 0
	for _, r := range records {
		sb.WriteString(r.Seq)
		for _, f := range r.Features {
			shifted := f.copy()
			shifted.Start += offset
			shifted.End += offset
			features = append(features, shifted)
		}
		offset += len(r.Seq)
	}

	return &Record{
		ID:       id,
		Seq:      sb.String(),
		Circular: circular,
		Features: features,
	}
}

func (f Feature) copy() Feature {
	if f.Qualifiers == nil {
		return f
	}

	q := make(map[string]string, len(f.Qualifiers))
	for k, v := range f.Qualifiers {
		q[k] = v
	}
	f.Qualifiers = q
	return f
}
