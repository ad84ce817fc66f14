package design

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jjtimmons/synbio/internal/seq"
)

func records(ids ...string) []*seq.Record {
	var rs []*seq.Record
	for _, id := range ids {
		rs = append(rs, seq.New(id, "ATGCATGCAT", false))
	}
	return rs
}

// candidateIDs flattens a design's expansion to part ids
func candidateIDs(d Design) [][]string {
	var ids [][]string
	for c := range d.Expand() {
		ids = append(ids, c.IDs())
	}
	return ids
}

func TestPlasmid_Expand(t *testing.T) {
	p, err := NewPlasmid(records("a", "b", "c")[0], records("b")[0])
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Append(Part{Record: records("c")[0], Orientation: Reverse}); err != nil {
		t.Fatal(err)
	}

	got := candidateIDs(p)
	want := [][]string{{"a", "b", "c"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
	if p.Count() != 1 {
		t.Errorf("Count() = %d, want 1", p.Count())
	}

	for c := range p.Expand() {
		if !c.Circular {
			t.Error("Expand() candidate is not circular")
		}
		if c.Parts[2].Orientation != Reverse {
			t.Error("Expand() lost the part's orientation")
		}
	}

	empty := &Plasmid{}
	if got := candidateIDs(empty); got != nil {
		t.Errorf("Expand() of empty plasmid = %v, want nothing", got)
	}
}

func TestCombinatorialBins_Expand(t *testing.T) {
	tests := []struct {
		name string
		bins [][]*seq.Record
		want [][]string
	}{
		{
			"last bin varies fastest",
			[][]*seq.Record{records("p1", "p2"), records("r1"), records("c1", "c2", "c3")},
			[][]string{
				{"p1", "r1", "c1"},
				{"p1", "r1", "c2"},
				{"p1", "r1", "c3"},
				{"p2", "r1", "c1"},
				{"p2", "r1", "c2"},
				{"p2", "r1", "c3"},
			},
		},
		{
			"single bin",
			[][]*seq.Record{records("a", "b")},
			[][]string{{"a"}, {"b"}},
		},
		{
			"no bins",
			nil,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &CombinatorialBins{}
			for _, b := range tt.bins {
				if err := d.Append(b); err != nil {
					t.Fatal(err)
				}
			}

			got := candidateIDs(d)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand() = %v, want %v", got, tt.want)
			}
			if d.Count() != len(tt.want) {
				t.Errorf("Count() = %d, want %d", d.Count(), len(tt.want))
			}
		})
	}
}

func TestCombinatorialBins_Completeness(t *testing.T) {
	d, err := NewCombinatorialBins(
		records("a1", "a2", "a3"),
		records("b1", "b2"),
		records("c1", "c2", "c3", "c4"),
		records("d1"),
	)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for _, ids := range candidateIDs(d) {
		seen[joined(ids)] = true
	}

	if len(seen) != 3*2*4*1 {
		t.Errorf("Expand() yielded %d distinct candidates, want %d", len(seen), 24)
	}
}

func TestCombinatorial_Bins(t *testing.T) {
	rs := records("p1", "r1", "p2", "bb", "r2")
	c, err := NewCombinatorial(
		Part{Record: rs[0], Bin: "promoter"},
		Part{Record: rs[1], Bin: "rbs"},
		Part{Record: rs[2], Bin: "promoter"},
		rs[3],
		Part{Record: rs[4], Bin: "rbs"},
	)
	if err != nil {
		t.Fatal(err)
	}

	got := candidateIDs(c)
	want := [][]string{
		{"p1", "r1", "bb"},
		{"p1", "r2", "bb"},
		{"p2", "r1", "bb"},
		{"p2", "r2", "bb"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
	if c.Count() != 4 {
		t.Errorf("Count() = %d, want 4", c.Count())
	}
}

func TestCombinatorial_UnlabeledParts(t *testing.T) {
	rs := records("p1", "p2", "bb")
	c, err := NewCombinatorial(rs[0], rs[1], rs[2])
	if err != nil {
		t.Fatal(err)
	}

	got := candidateIDs(c)
	want := [][]string{{"p1", "p2", "bb"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
	if c.Count() != 1 {
		t.Errorf("Count() = %d, want 1", c.Count())
	}
}

func TestExpand_Deterministic(t *testing.T) {
	bins, _ := NewCombinatorialBins(records("a", "b"), records("c", "d"))
	plasmid, _ := NewPlasmid(records("x")[0], records("y")[0])
	lib, err := NewPlasmidLibrary(bins, plasmid, records("q", "r"))
	if err != nil {
		t.Fatal(err)
	}

	for _, d := range []Design{bins, plasmid, lib} {
		first := candidateIDs(d)
		second := candidateIDs(d)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Expand() not deterministic for %T: %v != %v", d, first, second)
		}
	}
}

func TestPlasmidLibrary_Expand(t *testing.T) {
	bins, _ := NewCombinatorialBins(records("a", "b"), records("c"))
	plasmid, _ := NewPlasmid(records("x")[0])
	plasmid.Linear = true

	nested, _ := NewPlasmidLibrary(plasmid)
	lib, err := NewPlasmidLibrary(bins, nested)
	if err != nil {
		t.Fatal(err)
	}

	got := candidateIDs(lib)
	want := [][]string{{"a", "c"}, {"b", "c"}, {"x"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
	if lib.Count() != 3 {
		t.Errorf("Count() = %d, want 3", lib.Count())
	}

	var circular []bool
	for c := range lib.Expand() {
		circular = append(circular, c.Circular)
	}
	if !reflect.DeepEqual(circular, []bool{true, true, false}) {
		t.Errorf("Expand() topology = %v", circular)
	}

	// stop early
	count := 0
	for range lib.Expand() {
		count++
		break
	}
	if count != 1 {
		t.Errorf("Expand() did not stop early")
	}
}

func TestAppend_Incompatible(t *testing.T) {
	var nilPlasmid *Plasmid
	lib := &PlasmidLibrary{}
	outer, _ := NewPlasmidLibrary(lib)

	tests := []struct {
		name   string
		design Design
		member any
	}{
		{"plasmid string", &Plasmid{}, "ATGC"},
		{"plasmid nil record", &Plasmid{}, (*seq.Record)(nil)},
		{"plasmid empty seq", &Plasmid{}, seq.New("e", "", false)},
		{"plasmid bad orientation", &Plasmid{}, Part{Record: records("a")[0], Orientation: 3}},
		{"combinatorial design", &Combinatorial{}, &Plasmid{}},
		{"bins record", &CombinatorialBins{}, records("a")[0]},
		{"bins empty", &CombinatorialBins{}, []*seq.Record{}},
		{"library record", &PlasmidLibrary{}, records("a")[0]},
		{"library nil design", &PlasmidLibrary{}, nilPlasmid},
		{"library self", lib, lib},
		{"library cycle", lib, outer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.design.Append(tt.member)
			var incompatible *IncompatibleMemberError
			if !errors.As(err, &incompatible) {
				t.Errorf("Append() error = %v, want IncompatibleMemberError", err)
			}
		})
	}
}

func TestPart_Seq(t *testing.T) {
	r := seq.New("a", "AAAC", false)
	if got := (Part{Record: r}).Seq().Seq; got != "AAAC" {
		t.Errorf("Seq() = %s, want AAAC", got)
	}
	if got := (Part{Record: r, Orientation: Reverse}).Seq().Seq; got != "GTTT" {
		t.Errorf("Seq() = %s, want GTTT", got)
	}
}

func joined(ids []string) string {
	s := ""
	for _, id := range ids {
		s += id + ","
	}
	return s
}
