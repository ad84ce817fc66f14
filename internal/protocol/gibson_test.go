package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjtimmons/synbio/internal/assembly"
	"github.com/jjtimmons/synbio/internal/design"
	"github.com/jjtimmons/synbio/internal/seq"
)

func TestGibson_EndToEnd(t *testing.T) {
	a, b := gibsonParts()
	plasmid, err := design.NewPlasmid(a, b)
	require.NoError(t, err)

	gibson, err := NewGibsonFromDesign(plasmid, DefaultGibsonConfig())
	require.NoError(t, err)
	require.Len(t, gibson.Assemblies(), 1)

	p := New("gibson")
	require.NoError(t, p.Add(gibson))
	require.Len(t, p.Instructions(), 3)
	require.NoError(t, p.Run())

	// one product, the two parts less their overlaps
	products := p.Products()
	require.Len(t, products, 1)
	assert.Equal(t, a.Len()+b.Len()-20-20, products[0].Len())
	assert.Equal(t, "A+B", products[0].ID)
	assert.True(t, products[0].Circular)

	// a transfer for each part and the master mix into the assembly well
	var reagents []string
	for _, tr := range p.Transfers() {
		if tr.DstPlate == "step1-1" {
			reagents = append(reagents, tr.Reagent)
		}
	}
	assert.Equal(t, []string{"A", "B", "Gibson master mix (2X)"}, reagents)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	var picklist bytes.Buffer
	require.NoError(t, p.ToPicklists(&picklist, "csv"))
	g.Assert(t, "gibson_picklist", picklist.Bytes())

	var layout bytes.Buffer
	require.NoError(t, p.ToCSV(&layout))
	g.Assert(t, "gibson_layout", layout.Bytes())

	var summary bytes.Buffer
	require.NoError(t, p.ToTxt(&summary))
	g.Assert(t, "gibson_summary", summary.Bytes())

	var fasta bytes.Buffer
	require.NoError(t, p.ToFasta(&fasta))
	assert.True(t, strings.HasPrefix(fasta.String(), ">A+B circular\n"))

	var gb bytes.Buffer
	require.NoError(t, p.ToGenbank(&gb))
	assert.Contains(t, gb.String(), "LOCUS")
	assert.Equal(t, Exported, p.State())
}

func TestGibson_ResolverErrorsSurface(t *testing.T) {
	// the ends are reverse complements of one another, so B joins A in either orientation
	a := seq.New("A", x+bodyA+seq.RevComp(x), false)
	b := seq.New("B", seq.RevComp(x)+bodyB+x, false)
	plasmid, err := design.NewPlasmid(a, b)
	require.NoError(t, err)

	_, err = NewGibsonFromDesign(plasmid, DefaultGibsonConfig())
	assert.True(t, errors.Is(err, assembly.ErrAmbiguousAssembly))

	// no overlap between the parts
	plasmid, err = design.NewPlasmid(seq.New("A", bodyA, false), seq.New("B", bodyB, false))
	require.NoError(t, err)

	_, err = NewGibsonFromDesign(plasmid, DefaultGibsonConfig())
	assert.True(t, errors.Is(err, assembly.ErrNoValidAssembly))
}

func TestGibson_Combinatorial(t *testing.T) {
	a, b := gibsonParts()
	b2 := seq.New("B2", y+bodyA+x, false)

	bins, err := design.NewCombinatorialBins([]*seq.Record{a}, []*seq.Record{b, b2})
	require.NoError(t, err)

	// the same plasmid twice is assembled once
	library, err := design.NewPlasmidLibrary(bins, []*seq.Record{a, b})
	require.NoError(t, err)
	require.Equal(t, 3, library.Count())

	gibson, err := NewGibsonFromDesign(library, DefaultGibsonConfig())
	require.NoError(t, err)
	require.Len(t, gibson.Assemblies(), 2)

	p := New("combinatorial")
	require.NoError(t, p.Add(gibson))
	require.NoError(t, p.Run())

	// A is shared, so there are three parts on the input plate and two assemblies
	parts := 0
	for _, w := range p.Layout() {
		if w.Plate == "inputs-1" {
			parts++
		}
	}
	assert.Equal(t, 3, parts)
	assert.Len(t, p.Output("gibson-1/mix"), 2)

	// the shared part's well holds what both assemblies draw from it
	for _, w := range p.Layout() {
		if w.Plate == "inputs-1" && w.Name == "A" {
			assert.Equal(t, 2*DefaultGibsonConfig().PartVolume, w.Volume)
		}
	}
	assert.Len(t, p.Products(), 2)
}

func TestNewGibson_InvalidConfig(t *testing.T) {
	a, b := gibsonParts()
	resolved, err := assembly.NewResolver().Resolve(
		design.Candidate{Parts: []design.Part{{Record: a}, {Record: b}}, Circular: true},
		DefaultGibsonConfig().Homology,
		false,
	)
	require.NoError(t, err)

	tests := []struct {
		name   string
		modify func(c *GibsonConfig)
	}{
		{"no master mix", func(c *GibsonConfig) { c.MasterMix.Name = "" }},
		{"no master mix volume", func(c *GibsonConfig) { c.MasterMixVolume = 0 }},
		{"negative part volume", func(c *GibsonConfig) { c.PartVolume = -1 }},
		{"no incubation", func(c *GibsonConfig) { c.Duration = 0 }},
		{"bad homology", func(c *GibsonConfig) { c.Homology.MinOverlap = 0 }},
		{"no cells", func(c *GibsonConfig) { c.Transform.Cells.Name = "" }},
		{"no transformation volume", func(c *GibsonConfig) { c.Transform.Volume = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultGibsonConfig()
			tt.modify(&conf)

			_, err := NewGibson(conf, resolved)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}

	_, err = NewGibson(DefaultGibsonConfig())
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	gibson, err := NewGibson(DefaultGibsonConfig(), resolved)
	require.NoError(t, err)
	assert.Len(t, gibson.Assemblies(), 1)
}

func TestProtocol_Add_TwoBlocks(t *testing.T) {
	a, b := gibsonParts()
	plasmid, _ := design.NewPlasmid(a, b)
	first, err := NewGibsonFromDesign(plasmid, DefaultGibsonConfig())
	require.NoError(t, err)
	second, err := NewGibsonFromDesign(plasmid, DefaultGibsonConfig())
	require.NoError(t, err)

	p := New("two")
	require.NoError(t, p.Add(first))
	require.NoError(t, p.Add(second))
	require.Len(t, p.Instructions(), 6)
	assert.Equal(t, "gibson-2 mix", p.Instructions()[3].Name())

	require.NoError(t, p.Run())
	assert.Len(t, p.Output("gibson-1/transformed"), 1)
	assert.Len(t, p.Output("gibson-2/transformed"), 1)

	// the master mix is one ledger line across both blocks
	line := p.Ledger()[0]
	assert.Equal(t, "Gibson master mix", line.Reagent.Name)
	assert.Equal(t, 20.0, line.Volume)
}
