package assembly

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjtimmons/synbio/internal/design"
	"github.com/jjtimmons/synbio/internal/seq"
)

func Test_overlap(t *testing.T) {
	type args struct {
		a           string
		b           string
		minOverlap  int
		maxOverlap  int
		maxMismatch int
	}
	tests := []struct {
		name         string
		args         args
		wantLength   int
		wantJunction string
	}{
		{
			"exact overlap",
			args{bodyA + x, x + bodyB, 15, 40, 0},
			20,
			x,
		},
		{
			"no overlap",
			args{bodyA, bodyB, 15, 40, 0},
			0,
			"",
		},
		{
			"overlap shorter than the minimum",
			args{bodyA + x[10:], x[10:] + bodyB, 15, 40, 0},
			0,
			"",
		},
		{
			"longest overlap wins",
			args{bodyA + x + x, x + x + bodyB, 15, 40, 0},
			40,
			x + x,
		},
		{
			"mismatch is allowed",
			args{bodyA + x, "T" + x[1:] + bodyB, 15, 40, 1},
			20,
			x,
		},
		{
			"case insensitive",
			args{bodyA + strings.ToLower(x), x + bodyB, 15, 40, 0},
			20,
			x,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLength, gotJunction := overlap(tt.args.a, tt.args.b, tt.args.minOverlap, tt.args.maxOverlap, tt.args.maxMismatch)
			if gotLength != tt.wantLength {
				t.Errorf("overlap() length = %v, want %v", gotLength, tt.wantLength)
			}
			if gotJunction != tt.wantJunction {
				t.Errorf("overlap() junction = %v, want %v", gotJunction, tt.wantJunction)
			}
		})
	}
}

func TestNewHomology(t *testing.T) {
	if _, err := NewHomology(20, 80, 0); err != nil {
		t.Errorf("NewHomology() error = %v", err)
	}
	if _, err := NewHomology(0, 80, 0); err == nil {
		t.Error("NewHomology() expected an error for a zero minimum")
	}
	if _, err := NewHomology(40, 20, 0); err == nil {
		t.Error("NewHomology() expected an error for max < min")
	}
	if _, err := NewHomology(20, 40, 20); err == nil {
		t.Error("NewHomology() expected an error for too many mismatches")
	}
}

func TestNewLigation(t *testing.T) {
	l, err := NewLigation([]string{"BsaI"}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"BsaI"}, l.EnzymeNames())

	_, err = NewLigation(nil, nil, 0)
	assert.Error(t, err)

	_, err = NewLigation([]string{"NotAnEnzyme"}, nil, 0)
	assert.Error(t, err)
}

func TestResolver_Resolve_Homology(t *testing.T) {
	a, b := gibsonParts()
	h, err := NewHomology(15, 40, 0)
	require.NoError(t, err)

	resolved, err := NewResolver().Resolve(candidate(true, a, b), h, false)
	require.NoError(t, err)

	assert.Equal(t, "A+B", resolved.Product.ID)
	assert.True(t, resolved.Product.Circular)
	assert.Equal(t, a.Len()+b.Len()-40, resolved.Product.Len())
	assert.Equal(t, x+bodyA+y+bodyB, resolved.Product.Seq)
	assert.Equal(t, 40, resolved.Score)
	assert.Equal(t, "homology", resolved.Strategy)

	require.Len(t, resolved.Parts, 2)
	assert.False(t, resolved.Parts[0].Reversed)
	assert.False(t, resolved.Parts[1].Reversed)

	// every junction is consumed: a cycle has as many junctions as parts
	require.Len(t, resolved.Junctions, 2)
	assert.Equal(t, Junction{Left: 0, Right: 1, Kind: "overlap", Length: 20, Seq: y}, resolved.Junctions[0])
	assert.Equal(t, Junction{Left: 1, Right: 0, Kind: "overlap", Length: 20, Seq: x}, resolved.Junctions[1])

	// the product is the parts concatenated at their junctions
	for _, j := range resolved.Junctions {
		left := resolved.Parts[j.Left].Record.Seq
		right := resolved.Parts[j.Right].Record.Seq
		assert.True(t, strings.HasSuffix(left, j.Seq))
		assert.True(t, strings.HasPrefix(right, j.Seq))
	}
}

func TestResolver_Resolve_HomologyReversedPart(t *testing.T) {
	a, b := gibsonParts()
	h, _ := NewHomology(15, 40, 0)

	// B is given as its reverse complement and is flipped back
	flipped := seq.New("B", seq.RevComp(b.Seq), false)
	resolved, err := NewResolver().Resolve(candidate(true, a, flipped), h, false)
	require.NoError(t, err)

	assert.Equal(t, x+bodyA+y+bodyB, resolved.Product.Seq)
	assert.True(t, resolved.Parts[1].Reversed)

	// but not when the order and orientation are fixed
	_, err = NewResolver().Resolve(candidate(true, a, flipped), h, true)
	assert.True(t, errors.Is(err, ErrNoValidAssembly))
}

func TestResolver_Resolve_HomologyLinear(t *testing.T) {
	a := seq.New("A", bodyA+x, false)
	b := seq.New("B", x+bodyB, false)
	h, _ := NewHomology(15, 40, 0)

	resolved, err := NewResolver().Resolve(candidate(false, b, a), h, false)
	require.NoError(t, err)

	assert.False(t, resolved.Product.Circular)
	assert.Equal(t, bodyA+x+bodyB, resolved.Product.Seq)
	assert.Len(t, resolved.Junctions, 1)
	assert.Equal(t, "A", resolved.Parts[0].Part.ID())

	// a circular product needs a junction from B back to A
	_, err = NewResolver().Resolve(candidate(true, a, b), h, false)
	assert.True(t, errors.Is(err, ErrNoValidAssembly))
}

func TestResolver_Resolve_Ambiguous(t *testing.T) {
	// the ends are reverse complements of one another, so B joins A in either orientation
	a := seq.New("A", x+bodyA+seq.RevComp(x), false)
	b := seq.New("B", seq.RevComp(x)+bodyB+x, false)
	h, _ := NewHomology(15, 40, 0)

	_, err := NewResolver().Resolve(candidate(true, a, b), h, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguousAssembly))

	var resolveErr *ResolveError
	require.True(t, errors.As(err, &resolveErr))
	assert.Len(t, resolveErr.Solutions, 2)
	assert.Equal(t, []string{"A", "B"}, resolveErr.Parts)

	// a fixed order is not ambiguous
	resolved, err := NewResolver().Resolve(candidate(true, a, b), h, true)
	require.NoError(t, err)
	assert.Equal(t, x+bodyA+seq.RevComp(x)+bodyB, resolved.Product.Seq)
}

func TestResolver_Resolve_Errors(t *testing.T) {
	a, b := gibsonParts()
	h, _ := NewHomology(15, 40, 0)
	bsaI, _ := NewLigation([]string{"BsaI"}, nil, 0)

	t.Run("part too short for homology", func(t *testing.T) {
		_, err := NewResolver().Resolve(candidate(true, a, seq.New("short", "ATGC", false)), h, false)

		var partErr *IncompatiblePartError
		require.True(t, errors.As(err, &partErr))
		assert.Equal(t, "short", partErr.Part)
	})

	t.Run("part without sites for ligation", func(t *testing.T) {
		_, err := NewResolver().Resolve(candidate(true, a, b), bsaI, false)

		var partErr *IncompatiblePartError
		require.True(t, errors.As(err, &partErr))
		assert.Equal(t, "A", partErr.Part)
		assert.Equal(t, "ligation", partErr.Strategy)
	})

	t.Run("no parts", func(t *testing.T) {
		_, err := NewResolver().Resolve(design.Candidate{Circular: true}, h, false)
		assert.True(t, errors.Is(err, ErrNoValidAssembly))
	})

	t.Run("no strategy", func(t *testing.T) {
		_, err := NewResolver().Resolve(candidate(true, a, b), nil, false)
		assert.Error(t, err)
	})

	t.Run("invalid strategy", func(t *testing.T) {
		_, err := NewResolver().Resolve(candidate(true, a, b), Homology{}, false)
		assert.Error(t, err)
	})
}

func TestResolver_Resolve_Ligation(t *testing.T) {
	backbone, insertA, insertB := goldenGateParts()
	bsaI, err := NewLigation([]string{"BsaI"}, nil, 0)
	require.NoError(t, err)

	// inserts are out of order and the search finds the cycle
	resolved, err := NewResolver().Resolve(candidate(true, backbone, insertB, insertA), bsaI, false)
	require.NoError(t, err)

	assert.Equal(t, "BB+A+B", resolved.Product.ID)
	assert.Equal(t, overhang1+bbBody+overhang2+bodyA+overhang3+bodyB, resolved.Product.Seq)
	assert.True(t, resolved.Product.Circular)
	assert.Equal(t, 12, resolved.Score)
	assert.Equal(t, "ligation", resolved.Strategy)

	require.Len(t, resolved.Junctions, 3)
	for i, want := range []string{overhang2, overhang3, overhang1} {
		assert.Equal(t, "5' overhang", resolved.Junctions[i].Kind)
		assert.Equal(t, "^"+want, resolved.Junctions[i].Overhang)
		assert.Equal(t, want, resolved.Junctions[i].Seq)
		assert.Equal(t, 4, resolved.Junctions[i].Length)
	}

	// the insert's feature is carried onto the product
	assert.True(t, resolved.Product.HasFeature([]string{"gfp"}))

	// fixed in the wrong order fails
	_, err = NewResolver().Resolve(candidate(true, backbone, insertB, insertA), bsaI, true)
	assert.True(t, errors.Is(err, ErrNoValidAssembly))

	// fixed in the right order
	_, err = NewResolver().Resolve(candidate(true, backbone, insertA, insertB), bsaI, true)
	assert.NoError(t, err)
}

func TestResolver_Resolve_LigationFilters(t *testing.T) {
	backbone, insertA, insertB := goldenGateParts()

	t.Run("include keeps products with a feature", func(t *testing.T) {
		l, _ := NewLigation([]string{"BsaI"}, []string{"GFP"}, 0)
		_, err := NewResolver().Resolve(candidate(true, backbone, insertA, insertB), l, false)
		assert.NoError(t, err)
	})

	t.Run("include drops products without a feature", func(t *testing.T) {
		l, _ := NewLigation([]string{"BsaI"}, []string{"kanR"}, 0)
		_, err := NewResolver().Resolve(candidate(true, backbone, insertA, insertB), l, false)
		assert.True(t, errors.Is(err, ErrNoValidAssembly))
	})

	t.Run("re-ligated input is dropped", func(t *testing.T) {
		// a plasmid cut once by EcoRI only ligates back into itself
		eco := seq.New("eco", bodyA[:10]+"GAATTC"+bodyA[10:], true)
		l, _ := NewLigation([]string{"EcoRI"}, nil, 0)
		_, err := NewResolver().Resolve(candidate(true, eco), l, false)
		assert.True(t, errors.Is(err, ErrNoValidAssembly))
	})

	t.Run("min count lets a subset circularize", func(t *testing.T) {
		extra := seq.New("extra", "GGTCTC"+"A"+"ACGG"+bodyB+"TTAC"+"T"+"GAGACC", false)
		l, _ := NewLigation([]string{"BsaI"}, nil, 3)

		resolved, err := NewResolver().Resolve(candidate(true, backbone, insertA, insertB, extra), l, false)
		require.NoError(t, err)
		assert.Len(t, resolved.Parts, 3)
		assert.Equal(t, "BB+A+B", resolved.Product.ID)

		// without it, every part has to be used
		all, _ := NewLigation([]string{"BsaI"}, nil, 0)
		_, err = NewResolver().Resolve(candidate(true, backbone, insertA, insertB, extra), all, false)
		assert.True(t, errors.Is(err, ErrNoValidAssembly))
	})
}

func TestResolver_Resolve_Ligation3PrimeOverhangs(t *testing.T) {
	// KpnI (G_GTAC^C) and PstI (C_TGCA^G) both leave 3' overhangs
	vector := seq.New("vector", bbBody+"GGTACC"+dropout+"CTGCAG", true,
		seq.Feature{Type: "rep_origin", Label: "ori", Start: 5, End: 40, Forward: true})
	insert := seq.New("insert", x+"GGTACC"+bodyA+"CTGCAG"+y, false)

	// the palindromic overhangs also ligate the insert to the dropout, which lacks the ori
	l, err := NewLigation([]string{"KpnI", "PstI"}, []string{"ori"}, 0)
	require.NoError(t, err)

	resolved, err := NewResolver().Resolve(candidate(true, vector, insert), l, false)
	require.NoError(t, err)

	assert.Equal(t, "vector+insert", resolved.Product.ID)
	assert.Equal(t, "TGCA"+"G"+bbBody+"G"+"GTAC"+"C"+bodyA+"C", resolved.Product.Seq)
	assert.Equal(t, 8, resolved.Score)
	assert.True(t, resolved.Product.HasFeature([]string{"ori"}))

	require.Len(t, resolved.Junctions, 2)
	for i, want := range []string{"GTAC", "TGCA"} {
		assert.Equal(t, "3' overhang", resolved.Junctions[i].Kind)
		assert.Equal(t, want+"^", resolved.Junctions[i].Overhang)
		assert.Equal(t, want, resolved.Junctions[i].Seq)
		assert.Equal(t, 4, resolved.Junctions[i].Length)
	}

	// without the filter the dropout product ties
	all, _ := NewLigation([]string{"KpnI", "PstI"}, nil, 0)
	_, err = NewResolver().Resolve(candidate(true, vector, insert), all, false)
	assert.True(t, errors.Is(err, ErrAmbiguousAssembly))
}
