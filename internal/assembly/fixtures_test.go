package assembly

import (
	"github.com/jjtimmons/synbio/internal/design"
	"github.com/jjtimmons/synbio/internal/seq"
)

// sequences without BsaI, BbsI or EcoRI sites
const (
	x         = "GCTAAAGACAATTACATAAC"
	y         = "ATACACGTCAGCACGAAACT"
	bodyA     = "TGTTGGCCCAGTGTGAATCGCTTAAGGGTTAAGTAAGTGTGATGCATACGCCTTTACTTG"
	bodyB     = "CTGTGTCCACCCCATCGGACTGGCATTTTTATTACACTCAGAAACAGAACTCGGGTAATT"
	bbBody    = "TTGACAGGTCACGCAGAGGCGCGCCCTCCTGAAGTGCGTGGACACTCGCTATGAATCTCT"
	dropout   = "GATTTACCCACTCTGCCAAACTCCAGCGCG"
	overhang1 = "CTGA"
	overhang2 = "TGCC"
	overhang3 = "GCAA"
)

// gibsonParts are two parts that overlap by 20 bp at both ends
func gibsonParts() (*seq.Record, *seq.Record) {
	return seq.New("A", x+bodyA+y, false), seq.New("B", y+bodyB+x, false)
}

// goldenGateParts are a circular backbone with outward facing BsaI sites and
// two linear inserts with inward facing sites
func goldenGateParts() (backbone, insertA, insertB *seq.Record) {
	backbone = seq.New("BB", overhang1+bbBody+overhang2+"T"+"GAGACC"+dropout+"GGTCTC"+"A", true)
	insertA = seq.New("A", "GGTCTC"+"A"+overhang2+bodyA+overhang3+"T"+"GAGACC", false,
		seq.Feature{Type: "CDS", Label: "gfp", Start: 20, End: 60, Forward: true})
	insertB = seq.New("B", "GGTCTC"+"A"+overhang3+bodyB+overhang1+"T"+"GAGACC", false)
	return
}

// candidate creates a candidate of forward parts
func candidate(circular bool, records ...*seq.Record) design.Candidate {
	c := design.Candidate{Circular: circular}
	for _, r := range records {
		c.Parts = append(c.Parts, design.Part{Record: r})
	}
	return c
}
