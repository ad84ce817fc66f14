package protocol

import (
	"github.com/jjtimmons/synbio/internal/seq"
)

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
	insertA = seq.New("A", "GGTCTC"+"A"+overhang2+bodyA+overhang3+"T"+"GAGACC", false)
	insertB = seq.New("B", "GGTCTC"+"A"+overhang3+bodyB+overhang1+"T"+"GAGACC", false)
	return
}
