package seq

// complement of each IUPAC base. zero for anything unrecognized
var complement [256]byte

func init() {
	pairs := []string{"AT", "CG", "RY", "SS", "WW", "KM", "BV", "DH", "NN"}
	for _, p := range pairs {
		for _, c := range []string{p, string([]byte{p[1], p[0]})} {
			complement[c[0]] = c[1]
			complement[c[0]+'a'-'A'] = c[1] + 'a' - 'A'
		}
	}
}

// RevComp returns the reverse complement of a DNA sequence. Unrecognized
// characters are complemented to N.
func RevComp(seq string) string {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}
