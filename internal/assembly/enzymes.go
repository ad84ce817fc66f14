package assembly

import (
	"bufio"
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed enzymes.tsv
var enzymeDB string

// Enzyme is a restriction enzyme with a recognition site and the cut indexes on each strand.
type Enzyme struct {
	// Name of the enzyme, ex: BsaI
	Name string

	// Site is the recognition sequence with the template strand's cut marked
	// with "^" and the complementary strand's cut marked with "_", ex: GGTCTCN^NNNN_
	Site string

	// recog is the recognition sequence without cut markers
	recog string

	// cutInd is the index of the template strand's cut in recog
	cutInd int

	// hangInd is the index of the complementary strand's cut in recog
	hangInd int

	// regex is the recognition sequence decoded into a regex
	regex *regexp.Regexp
}

// invalidSiteChars are characters that cannot be in a recognition site
var invalidSiteChars = regexp.MustCompile(`[^ATGCMRWYSKHDVBNX_\^]`)

// NewEnzyme parses a recognition site into an Enzyme.
func NewEnzyme(name, site string) (Enzyme, error) {
	site = strings.ToUpper(strings.TrimSpace(site))
	if invalidSiteChars.MatchString(site) || strings.Count(site, "^") != 1 || strings.Count(site, "_") != 1 {
		return Enzyme{}, fmt.Errorf("%s is not a valid recognition sequence for %s: need one ^ and one _", site, name)
	}

	cutIndex := strings.Index(site, "^")
	hangIndex := strings.Index(site, "_")
	if cutIndex < hangIndex {
		hangIndex--
	} else {
		cutIndex--
	}

	recog := strings.Replace(site, "^", "", -1)
	recog = strings.Replace(recog, "_", "", -1)
	if recog == "" {
		return Enzyme{}, fmt.Errorf("%s has an empty recognition sequence", name)
	}

	return Enzyme{
		Name:    name,
		Site:    site,
		recog:   recog,
		cutInd:  cutIndex,
		hangInd: hangIndex,
		regex:   regexp.MustCompile(recogRegex(recog)),
	}, nil
}

// recogRegex turns a recognition sequence into a regex sequence for searching
// sequence for searching the template sequence for digestion sites
func recogRegex(recog string) (decoded string) {
	regexDecode := map[rune]string{
		'A': "A",
		'C': "C",
		'G': "G",
		'T': "T",
		'M': "(A|C)",
		'R': "(A|G)",
		'W': "(A|T)",
		'Y': "(C|T)",
		'S': "(C|G)",
		'K': "(G|T)",
		'H': "(A|C|T)",
		'D': "(A|G|T)",
		'V': "(A|C|G)",
		'B': "(C|G|T)",
		'N': "(A|C|G|T)",
		'X': "(A|C|G|T)",
	}

	var regexDecoder strings.Builder
	for _, c := range recog {
		regexDecoder.WriteString(regexDecode[c])
	}

	return regexDecoder.String()
}

// builtin is the enzyme database, by name
var builtin = map[string]Enzyme{}

func init() {
	scanner := bufio.NewScanner(strings.NewReader(enzymeDB))
	for scanner.Scan() {
		columns := strings.Split(scanner.Text(), "\t")
		if len(columns) != 2 {
			continue
		}

		e, err := NewEnzyme(columns[0], columns[1])
		if err != nil {
			panic(err)
		}
		builtin[strings.ToLower(e.Name)] = e
	}
}

// EnzymeByName returns a builtin enzyme by its name (case insensitive).
func EnzymeByName(name string) (Enzyme, error) {
	if e, exists := builtin[strings.ToLower(strings.TrimSpace(name))]; exists {
		return e, nil
	}

	return Enzyme{}, fmt.Errorf(`failed to find enzyme with name %s use "synbio enzymes" for a list of recognized enzymes`, name)
}

// EnzymesByName returns each of the named enzymes.
func EnzymesByName(names ...string) ([]Enzyme, error) {
	var enzymes []Enzyme
	for _, n := range names {
		e, err := EnzymeByName(n)
		if err != nil {
			return nil, err
		}
		enzymes = append(enzymes, e)
	}
	return enzymes, nil
}

// Enzymes returns all the builtin enzymes sorted by name.
func Enzymes() []Enzyme {
	enzymes := make([]Enzyme, 0, len(builtin))
	for _, e := range builtin {
		enzymes = append(enzymes, e)
	}
	sort.Slice(enzymes, func(i, j int) bool {
		return enzymes[i].Name < enzymes[j].Name
	})
	return enzymes
}
