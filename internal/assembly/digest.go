package assembly

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jjtimmons/synbio/internal/seq"
)

// cut is a double-stranded cut made by an enzyme. Indexes are on the
// template strand: the template is cut before top and the complementary strand before bottom
type cut struct {
	top    int
	bottom int
	enzyme string
}

// overhang returns the start and end of the single stranded region at the cut
func (c cut) overhang() (start, end int) {
	if c.top < c.bottom {
		return c.top, c.bottom
	}
	return c.bottom, c.top
}

// overhangKey types the overhang's bases by the strand that's exposed. A 5'
// overhang is "^AATT", a 3' overhang is "TGCA^" and a blunt end is "^"
func overhangKey(bases string, fivePrime bool) string {
	if fivePrime {
		return "^" + bases
	}
	return bases + "^"
}

// fragment is a single strand's view of a digested stretch of DNA between two cuts
type fragment struct {
	// record is the fragment from the start of its left overhang to the start of its right overhang
	record *seq.Record

	// full is record with the bases of the right overhang
	full *seq.Record

	// left and right are the typed overhangs of the fragment's ends
	left, right string

	// rightBases is the sequence of the right overhang
	rightBases string

	// index of the fragment among the record's fragments
	index int

	// reversed is true if the fragment is from the reverse complement strand
	reversed bool
}

// digestKey identifies a record digested by a set of enzymes
type digestKey struct {
	record   string
	circular bool
	enzymes  string
}

// newDigestKey creates a cache key for a record and enzymes
func newDigestKey(r *seq.Record, enzymes []Enzyme) digestKey {
	names := make([]string, len(enzymes))
	for i, e := range enzymes {
		names[i] = e.Name + "=" + e.Site
	}
	sort.Strings(names)

	return digestKey{
		record:   r.ContentID() + ":" + strconv.Itoa(r.Len()),
		circular: r.Circular,
		enzymes:  strings.Join(names, ","),
	}
}

// digest returns the record's fragments, on both strands, after digestion
// with all the enzymes. Results are cached for the life of the Resolver
func (r *Resolver) digest(record *seq.Record, enzymes []Enzyme) []fragment {
	key := newDigestKey(record, enzymes)
	if frags, cached := r.digests[key]; cached {
		return frags
	}

	frags := digest(record, enzymes)
	r.digests[key] = frags
	return frags
}

// digest cuts a record with enzymes and returns the fragments between each
// neighboring pair of cuts. Each fragment is returned twice: once from the
// template strand and once from the reverse complement strand
func digest(record *seq.Record, enzymes []Enzyme) (frags []fragment) {
	id := record.ContentID()
	record = &seq.Record{
		ID:       id,
		Name:     record.Name,
		Seq:      strings.ToUpper(record.Seq),
		Circular: record.Circular,
		Features: record.Features,
	}
	n := record.Len()

	cuts := cuts(record, enzymes)
	if len(cuts) == 0 || (!record.Circular && len(cuts) < 2) {
		return nil
	}

	fragCount := len(cuts) - 1
	if record.Circular {
		// rotate so the first overhang starts at the zero-index
		first, _ := cuts[0].overhang()
		rotated := record.Slice(first, first+n)
		rotated.Circular = true
		record = rotated
		for i := range cuts {
			cuts[i].top -= first
			cuts[i].bottom -= first
		}
		fragCount = len(cuts)
	}

	doubled := record.Seq + record.Seq
	for i := 0; i < fragCount; i++ {
		left := cuts[i]
		right := cuts[(i+1)%len(cuts)]

		ls, le := left.overhang()
		rs, re := right.overhang()
		if i+1 == len(cuts) {
			// wraps around the zero-index
			rs += n
			re += n
		}
		if rs < le || re > len(doubled) {
			continue // overlapping overhangs
		}

		leftBases := doubled[ls:le]
		rightBases := doubled[rs:re]
		leftFive := left.top < left.bottom
		rightFive := right.top < right.bottom

		frags = append(frags, fragment{
			record:     record.Slice(ls, rs).WithID(id),
			full:       record.Slice(ls, re).WithID(id),
			left:       overhangKey(leftBases, leftFive),
			right:      overhangKey(rightBases, rightFive),
			rightBases: rightBases,
			index:      i,
		})

		frags = append(frags, fragment{
			record:     record.Slice(le, re).RevComp().WithID(id),
			full:       record.Slice(ls, re).RevComp().WithID(id),
			left:       overhangKey(seq.RevComp(rightBases), rightFive),
			right:      overhangKey(seq.RevComp(leftBases), leftFive),
			rightBases: seq.RevComp(leftBases),
			index:      i,
			reversed:   true,
		})
	}

	return frags
}

// cuts finds every cut made by the enzymes in the record, on both strands,
// sorted by the start of their overhangs
func cuts(record *seq.Record, enzymes []Enzyme) []cut {
	n := record.Len()
	template := record.Seq
	revComp := seq.RevComp(record.Seq)

	seen := make(map[int]bool)
	var found []cut
	add := func(top, bottom int, enzyme string) {
		c := cut{top: top, bottom: bottom, enzyme: enzyme}
		start, _ := c.overhang()
		if record.Circular {
			shift := ((start % n) + n) % n - start
			c.top += shift
			c.bottom += shift
		} else if top < 0 || top > n || bottom < 0 || bottom > n {
			return
		}

		if seen[c.top] {
			return // palindromic sites are found on both strands
		}
		seen[c.top] = true
		found = append(found, c)
	}

	for _, e := range enzymes {
		l := len(e.recog)
		if l > n {
			continue
		}

		search := func(s string) []int {
			if record.Circular {
				s += s[:l-1]
			}
			return matches(e, s, n)
		}

		for _, p := range search(template) {
			add(p+e.cutInd, p+e.hangInd, e.Name)
		}

		for _, p := range search(revComp) {
			// flip from the reverse complement strand's indexes to the template's
			end := n - p
			add(end-e.hangInd, end-e.cutInd, e.Name)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		si, _ := found[i].overhang()
		sj, _ := found[j].overhang()
		return si < sj
	})

	return found
}

// matches returns the start index of every (possibly overlapping) match of an
// enzyme's recognition sequence that starts before limit
func matches(e Enzyme, s string, limit int) (starts []int) {
	for i := 0; i < limit && i < len(s); {
		loc := e.regex.FindStringIndex(s[i:])
		if loc == nil {
			break
		}

		start := i + loc[0]
		if start >= limit {
			break
		}
		starts = append(starts, start)
		i = start + 1
	}
	return
}
