package design

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "promoters.fa", ">p1\nATGCATGC\n>p2\nTTGCATGC\n")
	writeFile(t, dir, "cds.fa", ">gfp\nATGAGTAAAGGA\n")
	writeFile(t, dir, "bb.fa", ">bb circular\nGGGGCCCCAAAA\n")

	writeFile(t, dir, "bins.yaml", `
type: bins
bins:
  - [promoters.fa]
  - - file: cds.fa
      reverse: true
  - [bb.fa]
`)
	d, err := Load(filepath.Join(dir, "bins.yaml"))
	require.NoError(t, err)
	assert.IsType(t, &CombinatorialBins{}, d)
	assert.Equal(t, [][]string{{"p1", "gfp", "bb"}, {"p2", "gfp", "bb"}}, candidateIDs(d))
	for c := range d.Expand() {
		assert.Equal(t, Reverse, c.Parts[1].Orientation)
		assert.True(t, c.Circular)
	}

	writeFile(t, dir, "library.yaml", `
type: library
members:
  - type: plasmid
    linear: true
    parts: [cds.fa, bb.fa]
  - type: combinatorial
    parts:
      - file: promoters.fa
        bin: promoter
      - bb.fa
`)
	d, err = Load(filepath.Join(dir, "library.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Count())
	assert.Equal(t, [][]string{{"gfp", "bb"}, {"p1", "bb"}, {"p2", "bb"}}, candidateIDs(d))

	writeFile(t, dir, "bad.yaml", "type: pool\n")
	_, err = Load(filepath.Join(dir, "bad.yaml"))
	assert.Error(t, err)

	writeFile(t, dir, "missing.yaml", "type: plasmid\nparts: [nope.fa]\n")
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
