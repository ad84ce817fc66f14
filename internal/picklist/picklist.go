// Package picklist is for writing liquid handler pick-lists: one row per
// transfer of liquid from a source well to a destination well.
package picklist

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Rows and Columns of a 96 well plate
const (
	Rows    = 8
	Columns = 12
)

// Row is a single transfer between wells.
type Row struct {
	// SrcPlate is the name of the source plate
	SrcPlate string

	// SrcWell is the source well, ex: "A1"
	SrcWell string

	// DstPlate is the name of the destination plate
	DstPlate string

	// DstWell is the destination well, ex: "B1"
	DstWell string

	// Reagent is the name of what's transferred
	Reagent string

	// Volume is in µL
	Volume float64
}

// writer writes rows for one liquid handler
type writer func(w io.Writer, rows []Row) error

// writers by platform name
var writers = map[string]writer{
	"csv":      writeCSV,
	"hamilton": writeHamilton,
	"tecan":    writeTecan,
}

// Platforms returns the names of the supported liquid handlers.
func Platforms() []string {
	var platforms []string
	for p := range writers {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// Write writes the rows as a pick-list for the platform.
func Write(w io.Writer, platform string, rows []Row) error {
	write, ok := writers[strings.ToLower(strings.TrimSpace(platform))]
	if !ok {
		return fmt.Errorf("unknown pick-list platform %q, expected one of: %s", platform, strings.Join(Platforms(), ", "))
	}

	for _, r := range rows {
		if _, err := Position(r.SrcWell); err != nil {
			return err
		}
		if _, err := Position(r.DstWell); err != nil {
			return err
		}
	}

	return write(w, rows)
}

// WellName returns the name of the well at a 0-based index. Wells are
// filled by column: A1, B1, ... H1, A2
func WellName(index int) string {
	row := index % Rows
	column := index / Rows
	return fmt.Sprintf("%c%d", 'A'+row, column+1)
}

// Position returns the 1-based, column-major position of a well on a 96 well plate.
func Position(well string) (int, error) {
	well = strings.ToUpper(strings.TrimSpace(well))
	if len(well) < 2 {
		return 0, fmt.Errorf("invalid well %q", well)
	}

	row := int(well[0] - 'A')
	column, err := strconv.Atoi(well[1:])
	if err != nil || row < 0 || row >= Rows || column < 1 || column > Columns {
		return 0, fmt.Errorf("invalid well %q", well)
	}

	return (column-1)*Rows + row + 1, nil
}

// volume formats a volume without trailing zeros
func volume(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// writeCSV writes a generic CSV with a header
func writeCSV(w io.Writer, rows []Row) error {
	c := csv.NewWriter(w)
	if err := c.Write([]string{"source plate", "source well", "destination plate", "destination well", "reagent", "volume (uL)"}); err != nil {
		return err
	}

	for _, r := range rows {
		if err := c.Write([]string{r.SrcPlate, r.SrcWell, r.DstPlate, r.DstWell, r.Reagent, volume(r.Volume)}); err != nil {
			return err
		}
	}

	c.Flush()
	return c.Error()
}

// writeHamilton writes a worklist CSV for a Hamilton STAR
func writeHamilton(w io.Writer, rows []Row) error {
	c := csv.NewWriter(w)
	if err := c.Write([]string{"Source Labware", "Source Position", "Target Labware", "Target Position", "Volume", "Liquid"}); err != nil {
		return err
	}

	for _, r := range rows {
		src, _ := Position(r.SrcWell)
		dst, _ := Position(r.DstWell)
		record := []string{r.SrcPlate, strconv.Itoa(src), r.DstPlate, strconv.Itoa(dst), volume(r.Volume), r.Reagent}
		if err := c.Write(record); err != nil {
			return err
		}
	}

	c.Flush()
	return c.Error()
}

// writeTecan writes a Tecan Freedom EVO GWL worklist: an aspirate, a dispense and
// a wash per row. The reagent is the tube ID of the aspirate and dispense
func writeTecan(w io.Writer, rows []Row) error {
	for _, r := range rows {
		src, _ := Position(r.SrcWell)
		dst, _ := Position(r.DstWell)
		v := volume(r.Volume)
		tube := strings.ReplaceAll(r.Reagent, ";", ",")

		if _, err := fmt.Fprintf(w, "A;%s;;;%d;%s;%s;;;\nD;%s;;;%d;%s;%s;;;\nW;\n", r.SrcPlate, src, tube, v, r.DstPlate, dst, tube, v); err != nil {
			return err
		}
	}
	return nil
}
