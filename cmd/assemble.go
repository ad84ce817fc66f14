package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jjtimmons/synbio/config"
	"github.com/jjtimmons/synbio/internal/design"
	"github.com/jjtimmons/synbio/internal/picklist"
	"github.com/jjtimmons/synbio/internal/protocol"
)

var (
	designHelp = `a YAML design file. Its type is plasmid, combinatorial,
bins or library and its parts are FASTA or Genbank files.`

	enzymesHelp = `enzymes to digest the parts with.
'synbio enzymes' prints a list of recognized enzymes.`
)

// assembleCmd is for creating an assembly protocol from a design
var assembleCmd = &cobra.Command{
	Use:                        "assemble",
	Short:                      "Create an assembly protocol from a design",
	SuggestionsMinimumDistance: 3,
	Long: `Create an assembly protocol from a design. Every candidate of the design is
resolved into an assembly, the assemblies are turned into instructions and
the instructions are run to find the reagents, plate layouts and transfers.

The products, layouts, a summary and a pick-list are written to --out.`,
	Aliases: []string{"build"},
}

// gibsonCmd is for Gibson Assembly of parts with homologous ends
var gibsonCmd = &cobra.Command{
	Use:                        "gibson [design]",
	Short:                      "Assemble parts with homologous ends by Gibson Assembly",
	Args:                       cobra.ExactArgs(1),
	RunE:                       assemble(gibsonBlock),
	SuggestionsMinimumDistance: 2,
}

// goldenGateCmd is for Golden Gate Assembly of parts with Type IIS sites
var goldenGateCmd = &cobra.Command{
	Use:                        "goldengate [design]",
	Short:                      "Assemble parts with Type IIS sites by Golden Gate Assembly",
	Args:                       cobra.ExactArgs(1),
	RunE:                       assemble(goldenGateBlock),
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"gg"},
}

// cloneCmd is for restriction cloning
var cloneCmd = &cobra.Command{
	Use:                        "clone [design]",
	Short:                      "Assemble parts by a restriction digest and ligation",
	Args:                       cobra.ExactArgs(1),
	RunE:                       assemble(cloneBlock),
	SuggestionsMinimumDistance: 2,
}

// blockFunc creates an assembly block for a design
type blockFunc func(d design.Design, conf *config.Config) (protocol.Block, error)

func gibsonBlock(d design.Design, conf *config.Config) (protocol.Block, error) {
	return protocol.NewGibsonFromDesign(d, conf.GibsonProtocol())
}

func goldenGateBlock(d design.Design, conf *config.Config) (protocol.Block, error) {
	return protocol.NewGoldenGateFromDesign(d, conf.GoldenGateProtocol())
}

func cloneBlock(d design.Design, conf *config.Config) (protocol.Block, error) {
	return protocol.NewCloneFromDesign(d, conf.CloneProtocol())
}

// assemble loads a design, runs its protocol and writes the protocol's exports
func assemble(newBlock blockFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		conf := config.New()
		if !slices.Contains(picklist.Platforms(), conf.Picklist.Platform) {
			return fmt.Errorf("unknown pick-list platform %q, expected one of %s",
				conf.Picklist.Platform, strings.Join(picklist.Platforms(), ", "))
		}

		d, err := design.Load(args[0])
		if err != nil {
			return err
		}
		if conf.Verbose {
			stderr.Printf("%d candidate assemblies in %s\n", d.Count(), args[0])
		}

		block, err := newBlock(d, conf)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		p := protocol.New(name)
		if err := p.Add(block); err != nil {
			return err
		}
		if err := p.Run(); err != nil {
			return err
		}
		if conf.Verbose {
			stderr.Printf("%d instructions, %d reagents, %d transfers\n",
				len(p.Instructions()), len(p.Ledger()), len(p.Transfers()))
		}

		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		return write(p, out, conf.Picklist.Platform)
	}
}

// write the protocol's exports to files in a directory
func write(p *protocol.Protocol, dir, platform string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	base := filepath.Join(dir, p.Name())
	picklistExt := ".csv"
	if platform == "tecan" {
		picklistExt = ".gwl"
	}

	files := []struct {
		path   string
		export func(io.Writer) error
	}{
		{base + ".fa", p.ToFasta},
		{base + ".gb", p.ToGenbank},
		{base + ".layout.csv", p.ToCSV},
		{base + ".txt", p.ToTxt},
		{base + ".picklist" + picklistExt, func(w io.Writer) error { return p.ToPicklists(w, platform) }},
	}
	for _, f := range files {
		if err := writeFile(f.path, f.export); err != nil {
			return err
		}
		stderr.Println(f.path)
	}
	return nil
}

// writeFile creates a file and writes an export to it
func writeFile(path string, export func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := export(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// set flags
func init() {
	for _, c := range []*cobra.Command{gibsonCmd, goldenGateCmd, cloneCmd} {
		c.Flags().StringP("out", "o", ".", "output directory")
		c.Long = "Create an assembly protocol from a design.\n\n[design] is " + designHelp
		assembleCmd.AddCommand(c)
	}

	goldenGateCmd.Flags().StringSliceP("enzymes", "e", nil, enzymesHelp)
	goldenGateCmd.Flags().StringSliceP("include", "i", nil, "keep only products with a feature matching one of these")
	viper.BindPFlag("goldengate.ligation.enzymes", goldenGateCmd.Flags().Lookup("enzymes"))
	viper.BindPFlag("goldengate.ligation.include", goldenGateCmd.Flags().Lookup("include"))

	cloneCmd.Flags().StringSliceP("enzymes", "e", nil, enzymesHelp)
	cloneCmd.Flags().StringSliceP("include", "i", nil, "keep only products with a feature matching one of these")
	viper.BindPFlag("clone.ligation.enzymes", cloneCmd.Flags().Lookup("enzymes"))
	viper.BindPFlag("clone.ligation.include", cloneCmd.Flags().Lookup("include"))

	assembleCmd.PersistentFlags().StringP("picklist", "p", "csv", "liquid handler of the pick-list: "+strings.Join(picklist.Platforms(), ", "))
	viper.BindPFlag("picklist.platform", assembleCmd.PersistentFlags().Lookup("picklist"))

	RootCmd.AddCommand(assembleCmd)
}
