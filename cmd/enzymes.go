package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jjtimmons/synbio/internal/assembly"
)

// enzymesCmd is for listing out all the available enzymes usable for digesting
// parts. Useful for if the user doesn't know which enzymes are available
var enzymesCmd = &cobra.Command{
	Use:   "enzymes",
	Short: "List enzymes available to digest parts",
	Long: `Lists out all the enzymes by name along with their recognition sequence.
The template strand's cut is marked with "^" and the complementary strand's with "_".

	<Name>	<Recognition sequence>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, e := range assembly.Enzymes() {
			fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Site)
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(enzymesCmd)
}
