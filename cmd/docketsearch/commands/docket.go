package commands

import (
	"github.com/spf13/cobra"
)

var docketNumbers []string

func init() {
	docketCmd.Flags().StringArrayVarP(&docketNumbers, "number", "n", nil, "A docket number to look up, can be repeated.")
	rootCmd.AddCommand(docketCmd)
}

var docketCmd = &cobra.Command{
	Use:   "docket -n <docket number> [-n <docket number>...] [docket number...]",
	Short: "Looks up docket numbers in the court system their format belongs to.",
	Run: func(cmd *cobra.Command, args []string) {
		raws := append(append([]string{}, docketNumbers...), args...)
		if len(raws) == 0 {
			cmd.PrintErrln("at least one docket number is required")
			return
		}
		found, errs := newSearcher().SearchDockets(cmd.Context(), raws)
		printDocketResults(found, errs)
	},
}
