package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/turbo-migrate/internal/catalog"
)

var (
	listFrom string
	listTo   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available codemods",
	Long: `Display the codemods in version order.

With --from and/or --to, only the codemods a migration between those versions
would run are shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := catalog.Default()

		codemods := cat.List()
		if listFrom != "" || listTo != "" {
			from, to := listFrom, listTo
			if from == "" {
				from = "0.0.0"
			}
			if to == "" && len(codemods) > 0 {
				to = codemods[len(codemods)-1].Version
			}
			selected, err := catalog.Select(from, to, cat)
			if err != nil {
				return err
			}
			codemods = selected
		}

		if jsonOutput {
			if codemods == nil {
				codemods = []catalog.Descriptor{}
			}
			return outputJSON(codemods)
		}

		PrintSection("Codemods")
		if len(codemods) == 0 {
			PrintEmptyState("No codemods match")
			return nil
		}

		rows := make([][]string, 0, len(codemods))
		for _, codemod := range codemods {
			rows = append(rows, []string{codemod.Version, codemod.Name, codemod.Description})
		}
		PrintTable([]string{"VERSION", "NAME", "DESCRIPTION"}, rows)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "Only show codemods newer than this version")
	listCmd.Flags().StringVar(&listTo, "to", "", "Only show codemods up to and including this version")
}
