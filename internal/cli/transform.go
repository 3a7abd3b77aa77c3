package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/turbo-migrate/internal/catalog"
	"github.com/danieljhkim/turbo-migrate/internal/migrate"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

var (
	transformDry   bool
	transformPrint bool
	transformForce bool
)

var transformCmd = &cobra.Command{
	Use:   "transform <codemod> [dir]",
	Short: "Run a single codemod by name",
	Long: `Run one codemod against [dir] without resolving versions.

Use 'turbo-migrate list' to see the available codemods.`,
	Args: cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}
		var names []string
		for _, codemod := range catalog.Default().List() {
			names = append(names, codemod.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args[1:])
		if err != nil {
			return err
		}

		eng := newEngine()
		report, err := eng.Transform(cmd.Context(), migrate.TransformRequest{
			Root:    dir,
			Codemod: args[0],
			Options: runner.Options{
				Force: transformForce,
				Dry:   transformDry,
				Print: transformPrint,
			},
		})
		if err != nil {
			return err
		}
		if err := renderTransform(report); err != nil {
			return err
		}
		return report.Err()
	},
}

func init() {
	transformCmd.Flags().BoolVar(&transformDry, "dry", false, "Preview changes without writing files")
	transformCmd.Flags().BoolVar(&transformPrint, "print", false, "Print a diff of every changed file")
	transformCmd.Flags().BoolVar(&transformForce, "force", false, "Bypass the clean working tree check and advisory prerequisites")
}
