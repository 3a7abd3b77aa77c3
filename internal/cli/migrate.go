package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/turbo-migrate/internal/migrate"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

var (
	migrateFrom    string
	migrateTo      string
	migrateDry     bool
	migratePrint   bool
	migrateForce   bool
	migrateInstall bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [dir]",
	Short: "Run every codemod needed to reach a turbo version",
	Long: `Migrate the turbo configuration in [dir] (default: prompt, or the current
directory when not attached to a terminal) from the installed turbo version to
--to, or to the latest published release when --to is omitted.

The installed version is read from pnpm-lock.yaml or package.json unless --from
is given. Codemods run in version order and the migration halts at the first
failure. The working tree must be clean unless --force or --dry is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDir(args)
		if err != nil {
			return err
		}

		eng := newEngine()
		report, err := eng.Migrate(cmd.Context(), migrate.Request{
			Root: dir,
			From: migrateFrom,
			To:   migrateTo,
			Options: runner.Options{
				Force: migrateForce,
				Dry:   migrateDry,
				Print: migratePrint,
			},
			Install: migrateInstall,
			OnStep:  printStep,
		})
		if report != nil {
			if renderErr := renderMigration(report); renderErr != nil {
				return renderErr
			}
		}
		if err != nil {
			return err
		}
		return report.Err()
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "Version to migrate from (default: detected)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "Version to migrate to (default: latest release)")
	migrateCmd.Flags().BoolVar(&migrateDry, "dry", false, "Preview changes without writing files")
	migrateCmd.Flags().BoolVar(&migratePrint, "print", false, "Print a diff of every changed file")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "Bypass the clean working tree check and advisory prerequisites")
	migrateCmd.Flags().BoolVar(&migrateInstall, "install", false, "Run the package manager upgrade after migrating")
}
