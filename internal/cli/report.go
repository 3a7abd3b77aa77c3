package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danieljhkim/turbo-migrate/internal/catalog"
	"github.com/danieljhkim/turbo-migrate/internal/migrate"
	"github.com/danieljhkim/turbo-migrate/internal/runner"
)

var diffBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)

// printStep announces a codemod before it runs.
func printStep(index, total int, codemod catalog.Descriptor) {
	if jsonOutput {
		return
	}
	_, _ = infoColor.Fprintf(stdout, "(%d/%d) ", index, total)
	_, _ = fmt.Fprintf(stdout, "Running %s\n", boldColor.Sprint(codemod.Name))
}

// renderMigration prints the outcome of a migrate run.
func renderMigration(report *migrate.Report) error {
	if jsonOutput {
		return outputJSON(report)
	}

	if report.UpToDate {
		PrintSuccess(fmt.Sprintf("Nothing to do, current version (%s) is the same as the requested version (%s)",
			report.From, report.To))
		return nil
	}

	PrintSection(fmt.Sprintf("Upgrading turbo from %s to %s", report.From, report.To))
	if len(report.Steps) == 0 {
		PrintEmptyState(fmt.Sprintf("No codemods required to migrate from %s to %s", report.From, report.To))
	}
	renderSteps(report)

	if report.Failed() {
		return nil
	}

	_, _ = fmt.Fprintln(stdout)
	switch {
	case report.Installed:
		PrintSuccess(fmt.Sprintf("Upgraded turbo with `%s`", report.UpgradeCommand))
	case report.UpgradeCommand != "":
		PrintInfo("Upgrade turbo by running:")
		PrintList([]string{report.UpgradeCommand}, 1)
	default:
		PrintWarning("Unable to determine the package manager, upgrade turbo manually")
	}
	if report.Options.Dry {
		PrintWarning("Dry run, no files were written")
		return nil
	}
	PrintSuccess("Migration completed!")
	return nil
}

// renderTransform prints the outcome of a single codemod run.
func renderTransform(report *migrate.Report) error {
	if jsonOutput {
		return outputJSON(report)
	}

	renderSteps(report)
	if report.Failed() {
		return nil
	}
	if report.Options.Dry {
		PrintWarning("Dry run, no files were written")
	}
	return nil
}

func renderSteps(report *migrate.Report) {
	for _, step := range report.Steps {
		PrintSection(fmt.Sprintf("%s (%s)", step.Codemod.Name, step.Codemod.Version))
		renderChanges(step.Result)

		if step.Result.FatalError != nil {
			_, _ = fmt.Fprintln(stdout)
			PrintWarning(fmt.Sprintf("%s failed, halting", step.Codemod.Name))
		}
	}
}

func renderChanges(result runner.Result) {
	if len(result.Changes) == 0 {
		PrintEmptyState("No files touched")
		return
	}

	_, _ = labelColor.Fprintln(stdout, "  File Change Summary")
	width := 0
	for _, change := range result.Changes {
		if len(change.Path) > width {
			width = len(change.Path)
		}
	}
	for _, change := range result.Changes {
		_, _ = actionColor(change.Action).Fprintf(stdout, "  %-9s ", change.Action)
		_, _ = fmt.Fprintf(stdout, "%-*s  ", width, change.Path)
		_, _ = additionColor.Fprintf(stdout, "+%d", change.Additions)
		_, _ = fmt.Fprint(stdout, " ")
		_, _ = deletionColor.Fprintf(stdout, "-%d", change.Deletions)
		_, _ = fmt.Fprintln(stdout)
	}

	add, del := result.Totals()
	_, _ = dimColor.Fprintf(stdout, "  %s, %s, %s\n",
		PrintCount(len(result.Changes), "file", "files"),
		PrintCount(add, "addition", "additions"),
		PrintCount(del, "deletion", "deletions"),
	)

	for _, change := range result.Changes {
		if change.Diff == "" {
			continue
		}
		_, _ = fmt.Fprintln(stdout)
		_, _ = fmt.Fprintln(stdout, diffBox.Render(colorizeDiff(strings.TrimRight(change.Diff, "\n"))))
	}
}
