package main

import (
	"fmt"
	"os"

	"github.com/danieljhkim/turbo-migrate/internal/cli"
	"github.com/danieljhkim/turbo-migrate/internal/exitcode"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(exitcode.DetermineExitCode(err))
	}
}
