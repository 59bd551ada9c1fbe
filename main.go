package main

import (
	"os"

	"github.com/cra-labs/create-react-app/internal/cli"
	"github.com/cra-labs/create-react-app/internal/issue"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(issue.ExitCode(cli.Execute(version, commit, date)))
}
