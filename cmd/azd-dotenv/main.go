// Command azd-dotenv generates a local .env file for container-based
// development from azd deployment outputs.
package main

import (
	"errors"
	"os"

	"github.com/jongio/azd-dotenv/cliout"
	"github.com/jongio/azd-dotenv/envfile"
	"github.com/jongio/azd-dotenv/provider"
)

// Exit codes per failure kind, so scripts wrapping the tool can tell a
// missing azd apart from a bad destination path.
const (
	exitOK                  = 0
	exitFailure             = 1
	exitProviderUnavailable = 2
	exitProviderParse       = 3
	exitWrite               = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		cliout.Error("%v", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, provider.ErrProviderUnavailable):
		return exitProviderUnavailable
	case errors.Is(err, provider.ErrProviderParse):
		return exitProviderParse
	case errors.Is(err, envfile.ErrWrite):
		return exitWrite
	default:
		return exitFailure
	}
}
