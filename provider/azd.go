package provider

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jongio/azd-dotenv/logutil"
)

// CommandRunner is an interface for running external commands.
// This allows for mocking in tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner uses os/exec to run commands.
type DefaultCommandRunner struct{}

// Run executes a command and returns its stdout.
func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Options configures an AzdProvider.
type Options struct {
	// Environment is the azd environment name to read values from. When
	// empty, azd uses its default environment.
	Environment string

	// Runner overrides the command runner (useful for testing). Nil means
	// os/exec.
	Runner CommandRunner
}

// AzdProvider fetches deployment output values by invoking
// 'azd env get-values'. Values are fetched fresh on every call; nothing is
// cached between invocations.
type AzdProvider struct {
	env    string
	runner CommandRunner
}

// NewAzdProvider creates a provider backed by the azd CLI.
func NewAzdProvider(opts Options) *AzdProvider {
	runner := opts.Runner
	if runner == nil {
		runner = &DefaultCommandRunner{}
	}
	return &AzdProvider{env: opts.Environment, runner: runner}
}

// FetchValues invokes 'azd env get-values' once and parses the result.
// JSON output is preferred; if the JSON invocation fails (older azd versions
// reject --output) the plain KEY=VALUE form is tried before giving up.
func (p *AzdProvider) FetchValues(ctx context.Context) (map[string]string, error) {
	if err := validateEnvironmentName(p.env); err != nil {
		return nil, err
	}

	output, err := p.runner.Run(ctx, "azd", p.args(FormatJSON)...)
	if err != nil {
		logutil.Debug("json invocation failed, retrying with key=value output", "error", err)

		output, fallbackErr := p.runner.Run(ctx, "azd", p.args(FormatKeyValue)...)
		if fallbackErr != nil {
			return nil, fmt.Errorf("%w: azd env get-values: %v", ErrProviderUnavailable, fallbackErr)
		}
		return Parse(FormatKeyValue, output)
	}

	return Parse(FormatJSON, output)
}

func (p *AzdProvider) args(format Format) []string {
	args := []string{"env", "get-values"}
	if p.env != "" {
		args = append(args, "-e", p.env)
	}
	if format == FormatJSON {
		args = append(args, "--output", "json")
	}
	return args
}

// validateEnvironmentName rejects names that could smuggle arguments or
// shell metacharacters into the azd invocation. Empty is allowed (azd
// default environment).
func validateEnvironmentName(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, " ;&|") {
		return fmt.Errorf("invalid environment name: %q", name)
	}
	return nil
}
