package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jongio/azd-dotenv/cliout"
	"github.com/jongio/azd-dotenv/config"
	"github.com/jongio/azd-dotenv/generator"
	"github.com/jongio/azd-dotenv/keyvault"
	"github.com/jongio/azd-dotenv/logutil"
	"github.com/jongio/azd-dotenv/provider"
	"github.com/jongio/azd-dotenv/version"
)

// versionInfo is populated via ldflags at build time.
var versionInfo = version.New("azd-dotenv")

type rootOptions struct {
	environment    string
	output         string
	resolveSecrets bool
	debug          bool
	noColor        bool
	outputFormat   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "azd-dotenv",
		Short: "Generate a .env file from azd deployment outputs",
		Long: `azd-dotenv reads deployment output values from the active azd environment
('azd env get-values') and writes them to a local .env file for
docker-compose based development.

The file is fully regenerated on every run. Keys missing from the
deployment outputs are still written, with empty values, so the file
shape stays stable across partial deployments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logutil.SetupLogger(opts.debug, false)
			if opts.noColor {
				cliout.NoColor()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.environment, "environment", "e", "", "azd environment name (default: the active azd environment)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "destination file path (default: .env, or the value from azd-dotenv.yaml)")
	cmd.Flags().BoolVar(&opts.resolveSecrets, "resolve-secrets", false, "resolve Key Vault references in output values")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(version.NewCommand(versionInfo, &opts.outputFormat))

	return cmd
}

// runGenerate assembles the pipeline from flags and the optional
// azd-dotenv.yaml config. Flags win over config, config wins over defaults.
func runGenerate(cmd *cobra.Command, opts *rootOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	environment := cfg.Environment
	if opts.environment != "" {
		environment = opts.environment
	}

	path := generator.DefaultPath
	if cfg.Output != "" {
		path = cfg.Output
	}
	if opts.output != "" {
		path = opts.output
	}

	gen := generator.New(provider.NewAzdProvider(provider.Options{Environment: environment}))
	gen.Spec = cfg.Spec()
	gen.Path = path

	if opts.resolveSecrets {
		resolver, err := keyvault.NewResolver()
		if err != nil {
			return fmt.Errorf("failed to create Key Vault resolver: %w", err)
		}
		gen.Resolver = resolver
	}

	return gen.Run(cmd.Context())
}
