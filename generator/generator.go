// Package generator runs the pipeline that turns azd deployment outputs
// into a local env file: fetch values, render lines, write the file.
package generator

import (
	"context"
	"fmt"

	"github.com/jongio/azd-dotenv/cliout"
	"github.com/jongio/azd-dotenv/envfile"
	"github.com/jongio/azd-dotenv/keyvault"
	"github.com/jongio/azd-dotenv/logutil"
	"github.com/jongio/azd-dotenv/provider"
)

// DefaultPath is the destination file written when no path is configured.
const DefaultPath = ".env"

// SecretResolver resolves Key Vault references in a value set.
// Nil means references pass through unresolved.
type SecretResolver interface {
	ResolveValues(ctx context.Context, values map[string]string) (map[string]string, []keyvault.Warning, error)
}

// Generator produces the env file from a Provider's values.
type Generator struct {
	Provider provider.Provider
	Spec     envfile.Spec
	Path     string
	Resolver SecretResolver
}

// New creates a Generator with the default spec and path.
func New(p provider.Provider) *Generator {
	return &Generator{
		Provider: p,
		Spec:     envfile.DefaultSpec(),
		Path:     DefaultPath,
	}
}

// Run executes the pipeline once: fetch values, optionally resolve Key
// Vault references, render the file, and write it. The file is fully
// regenerated on every run; prior content is not merged.
func (g *Generator) Run(ctx context.Context) error {
	cliout.Info("Fetching deployment outputs from azd...")

	values, err := g.Provider.FetchValues(ctx)
	if err != nil {
		return err
	}
	logutil.Debug("fetched values", "count", len(values))

	// Track which keys held secret references so their resolved values are
	// masked in status output.
	secret := make(map[string]bool)
	if g.Resolver != nil {
		for key, value := range values {
			if keyvault.IsReference(value) {
				secret[key] = true
			}
		}

		resolved, warnings, err := g.Resolver.ResolveValues(ctx, values)
		if err != nil {
			return fmt.Errorf("failed to resolve Key Vault references: %w", err)
		}
		for _, w := range warnings {
			cliout.Warning("Could not resolve Key Vault reference for %s: %v", w.Key, w.Err)
		}
		values = resolved
	}

	file := envfile.Render(g.Spec, values)
	if err := envfile.Write(file, g.Path); err != nil {
		return err
	}

	cliout.Success("Wrote %s", g.Path)
	for _, entry := range g.Spec {
		value := envfile.Extract(values, entry.OutputKey)
		switch {
		case value == "":
			cliout.Item("%s= (not set in deployment outputs)", entry.EnvVar)
		case secret[entry.OutputKey]:
			cliout.Item("%s=********", entry.EnvVar)
		default:
			cliout.Item("%s=%s", entry.EnvVar, value)
		}
	}

	return nil
}
