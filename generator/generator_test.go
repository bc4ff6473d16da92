package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/azd-dotenv/envfile"
	"github.com/jongio/azd-dotenv/keyvault"
	"github.com/jongio/azd-dotenv/provider"
	"github.com/jongio/azd-dotenv/testutil"
)

// stubProvider returns a fixed value set or error.
type stubProvider struct {
	values map[string]string
	err    error
}

func (s *stubProvider) FetchValues(ctx context.Context) (map[string]string, error) {
	return s.values, s.err
}

// stubResolver replaces reference values with fixed secrets.
type stubResolver struct {
	secrets  map[string]string
	warnings []keyvault.Warning
	err      error
}

func (s *stubResolver) ResolveValues(ctx context.Context, values map[string]string) (map[string]string, []keyvault.Warning, error) {
	if s.err != nil {
		return nil, s.warnings, s.err
	}
	resolved := make(map[string]string, len(values))
	for k, v := range values {
		if secret, ok := s.secrets[v]; ok {
			resolved[k] = secret
			continue
		}
		resolved[k] = v
	}
	return resolved, s.warnings, nil
}

func TestRun_WritesEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	gen := New(&stubProvider{values: map[string]string{
		"AZURE_AI_PROJECT_ENDPOINT":      "https://proj.ai",
		"AZURE_AI_MODEL_DEPLOYMENT_NAME": "gpt-4o",
	}})
	gen.Path = path

	_ = testutil.CaptureOutput(t, func() error {
		return gen.Run(context.Background())
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AZURE_AI_PROJECT_ENDPOINT=https://proj.ai")
	assert.Contains(t, string(data), "AZURE_AI_MODEL_DEPLOYMENT_NAME=gpt-4o")
}

func TestRun_EmptyValueSetStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	gen := New(&stubProvider{values: map[string]string{}})
	gen.Path = path

	var runErr error
	_ = testutil.CaptureOutput(t, func() error {
		runErr = gen.Run(context.Background())
		return runErr
	})
	require.NoError(t, runErr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AZURE_AI_PROJECT_ENDPOINT=\n")
	assert.Contains(t, string(data), "AZURE_AI_MODEL_DEPLOYMENT_NAME=\n")
}

func TestRun_ProviderErrorPropagates(t *testing.T) {
	gen := New(&stubProvider{err: provider.ErrProviderUnavailable})
	gen.Path = filepath.Join(t.TempDir(), ".env")

	var runErr error
	_ = testutil.CaptureOutput(t, func() error {
		runErr = gen.Run(context.Background())
		return runErr
	})
	assert.ErrorIs(t, runErr, provider.ErrProviderUnavailable)

	_, statErr := os.Stat(gen.Path)
	assert.True(t, os.IsNotExist(statErr), "no file should be written on fetch failure")
}

func TestRun_WriteErrorPropagates(t *testing.T) {
	gen := New(&stubProvider{values: map[string]string{}})
	gen.Path = filepath.Join(t.TempDir(), "no-such-dir", ".env")

	var runErr error
	_ = testutil.CaptureOutput(t, func() error {
		runErr = gen.Run(context.Background())
		return runErr
	})
	assert.ErrorIs(t, runErr, envfile.ErrWrite)
}

func TestRun_ResolvesSecretReferences(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	ref := "@Microsoft.KeyVault(VaultName=myvault;SecretName=endpoint)"
	gen := New(&stubProvider{values: map[string]string{
		"AZURE_AI_PROJECT_ENDPOINT":      ref,
		"AZURE_AI_MODEL_DEPLOYMENT_NAME": "gpt-4o",
	}})
	gen.Path = path
	gen.Resolver = &stubResolver{secrets: map[string]string{ref: "https://resolved.ai"}}

	output := testutil.CaptureOutput(t, func() error {
		return gen.Run(context.Background())
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AZURE_AI_PROJECT_ENDPOINT=https://resolved.ai")

	// Resolved secrets are masked in status output.
	assert.NotContains(t, output, "https://resolved.ai")
	assert.Contains(t, output, "AZURE_AI_PROJECT_ENDPOINT=********")
}

func TestRun_ResolverWarningsDoNotFailRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")

	gen := New(&stubProvider{values: map[string]string{
		"AZURE_AI_PROJECT_ENDPOINT": "https://proj.ai",
	}})
	gen.Path = path
	gen.Resolver = &stubResolver{warnings: []keyvault.Warning{
		{Key: "AZURE_AI_MODEL_DEPLOYMENT_NAME", Err: errors.New("access denied")},
	}}

	var runErr error
	output := testutil.CaptureOutput(t, func() error {
		runErr = gen.Run(context.Background())
		return runErr
	})
	require.NoError(t, runErr)
	assert.Contains(t, output, "access denied")
}
