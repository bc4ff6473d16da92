// Package keyvault resolves Azure Key Vault references found in deployment
// output values to their secret values.
package keyvault

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// Azure Key Vault naming constraints
const (
	minVaultNameLength = 3
	maxVaultNameLength = 24
)

var (
	refSecretURIPattern = regexp.MustCompile(`^@Microsoft\.KeyVault\(SecretUri=(.+)\)$`)
	refVaultNamePattern = regexp.MustCompile(`^@Microsoft\.KeyVault\(VaultName=([^;]+);SecretName=([^;)]+)(?:;SecretVersion=([^;)]+))?\)$`)
)

// SecretGetter is the subset of azsecrets.Client the resolver needs.
// It exists so tests can substitute a fake vault.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

// ClientFactory builds a secret client for a vault URL.
type ClientFactory func(vaultURL string) (SecretGetter, error)

// Resolver resolves Key Vault references to secret values.
// Clients are created lazily and cached per vault.
type Resolver struct {
	newClient ClientFactory
	clients   map[string]SecretGetter
	mu        sync.Mutex
}

// Warning captures a non-fatal resolution failure for one key.
// The original reference value is kept in the output when resolution fails.
type Warning struct {
	Key string
	Err error
}

// NewResolver builds a resolver using DefaultAzureCredential.
func NewResolver() (*Resolver, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create DefaultAzureCredential: %w", err)
	}

	factory := func(vaultURL string) (SecretGetter, error) {
		client, err := azsecrets.NewClient(vaultURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
		}
		return client, nil
	}

	return NewResolverWithFactory(factory), nil
}

// NewResolverWithFactory builds a resolver with a custom client factory.
func NewResolverWithFactory(factory ClientFactory) *Resolver {
	return &Resolver{
		newClient: factory,
		clients:   make(map[string]SecretGetter),
	}
}

// IsReference reports whether the value matches a supported Key Vault
// reference format.
func IsReference(value string) bool {
	normalized := strings.TrimSpace(value)
	return refSecretURIPattern.MatchString(normalized) || refVaultNamePattern.MatchString(normalized)
}

// ResolveValues resolves every Key Vault reference in the value set.
// Non-reference values pass through untouched. A failed resolution keeps
// the original reference value and records a warning; the run continues.
func (r *Resolver) ResolveValues(ctx context.Context, values map[string]string) (map[string]string, []Warning, error) {
	resolved := make(map[string]string, len(values))
	var warnings []Warning

	for key, value := range values {
		select {
		case <-ctx.Done():
			return nil, warnings, ctx.Err()
		default:
		}

		if !IsReference(value) {
			resolved[key] = value
			continue
		}

		secret, err := r.ResolveReference(ctx, value)
		if err != nil {
			warnings = append(warnings, Warning{Key: key, Err: err})
			resolved[key] = value
			continue
		}
		resolved[key] = secret
	}

	return resolved, warnings, nil
}

// ResolveReference resolves a single Key Vault reference to its secret value.
func (r *Resolver) ResolveReference(ctx context.Context, reference string) (string, error) {
	reference = strings.TrimSpace(reference)

	if matches := refSecretURIPattern.FindStringSubmatch(reference); matches != nil {
		return r.resolveBySecretURI(ctx, strings.TrimSpace(matches[1]))
	}

	if matches := refVaultNamePattern.FindStringSubmatch(reference); matches != nil {
		vaultName, secretName := matches[1], matches[2]
		version := ""
		if len(matches) > 3 {
			version = matches[3]
		}
		return r.resolveByVaultName(ctx, vaultName, secretName, version)
	}

	return "", fmt.Errorf("invalid Key Vault reference format")
}

func (r *Resolver) getClient(vaultURL string) (SecretGetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[vaultURL]; ok {
		return client, nil
	}

	client, err := r.newClient(vaultURL)
	if err != nil {
		return nil, err
	}
	r.clients[vaultURL] = client
	return client, nil
}

func (r *Resolver) resolveBySecretURI(ctx context.Context, secretURI string) (string, error) {
	parts := strings.Split(secretURI, "/secrets/")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid secret URI format")
	}

	vaultURL, secretPath := parts[0], parts[1]
	if err := validateVaultURL(vaultURL); err != nil {
		return "", err
	}

	secretParts := strings.Split(secretPath, "/")
	secretName := secretParts[0]
	version := ""
	if len(secretParts) > 1 {
		version = secretParts[1]
	}

	return r.getSecret(ctx, vaultURL, secretName, version)
}

func (r *Resolver) resolveByVaultName(ctx context.Context, vaultName, secretName, version string) (string, error) {
	if err := validateVaultName(vaultName); err != nil {
		return "", err
	}
	return r.getSecret(ctx, fmt.Sprintf("https://%s.vault.azure.net", vaultName), secretName, version)
}

func (r *Resolver) getSecret(ctx context.Context, vaultURL, secretName, version string) (string, error) {
	client, err := r.getClient(vaultURL)
	if err != nil {
		return "", err
	}

	resp, err := client.GetSecret(ctx, secretName, version, nil)
	if err != nil {
		// Don't include vault or secret names in the error to avoid
		// information disclosure in logs.
		return "", fmt.Errorf("failed to get secret from Key Vault: %w", err)
	}

	if resp.Value == nil {
		return "", fmt.Errorf("secret has no value")
	}

	return *resp.Value, nil
}

func validateVaultURL(vaultURL string) error {
	if !strings.HasPrefix(vaultURL, "https://") {
		return fmt.Errorf("vault URI must use https scheme")
	}
	if !strings.HasSuffix(vaultURL, ".vault.azure.net") {
		return fmt.Errorf("vault URI must be in *.vault.azure.net domain")
	}

	vaultName := strings.TrimPrefix(vaultURL, "https://")
	vaultName = strings.TrimSuffix(vaultName, ".vault.azure.net")
	return validateVaultName(vaultName)
}

func validateVaultName(vaultName string) error {
	if len(vaultName) < minVaultNameLength || len(vaultName) > maxVaultNameLength {
		return fmt.Errorf("vault name must be %d-%d characters, got %d", minVaultNameLength, maxVaultNameLength, len(vaultName))
	}

	for i, ch := range vaultName {
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') && (ch < '0' || ch > '9') && ch != '-' {
			return fmt.Errorf("vault name contains invalid character: %c", ch)
		}
		if i == 0 && ch >= '0' && ch <= '9' {
			return fmt.Errorf("vault name cannot start with a number")
		}
	}

	return nil
}
