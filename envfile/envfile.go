// Package envfile renders deployment output values into a dotenv-style
// file consumed by docker-compose based development workflows.
package envfile

import (
	"fmt"
	"strings"
)

// Entry maps one provider output key to the environment variable name
// written to the file.
type Entry struct {
	// OutputKey is the key to look up in the provider's value set.
	OutputKey string
	// EnvVar is the variable name written to the file.
	EnvVar string
}

// Spec is the ordered list of entries the generated file contains.
// Order is preserved in the output.
type Spec []Entry

// DefaultSpec returns the keys required by the agent workflow containers.
// The mapping is identity: output key and env var name are the same.
func DefaultSpec() Spec {
	return Spec{
		{OutputKey: "AZURE_AI_PROJECT_ENDPOINT", EnvVar: "AZURE_AI_PROJECT_ENDPOINT"},
		{OutputKey: "AZURE_AI_MODEL_DEPLOYMENT_NAME", EnvVar: "AZURE_AI_MODEL_DEPLOYMENT_NAME"},
	}
}

// File is the ordered line sequence of a rendered env file.
type File []string

// String joins the lines with LF and a trailing newline.
func (f File) String() string {
	return strings.Join(f, "\n") + "\n"
}

// Extract returns the value for key, or the empty string when absent.
// A missing key is not an error: partial deployments still produce a file
// with the full set of lines, just with empty values.
func Extract(values map[string]string, key string) string {
	return values[key]
}

// Render produces the full line sequence for the env file: a fixed header
// comment block followed by one KEY=VALUE assignment per spec entry, in
// spec order. Every declared entry appears exactly once, even when its
// value is empty.
func Render(spec Spec, values map[string]string) File {
	file := File{
		"# Environment variables",
		"# Generated from Bicep deployment outputs",
		"",
		"# ---- AOAI/LLM/Embedding Model Variables ----",
	}

	for _, entry := range spec {
		file = append(file, fmt.Sprintf("%s=%s", entry.EnvVar, Extract(values, entry.OutputKey)))
	}

	return file
}
