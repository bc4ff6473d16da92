// Package config loads optional project-level settings for azd-dotenv
// from an azd-dotenv.yaml file in the working directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jongio/azd-dotenv/envfile"
)

// FileName is the optional per-project configuration file.
const FileName = "azd-dotenv.yaml"

// KeyMapping declares one provider output key and the env var name it is
// written as. When env is omitted the output key name is reused.
type KeyMapping struct {
	Output string `yaml:"output"`
	Env    string `yaml:"env,omitempty"`
}

// Config holds the settings read from azd-dotenv.yaml. Zero value means
// all defaults (write .env from the default key set).
type Config struct {
	// Output is the destination file path, relative to the working directory.
	Output string `yaml:"output,omitempty"`

	// Environment is the azd environment name to read values from.
	Environment string `yaml:"environment,omitempty"`

	// Keys replaces the default key set when present. Order is preserved
	// in the generated file.
	Keys []KeyMapping `yaml:"keys,omitempty"`
}

// Load reads azd-dotenv.yaml from dir. A missing file is not an error and
// yields the zero Config; a malformed file is an error.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Spec returns the extraction spec declared by the config, or the default
// key set when no keys are configured.
func (c *Config) Spec() envfile.Spec {
	if len(c.Keys) == 0 {
		return envfile.DefaultSpec()
	}

	spec := make(envfile.Spec, 0, len(c.Keys))
	for _, k := range c.Keys {
		env := k.Env
		if env == "" {
			env = k.Output
		}
		spec = append(spec, envfile.Entry{OutputKey: k.Output, EnvVar: env})
	}
	return spec
}
