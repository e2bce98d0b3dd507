package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/pkgindex/apt"
	"github.com/etnz/pkgindex/deb"
	"go.yaml.in/yaml/v3"
)

// Config is a business object holding the application's configuration.
type Config struct {
	// Format is the name of the parser used when none is given on the command line.
	Format string
	// Raw keeps every value as a string.
	Raw bool
	// Quiet suppresses parse warnings.
	Quiet bool
	// Output is the output encoding: "json" or "yaml".
	Output string
	// Pretty indents the JSON output.
	Pretty bool
	// Timeout bounds each remote fetch. Zero means no timeout.
	Timeout time.Duration
	// UserAgent is sent with remote fetches.
	UserAgent string
	// Sources is the list of APT repositories parsed when no input is given.
	Sources []apt.RepoConfig
}

// defaultConfig returns the configuration used when there is no config file.
func defaultConfig() *Config {
	return &Config{
		Format:    deb.PackageIndex.Info.Name,
		Output:    "json",
		Timeout:   30 * time.Second,
		UserAgent: "pkgindex",
	}
}

// validate checks the values that cannot be checked while decoding.
func (c *Config) validate() error {
	if _, err := deb.Lookup(c.Format); err != nil {
		return err
	}
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("unknown output %q (want json or yaml)", c.Output)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("negative timeout %s", c.Timeout)
	}
	return nil
}

// loadConfig reads the config file at path. A missing file yields the
// defaults.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	config, err := decodeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

func decodeConfig(data []byte) (*Config, error) {
	// Internal DTOs for YAML deserialization
	type yamlRepoConfig struct {
		URL           string   `yaml:"url"`
		Suite         string   `yaml:"suite"`
		Component     string   `yaml:"component"`
		Architectures []string `yaml:"architectures"`
	}
	type yamlHTTP struct {
		Timeout   *time.Duration `yaml:"timeout"`
		UserAgent string         `yaml:"user_agent"`
	}
	type yamlConfig struct {
		Format  string           `yaml:"format"`
		Raw     bool             `yaml:"raw"`
		Quiet   bool             `yaml:"quiet"`
		Output  string           `yaml:"output"`
		Pretty  bool             `yaml:"pretty"`
		HTTP    yamlHTTP         `yaml:"http"`
		Sources []yamlRepoConfig `yaml:"sources"`
	}

	var dto yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	// Map DTO to business object
	config := defaultConfig()
	if dto.Format != "" {
		config.Format = dto.Format
	}
	if dto.Output != "" {
		config.Output = dto.Output
	}
	if dto.HTTP.Timeout != nil {
		config.Timeout = *dto.HTTP.Timeout
	}
	if dto.HTTP.UserAgent != "" {
		config.UserAgent = dto.HTTP.UserAgent
	}
	config.Raw = dto.Raw
	config.Quiet = dto.Quiet
	config.Pretty = dto.Pretty
	for _, r := range dto.Sources {
		config.Sources = append(config.Sources, apt.RepoConfig{
			URL:           r.URL,
			Suite:         r.Suite,
			Component:     r.Component,
			Architectures: r.Architectures,
		})
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}
