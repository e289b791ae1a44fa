package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Required configuration keys, in the order they are checked.
const (
	KeyGraphvizPath  = "graphviz_path"
	KeyRepoPath      = "repo_path"
	KeyOutputPNGPath = "output_png_path"
	KeyTagName       = "tag_name"
)

// RequiredKeys lists the keys every configuration file must define.
var RequiredKeys = []string{KeyGraphvizPath, KeyRepoPath, KeyOutputPNGPath, KeyTagName}

// ErrConfigNotFound indicates the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// MissingKeyError reports a required key absent from the configuration file.
type MissingKeyError struct {
	Key  string
	Path string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key %q in configuration file %s", e.Key, e.Path)
}

// Config is the root configuration structure.
type Config struct {
	GraphvizPath  string `json:"graphviz_path" yaml:"graphviz_path" toml:"graphviz_path"`
	RepoPath      string `json:"repo_path" yaml:"repo_path" toml:"repo_path"`
	OutputPNGPath string `json:"output_png_path" yaml:"output_png_path" toml:"output_png_path"`
	TagName       string `json:"tag_name" yaml:"tag_name" toml:"tag_name"`

	DotPath        string       `json:"dot_path,omitempty" yaml:"dot_path,omitempty" toml:"dot_path,omitempty"`                         // Default: "graph.dot"
	OutputFormat   string       `json:"output_format,omitempty" yaml:"output_format,omitempty" toml:"output_format,omitempty"`          // Default: "png"
	GitPath        string       `json:"git_path,omitempty" yaml:"git_path,omitempty" toml:"git_path,omitempty"`                         // Default: "git"
	Backend        string       `json:"backend,omitempty" yaml:"backend,omitempty" toml:"backend,omitempty"`                            // Default: "cli"
	JSONOutputPath string       `json:"json_output_path,omitempty" yaml:"json_output_path,omitempty" toml:"json_output_path,omitempty"` // Empty disables export
	KeepDot        bool         `json:"keep_dot,omitempty" yaml:"keep_dot,omitempty" toml:"keep_dot,omitempty"`
	Filters        FilterConfig `json:"filters" yaml:"filters" toml:"filters"`
}

// FilterConfig holds file path filtering options for node labels.
type FilterConfig struct {
	Include []string `json:"include" yaml:"include" toml:"include"`
	Exclude []string `json:"exclude" yaml:"exclude" toml:"exclude"`
}

// Format identifies the encoding of a configuration file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the file format from its extension. Unknown
// extensions are read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// DefaultConfig returns a configuration with default values for the optional settings.
func DefaultConfig() *Config {
	return &Config{
		DotPath:      "graph.dot",
		OutputFormat: "png",
		GitPath:      "git",
		Backend:      "cli",
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// LoadConfig reads the configuration file at path and checks that every
// required key is present. Values are not otherwise validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	format := FormatFromPath(path)

	var raw map[string]any
	if err := decode(format, data, &raw); err != nil {
		return nil, fmt.Errorf("parse configuration file %s: %w", path, err)
	}
	for _, key := range RequiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, &MissingKeyError{Key: key, Path: path}
		}
	}

	cfg := DefaultConfig()
	if err := decode(format, data, cfg); err != nil {
		return nil, fmt.Errorf("parse configuration file %s: %w", path, err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Validate checks the optional settings that have a closed set of values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "", "cli", "git", "gogit", "go-git":
		return nil
	default:
		return fmt.Errorf("invalid backend %q (expected cli or gogit)", c.Backend)
	}
}

// applyDefaults fills optional values left empty by the file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.DotPath == "" {
		c.DotPath = def.DotPath
	}
	if c.OutputFormat == "" {
		c.OutputFormat = def.OutputFormat
	}
	if c.GitPath == "" {
		c.GitPath = def.GitPath
	}
	if c.Backend == "" {
		c.Backend = def.Backend
	}
}

func decode(format Format, data []byte, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
		return err
	default:
		return json.Unmarshal(data, v)
	}
}

// SaveConfig saves configuration to a file, encoded according to its extension.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)

	switch FormatFromPath(path) {
	case FormatYAML:
		data, err = yaml.Marshal(cfg)
	case FormatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(cfg)
		data = buf.Bytes()
	default:
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
