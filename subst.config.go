package subst

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config file extensions
const (
	ConfigExtYAML = ".yaml"
	ConfigExtYML  = ".yml"
	ConfigExtTOML = ".toml"
)

// FileConfig is a declarative processor configuration loadable from a
// YAML or TOML file. Every field is optional; absent fields keep the
// engine defaults.
type FileConfig struct {
	// Delimiters overrides the token delimiter pair.
	Delimiters *DelimiterConfig `yaml:"delimiters,omitempty" toml:"delimiters,omitempty"`

	// Options overrides individual processing options.
	Options *OptionsConfig `yaml:"options,omitempty" toml:"options,omitempty"`

	// Builtins appends the built-in resolver registry as the lowest
	// priority layer.
	Builtins bool `yaml:"builtins,omitempty" toml:"builtins,omitempty"`

	// Values declares constant-value resolvers, name to scalar.
	Values map[string]any `yaml:"values,omitempty" toml:"values,omitempty"`

	// Templates declares named templates registered on the processor.
	Templates map[string]string `yaml:"templates,omitempty" toml:"templates,omitempty"`
}

// DelimiterConfig is the delimiter pair section of a config file.
type DelimiterConfig struct {
	Start string `yaml:"start" toml:"start"`
	End   string `yaml:"end" toml:"end"`
}

// OptionsConfig is the options section of a config file. Pointer fields
// distinguish "absent" from an explicit false.
type OptionsConfig struct {
	IgnoreCase         *bool  `yaml:"ignore_case,omitempty" toml:"ignore_case,omitempty"`
	IgnoreMissing      *bool  `yaml:"ignore_missing,omitempty" toml:"ignore_missing,omitempty"`
	EnableDefaultValue *bool  `yaml:"enable_default_value,omitempty" toml:"enable_default_value,omitempty"`
	DefaultDelimiter   string `yaml:"default_delimiter,omitempty" toml:"default_delimiter,omitempty"`
	EscapeChar         string `yaml:"escape_char,omitempty" toml:"escape_char,omitempty"`
}

// LoadConfig reads and parses a processor config file. The format is
// selected by file extension: .yaml/.yml or .toml.
func LoadConfig(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigFileError(ErrMsgConfigRead, path, err)
	}

	var config FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ConfigExtYAML, ConfigExtYML:
		if err := yaml.Unmarshal(raw, &config); err != nil {
			return nil, NewConfigFileError(ErrMsgConfigParse, path, err)
		}
	case ConfigExtTOML:
		if err := toml.Unmarshal(raw, &config); err != nil {
			return nil, NewConfigFileError(ErrMsgConfigParse, path, err)
		}
	default:
		return nil, NewConfigFormatError(path, ext)
	}

	return &config, nil
}

// Processor builds a configured Processor from the file config. Extra
// options are applied after the file's settings and take precedence;
// registries passed via WithRegistries rank above the file's value
// resolvers and builtins.
func (c *FileConfig) Processor(opts ...Option) (*Processor, error) {
	var fileOpts []Option

	if c.Delimiters != nil {
		fileOpts = append(fileOpts, WithDelimiters(c.Delimiters.Start, c.Delimiters.End))
	}
	if c.Options != nil {
		if c.Options.IgnoreCase != nil {
			fileOpts = append(fileOpts, WithIgnoreCase(*c.Options.IgnoreCase))
		}
		if c.Options.IgnoreMissing != nil {
			fileOpts = append(fileOpts, WithIgnoreMissing(*c.Options.IgnoreMissing))
		}
		if c.Options.EnableDefaultValue != nil {
			fileOpts = append(fileOpts, WithDefaultValues(*c.Options.EnableDefaultValue))
		}
		if c.Options.DefaultDelimiter != "" {
			fileOpts = append(fileOpts, WithDefaultDelimiter(firstRune(c.Options.DefaultDelimiter)))
		}
		if c.Options.EscapeChar != "" {
			fileOpts = append(fileOpts, WithEscapeChar(firstRune(c.Options.EscapeChar)))
		}
	}

	// Caller options run after the file's scalar settings so they take
	// precedence; the file's value resolvers and builtins are appended
	// last so caller registries rank above them.
	all := append(fileOpts, opts...)
	if len(c.Values) > 0 {
		all = append(all, WithRegistries(valueRegistry(c.Values)))
	}
	if c.Builtins {
		all = append(all, WithBuiltins())
	}

	p, err := New(all...)
	if err != nil {
		return nil, err
	}

	for name, source := range c.Templates {
		if err := p.RegisterTemplate(name, source); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// valueRegistry turns a name to constant mapping into a registry of
// zero-argument producer resolvers.
func valueRegistry(values map[string]any) *Registry {
	resolvers := make(map[string]ResolverFunc, len(values))
	for name, value := range values {
		value := value
		resolvers[name] = func(args []any) (any, error) {
			return value, nil
		}
	}
	return NewRegistryFromMap(resolvers)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
