package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/namefs/internal/util"
	"github.com/brettbedarf/namefs/names"
)

// Log verbosity values accepted by [ConfigOverride.LogLvl], matching the
// CLI -v flag.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Default configuration constants. See [Config] for field descriptions.
const (
	DefaultLogLvl = util.InfoLevel

	// DefaultDelimiter separates components of names built without an
	// explicit delimiter
	DefaultDelimiter = string(names.DefaultDelimiter)

	// DefaultPathDelimiter separates the components of node full names
	DefaultPathDelimiter = string(names.PathDelimiter)

	// DefaultNameVariant is the representation used for full names
	DefaultNameVariant = string(names.StringVariant)
)

// Config contains runtime configuration values for names and the node tree.
type Config struct {
	LogLvl        util.LogLevel // Log level (Default info)
	Delimiter     string        `validate:"required,delimiter"`          // Delimiter of names parsed without one (Default ".")
	PathDelimiter string        `validate:"required,delimiter"`          // Delimiter of node full names (Default "/")
	NameVariant   string        `validate:"required,oneof=string array"` // Backing representation of full names (Default "string")
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	// LogLvl is a verbosity between 1 (error) and 5 (trace); out of range
	// values are clamped
	LogLvl        *int    `yaml:"log_lvl,omitempty" json:"log_lvl,omitempty"`
	Delimiter     *string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
	PathDelimiter *string `yaml:"path_delimiter,omitempty" json:"path_delimiter,omitempty"`
	NameVariant   *string `yaml:"name_variant,omitempty" json:"name_variant,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:        DefaultLogLvl,
		Delimiter:     DefaultDelimiter,
		PathDelimiter: DefaultPathDelimiter,
		NameVariant:   DefaultNameVariant,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = util.LevelFromVerbosity(*override.LogLvl)
	}
	if override.Delimiter != nil {
		c.Delimiter = *override.Delimiter
	}
	if override.PathDelimiter != nil {
		c.PathDelimiter = *override.PathDelimiter
	}
	if override.NameVariant != nil {
		c.NameVariant = *override.NameVariant
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// delimiter: exactly one printable character, not the escape character
	_ = v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		_, err := names.ParseDelimiter(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DelimiterRune returns Delimiter as a rune. Only meaningful after Validate.
func (c *Config) DelimiterRune() rune {
	return firstRune(c.Delimiter, names.DefaultDelimiter)
}

// PathDelimiterRune returns PathDelimiter as a rune. Only meaningful after Validate.
func (c *Config) PathDelimiterRune() rune {
	return firstRune(c.PathDelimiter, names.PathDelimiter)
}

// Variant returns NameVariant as a [names.Variant].
func (c *Config) Variant() names.Variant {
	return names.Variant(c.NameVariant)
}

func firstRune(s string, def rune) rune {
	if s == "" {
		return def
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new validated Config by merging file
// overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig(override)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
