// Package config holds the extraction settings and their loading rules.
//
// Precedence: CLI flags > CXXTRACT_* environment variables > config file >
// defaults. A repo may additionally carry a .cxxtract.toml with local
// overrides (extra extensions, extra excluded directories).
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete cxxtract configuration
type Config struct {
	Extraction ExtractionConfig `json:"extraction" mapstructure:"extraction"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// ExtractionConfig governs file discovery and entity extraction policy
type ExtractionConfig struct {
	// Extensions is the set of file extensions treated as C++ sources
	Extensions []string `json:"extensions" mapstructure:"extensions"`

	// ExcludeDirs is the set of directory names skipped during discovery
	ExcludeDirs []string `json:"excludeDirs" mapstructure:"excludeDirs"`

	// IncludeDeclarations extracts declaration-only functions everywhere
	IncludeDeclarations bool `json:"includeDeclarations" mapstructure:"includeDeclarations"`

	// ExternCDeclarations extracts declaration-only functions inside
	// extern "C" blocks even when IncludeDeclarations is off
	ExternCDeclarations bool `json:"externCDeclarations" mapstructure:"externCDeclarations"`

	// NormalizeDocstrings strips Doxygen delimiters from collected docstrings
	NormalizeDocstrings bool `json:"normalizeDocstrings" mapstructure:"normalizeDocstrings"`

	// ContinueOnError keeps a directory run going past failing files
	ContinueOnError bool `json:"continueOnError" mapstructure:"continueOnError"`

	// Workers is the number of files processed concurrently; each worker
	// owns its own parser
	Workers int `json:"workers" mapstructure:"workers"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
	File  string `json:"file,omitempty" mapstructure:"file"`
}

// DefaultExtensions is the default C++ source/header extension set.
var DefaultExtensions = []string{".cpp", ".cc", ".cxx", ".h", ".hpp", ".hxx"}

// DefaultExcludeDirs is the default set of directory names skipped during
// discovery.
var DefaultExcludeDirs = []string{
	".git", "build", "cmake-build-debug", "cmake-build-release",
	"node_modules", ".vscode", ".idea", "__pycache__",
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			Extensions:          append([]string(nil), DefaultExtensions...),
			ExcludeDirs:         append([]string(nil), DefaultExcludeDirs...),
			IncludeDeclarations: false,
			ExternCDeclarations: true,
			NormalizeDocstrings: false,
			ContinueOnError:     true,
			Workers:             1,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads configuration from an optional file path plus the environment.
// An empty path loads environment overrides on top of defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CXXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("extraction.extensions", def.Extraction.Extensions)
	v.SetDefault("extraction.excludeDirs", def.Extraction.ExcludeDirs)
	v.SetDefault("extraction.includeDeclarations", def.Extraction.IncludeDeclarations)
	v.SetDefault("extraction.externCDeclarations", def.Extraction.ExternCDeclarations)
	v.SetDefault("extraction.normalizeDocstrings", def.Extraction.NormalizeDocstrings)
	v.SetDefault("extraction.continueOnError", def.Extraction.ContinueOnError)
	v.SetDefault("extraction.workers", def.Extraction.Workers)
	v.SetDefault("logging.level", def.Logging.Level)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize repairs values a config file could have zeroed out.
func (c *Config) normalize() {
	if len(c.Extraction.Extensions) == 0 {
		c.Extraction.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if c.Extraction.Workers < 1 {
		c.Extraction.Workers = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
}

// HasExtension reports whether the extension ext (as returned by
// filepath.Ext) is in the configured set. Matching is case-insensitive.
func (c *ExtractionConfig) HasExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range c.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// IsExcludedDir reports whether a directory name is skipped during discovery.
func (c *ExtractionConfig) IsExcludedDir(name string) bool {
	for _, d := range c.ExcludeDirs {
		if d == name {
			return true
		}
	}
	return false
}
