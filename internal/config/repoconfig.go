package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// RepoConfigName is the optional per-repository override file.
const RepoConfigName = ".cxxtract.toml"

// repoOverrides is the schema of .cxxtract.toml.
type repoOverrides struct {
	Extraction struct {
		ExtraExtensions  []string `toml:"extra_extensions"`
		ExtraExcludeDirs []string `toml:"extra_exclude_dirs"`
	} `toml:"extraction"`
}

// ApplyRepoOverrides merges a repository's .cxxtract.toml, when present, into
// the configuration. A missing file is not an error; a malformed one is.
func (c *Config) ApplyRepoOverrides(repoRoot string) error {
	path := filepath.Join(repoRoot, RepoConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var o repoOverrides
	if err := toml.Unmarshal(data, &o); err != nil {
		return err
	}

	for _, ext := range o.Extraction.ExtraExtensions {
		if !c.Extraction.HasExtension(ext) {
			c.Extraction.Extensions = append(c.Extraction.Extensions, ext)
		}
	}
	for _, dir := range o.Extraction.ExtraExcludeDirs {
		if !c.Extraction.IsExcludedDir(dir) {
			c.Extraction.ExcludeDirs = append(c.Extraction.ExcludeDirs, dir)
		}
	}
	return nil
}
