package export

import (
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"cxxtract/internal/model"
	"cxxtract/internal/version"
)

// Manifest describes one extraction run. It rides alongside the JSONL stream
// so ingesters can sanity-check counts before upserting.
type Manifest struct {
	RunID       string `yaml:"run_id"`
	RepoName    string `yaml:"repo_name"`
	Source      string `yaml:"source"`
	GeneratedAt string `yaml:"generated_at"`
	ToolVersion string `yaml:"tool_version"`
	Entities    int    `yaml:"entities"`

	Stats model.ExtractionStats `yaml:"stats"`
}

// NewManifest builds a manifest for a completed run.
func NewManifest(repoName, source string, stats model.ExtractionStats, entityCount int) Manifest {
	return Manifest{
		RunID:       uuid.NewString(),
		RepoName:    repoName,
		Source:      source,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ToolVersion: version.Version,
		Entities:    entityCount,
		Stats:       stats,
	}
}

// WriteManifestFile writes the manifest as YAML.
func WriteManifestFile(path string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
