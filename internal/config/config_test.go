package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Extraction.HasExtension(".cpp") || !cfg.Extraction.HasExtension(".hxx") {
		t.Errorf("default extensions missing C++ members: %v", cfg.Extraction.Extensions)
	}
	if cfg.Extraction.HasExtension(".py") {
		t.Error(".py should not be a C++ extension")
	}
	if !cfg.Extraction.IsExcludedDir(".git") || !cfg.Extraction.IsExcludedDir("cmake-build-debug") {
		t.Errorf("default exclusions missing members: %v", cfg.Extraction.ExcludeDirs)
	}
	if cfg.Extraction.IncludeDeclarations {
		t.Error("IncludeDeclarations should default to false")
	}
	if !cfg.Extraction.ExternCDeclarations {
		t.Error("ExternCDeclarations should default to true")
	}
	if !cfg.Extraction.ContinueOnError {
		t.Error("ContinueOnError should default to true")
	}
	if cfg.Extraction.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Extraction.Workers)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cxxtract.yaml")
	content := []byte(`
extraction:
  includeDeclarations: true
  workers: 4
logging:
  level: debug
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Extraction.IncludeDeclarations {
		t.Error("includeDeclarations not read from file")
	}
	if cfg.Extraction.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Extraction.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// File did not touch extensions, defaults must survive.
	if !cfg.Extraction.HasExtension(".cc") {
		t.Errorf("extensions lost defaults: %v", cfg.Extraction.Extensions)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Extraction.Workers != 1 {
		t.Errorf("Workers = %d, want default 1", cfg.Extraction.Workers)
	}
}

func TestApplyRepoOverrides(t *testing.T) {
	root := t.TempDir()
	content := []byte(`
[extraction]
extra_extensions = [".inl"]
extra_exclude_dirs = ["third_party"]
`)
	if err := os.WriteFile(filepath.Join(root, RepoConfigName), content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := cfg.ApplyRepoOverrides(root); err != nil {
		t.Fatalf("ApplyRepoOverrides failed: %v", err)
	}
	if !cfg.Extraction.HasExtension(".inl") {
		t.Errorf("extra extension not merged: %v", cfg.Extraction.Extensions)
	}
	if !cfg.Extraction.IsExcludedDir("third_party") {
		t.Errorf("extra exclude dir not merged: %v", cfg.Extraction.ExcludeDirs)
	}
}

func TestApplyRepoOverrides_MissingFile(t *testing.T) {
	cfg := Default()
	before := len(cfg.Extraction.Extensions)
	if err := cfg.ApplyRepoOverrides(t.TempDir()); err != nil {
		t.Fatalf("missing override file should not error: %v", err)
	}
	if len(cfg.Extraction.Extensions) != before {
		t.Error("config changed without an override file")
	}
}

func TestApplyRepoOverrides_Malformed(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, RepoConfigName), []byte("not = [toml"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Default().ApplyRepoOverrides(root); err == nil {
		t.Error("malformed override file should error")
	}
}
