package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cxxtract/internal/config"
	"cxxtract/internal/export"
	"cxxtract/internal/extract"
	"cxxtract/internal/model"
)

var (
	extractRepo         string
	extractRepoRoot     string
	extractOut          string
	extractManifest     string
	extractCompress     bool
	extractPointIDs     bool
	extractWorkers      int
	extractIncludeDecls bool
	extractExternCDecls bool
	extractNormalize    bool
	extractContinue     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <path>",
	Short: "Extract entities from a C++ file or directory tree",
	Long: `Extract walks a C++ source file or directory tree and emits one JSON
record per entity (class, struct, function) in deterministic order: source
order within a file, lexicographic repo-relative path order across files.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractRepo, "repo", "", "Repository name used in Global URIs (required)")
	extractCmd.Flags().StringVar(&extractRepoRoot, "repo-root", "", "Repository root for relative paths (default: the source's directory)")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output JSONL path (default: stdout)")
	extractCmd.Flags().StringVar(&extractManifest, "manifest", "", "Also write a YAML run manifest to this path")
	extractCmd.Flags().BoolVar(&extractCompress, "compress", false, "zstd-compress the output stream")
	extractCmd.Flags().BoolVar(&extractPointIDs, "point-ids", false, "Attach deterministic vector-store point IDs")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "Concurrent file workers (default: config, 1)")
	extractCmd.Flags().BoolVar(&extractIncludeDecls, "include-declarations", false, "Extract declaration-only functions everywhere")
	extractCmd.Flags().BoolVar(&extractExternCDecls, "extern-c-declarations", true, "Extract declaration-only functions inside extern \"C\" blocks")
	extractCmd.Flags().BoolVar(&extractNormalize, "normalize-docs", false, "Strip Doxygen delimiters from docstrings")
	extractCmd.Flags().BoolVar(&extractContinue, "continue-on-error", true, "Keep going when individual files fail")
	_ = extractCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	source := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyExtractFlags(cmd, cfg)

	logger, logCloser, err := newLogger()
	if err != nil {
		return err
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	root := extractRepoRoot
	if root == "" {
		root = source
	}
	if info, err := os.Stat(root); err == nil && info.IsDir() {
		if err := cfg.ApplyRepoOverrides(root); err != nil {
			return err
		}
	}

	extractor := extract.New(cfg, logger)

	var (
		entities []model.ExtractedEntity
		stats    model.ExtractionStats
	)
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	if info.IsDir() {
		entities, stats, err = extractor.ExtractDirectory(cmd.Context(), source, extractRepo, extractRepoRoot)
	} else {
		entities, err = extractor.ExtractFile(cmd.Context(), source, extractRepo, extractRepoRoot)
		stats = model.ExtractionStats{FilesProcessed: 1, EntitiesExtracted: len(entities)}
	}
	if err != nil {
		return err
	}

	opts := export.Options{Compress: extractCompress, PointIDs: extractPointIDs}
	if extractOut != "" {
		if err := export.WriteFile(extractOut, entities, opts); err != nil {
			return err
		}
	} else {
		if err := export.WriteJSONL(os.Stdout, entities, opts); err != nil {
			return err
		}
	}

	if extractManifest != "" {
		m := export.NewManifest(extractRepo, source, stats, len(entities))
		if err := export.WriteManifestFile(extractManifest, m); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "%d entities from %d files (%d failed, %d parse errors)\n",
			stats.EntitiesExtracted, stats.FilesProcessed, stats.FilesFailed, stats.ParseErrors)
	}
	return nil
}

// applyExtractFlags lays explicitly-set CLI flags over the loaded config.
func applyExtractFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("workers") && extractWorkers > 0 {
		cfg.Extraction.Workers = extractWorkers
	}
	if flags.Changed("include-declarations") {
		cfg.Extraction.IncludeDeclarations = extractIncludeDecls
	}
	if flags.Changed("extern-c-declarations") {
		cfg.Extraction.ExternCDeclarations = extractExternCDecls
	}
	if flags.Changed("normalize-docs") {
		cfg.Extraction.NormalizeDocstrings = extractNormalize
	}
	if flags.Changed("continue-on-error") {
		cfg.Extraction.ContinueOnError = extractContinue
	}
}
