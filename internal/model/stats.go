package model

import "fmt"

// ExtractionStats holds per-run counters. Counters are monotonic and never
// reset mid-run.
type ExtractionStats struct {
	FilesProcessed    int `json:"files_processed" yaml:"files_processed"`
	FilesFailed       int `json:"files_failed" yaml:"files_failed"`
	EntitiesExtracted int `json:"entities_extracted" yaml:"entities_extracted"`
	ParseErrors       int `json:"parse_errors" yaml:"parse_errors"`
}

// Add folds another stats record into this one.
func (s *ExtractionStats) Add(other ExtractionStats) {
	s.FilesProcessed += other.FilesProcessed
	s.FilesFailed += other.FilesFailed
	s.EntitiesExtracted += other.EntitiesExtracted
	s.ParseErrors += other.ParseErrors
}

// ToMap converts stats to a uniform key/value form.
func (s *ExtractionStats) ToMap() map[string]int {
	return map[string]int{
		"files_processed":    s.FilesProcessed,
		"files_failed":       s.FilesFailed,
		"entities_extracted": s.EntitiesExtracted,
		"parse_errors":       s.ParseErrors,
	}
}

func (s *ExtractionStats) String() string {
	return fmt.Sprintf(
		"ExtractionStats(processed=%d, failed=%d, entities=%d, parse_errors=%d)",
		s.FilesProcessed, s.FilesFailed, s.EntitiesExtracted, s.ParseErrors,
	)
}
