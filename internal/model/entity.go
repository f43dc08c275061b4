// Package model defines the records produced by the structural extraction core.
package model

// EntityType classifies an extracted entity by its syntactic node kind.
type EntityType string

const (
	// EntityClass is a class_specifier with a body
	EntityClass EntityType = "Class"
	// EntityStruct is a struct_specifier with a body
	EntityStruct EntityType = "Struct"
	// EntityFunction is a function definition (or, by policy, a declaration)
	EntityFunction EntityType = "Function"
)

// ExtractedEntity represents a single extracted C++ entity.
//
// Records are created once during traversal and never mutated. GlobalURI is
// the primary key downstream; it must be byte-identical across runs and
// across the syntactic and semantic extraction layers.
type ExtractedEntity struct {
	GlobalURI   string     `json:"global_uri"`
	RepoName    string     `json:"repo_name"`
	FilePath    string     `json:"file_path"`
	EntityType  EntityType `json:"entity_type"`
	EntityName  string     `json:"entity_name"`
	Docstring   *string    `json:"docstring"`
	CodeText    string     `json:"code_text"`
	StartLine   int        `json:"start_line"`
	EndLine     int        `json:"end_line"`
	IsTemplated bool       `json:"is_templated"`
}

// Doc returns the docstring text, or "" when absent.
func (e *ExtractedEntity) Doc() string {
	if e.Docstring == nil {
		return ""
	}
	return *e.Docstring
}

// ToMap converts the entity to a uniform key/value form ready for JSON
// serialization or database insertion. Field names match the serialized
// record contract.
func (e *ExtractedEntity) ToMap() map[string]any {
	var doc any
	if e.Docstring != nil {
		doc = *e.Docstring
	}
	return map[string]any{
		"global_uri":   e.GlobalURI,
		"repo_name":    e.RepoName,
		"file_path":    e.FilePath,
		"entity_type":  string(e.EntityType),
		"entity_name":  e.EntityName,
		"docstring":    doc,
		"code_text":    e.CodeText,
		"start_line":   e.StartLine,
		"end_line":     e.EndLine,
		"is_templated": e.IsTemplated,
	}
}
