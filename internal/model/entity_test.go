package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestExtractedEntity_JSONFieldNames(t *testing.T) {
	doc := "/// adds two ints"
	e := ExtractedEntity{
		GlobalURI:   "demo::src/math.cpp::Function::math::add",
		RepoName:    "demo",
		FilePath:    "src/math.cpp",
		EntityType:  EntityFunction,
		EntityName:  "math::add",
		Docstring:   &doc,
		CodeText:    "int add(int a, int b) { return a + b; }",
		StartLine:   4,
		EndLine:     4,
		IsTemplated: false,
	}

	data, err := json.Marshal(&e)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{
		"global_uri", "repo_name", "file_path", "entity_type", "entity_name",
		"docstring", "code_text", "start_line", "end_line", "is_templated",
	} {
		if !strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("serialized record missing field %q: %s", field, data)
		}
	}
}

func TestExtractedEntity_NullDocstring(t *testing.T) {
	e := ExtractedEntity{EntityType: EntityClass}
	data, err := json.Marshal(&e)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"docstring":null`) {
		t.Errorf("absent docstring should serialize as null: %s", data)
	}
	if e.Doc() != "" {
		t.Errorf("Doc() on absent docstring = %q, want empty", e.Doc())
	}
}

func TestExtractedEntity_ToMap(t *testing.T) {
	e := ExtractedEntity{
		GlobalURI:  "r::f.h::Struct::S",
		EntityType: EntityStruct,
		EntityName: "S",
		StartLine:  1,
		EndLine:    3,
	}
	m := e.ToMap()
	if m["entity_type"] != "Struct" {
		t.Errorf("entity_type = %v, want Struct", m["entity_type"])
	}
	if m["docstring"] != nil {
		t.Errorf("docstring = %v, want nil", m["docstring"])
	}
	if m["start_line"] != 1 || m["end_line"] != 3 {
		t.Errorf("line span = %v..%v, want 1..3", m["start_line"], m["end_line"])
	}
}

func TestExtractionStats_Add(t *testing.T) {
	a := ExtractionStats{FilesProcessed: 2, EntitiesExtracted: 5, ParseErrors: 1}
	b := ExtractionStats{FilesProcessed: 1, FilesFailed: 1, EntitiesExtracted: 3}
	a.Add(b)

	want := ExtractionStats{FilesProcessed: 3, FilesFailed: 1, EntitiesExtracted: 8, ParseErrors: 1}
	if a != want {
		t.Errorf("Add = %+v, want %+v", a, want)
	}
	if got := a.String(); !strings.Contains(got, "processed=3") {
		t.Errorf("String() = %q", got)
	}
}
