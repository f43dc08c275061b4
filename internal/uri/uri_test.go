package uri

import (
	"testing"

	"cxxtract/internal/model"
)

func TestCreate(t *testing.T) {
	got := Create("demo", "src/math.cpp", model.EntityFunction, "math::add")
	want := "demo::src/math.cpp::Function::math::add"
	if got != want {
		t.Errorf("Create = %q, want %q", got, want)
	}
}

func TestCreate_Deterministic(t *testing.T) {
	a := Create("repo", "a/b.h", model.EntityClass, "ns::Widget")
	b := Create("repo", "a/b.h", model.EntityClass, "ns::Widget")
	if a != b {
		t.Errorf("identical inputs must produce byte-identical URIs: %q != %q", a, b)
	}
}

func TestCreate_OverloadsCollide(t *testing.T) {
	// Overloaded functions collide by design; the semantic layer must be able
	// to derive the same URI without seeing parameter types.
	a := Create("repo", "net.cpp", model.EntityFunction, "Conn::Send")
	b := Create("repo", "net.cpp", model.EntityFunction, "Conn::Send")
	if a != b {
		t.Errorf("overloads must share a URI: %q != %q", a, b)
	}
}

func TestParse_Roundtrip(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want Parsed
	}{
		{
			name: "plain function",
			uri:  "demo::src/a.cpp::Function::foo",
			want: Parsed{"demo", "src/a.cpp", model.EntityFunction, "foo"},
		},
		{
			name: "qualified name keeps internal separators",
			uri:  "demo::inc/g.h::Class::geo::shapes::Circle",
			want: Parsed{"demo", "inc/g.h", model.EntityClass, "geo::shapes::Circle"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.uri)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse("repo::file.cpp::Function"); err == nil {
		t.Error("expected error for URI with too few segments")
	}
}

func TestNormalizeEntityName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "foo", "foo"},
		{"surrounding whitespace", "  Widget  ", "Widget"},
		{"spaced scope separators", "outer :: inner :: Name", "outer::inner::Name"},
		{"destructor spacing", "Widget:: ~Widget", "Widget::~Widget"},
		{"operator equality", "operator ==", "operator=="},
		{"operator subscript", "operator [ ]", "operator[]"},
		{"operator new keeps token gap", "operator new", "operator new"},
		{"conversion operator", "operator unsigned long", "operator unsigned long"},
		{"internal newline", "Stack\n<T>", "Stack<T>"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeEntityName(tt.in); got != tt.want {
				t.Errorf("NormalizeEntityName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeterministicUUID(t *testing.T) {
	u := "demo::src/a.cpp::Function::foo"
	a := DeterministicUUID(u)
	b := DeterministicUUID(u)
	if a != b {
		t.Errorf("same URI must derive the same UUID: %s != %s", a, b)
	}
	if a == DeterministicUUID("demo::src/a.cpp::Function::bar") {
		t.Error("different URIs must derive different UUIDs")
	}
}
