// Package uri implements the Global URI identity contract shared between the
// structural extraction layer and the semantic (.scip) layer.
//
// The URI is a literal join: Repo::FilePath::EntityType::EntityName. No
// escaping is applied; the first two segments are positional, so the `::`
// that appears inside qualified entity names is unambiguous. Overloaded
// functions intentionally collide: the semantic layer must be able to derive
// the same URI for the same entity, so this layer never disambiguates.
package uri

import (
	"strings"

	"github.com/google/uuid"

	"cxxtract/internal/errors"
	"cxxtract/internal/model"
)

// Separator joins URI segments and name qualifiers.
const Separator = "::"

// pointNamespace is the fixed uuid5 namespace for vector-store point IDs.
// Changing it breaks the join with every previously ingested snapshot.
var pointNamespace = uuid.MustParse("8a6e0804-2bd0-4672-b79d-d97027f9071a")

// Parsed holds the components of a Global URI.
type Parsed struct {
	RepoName   string
	FilePath   string
	EntityType model.EntityType
	EntityName string
}

// Create assembles a Global URI from already-normalized components.
func Create(repoName, filePath string, entityType model.EntityType, entityName string) string {
	return repoName + Separator + filePath + Separator + string(entityType) + Separator + NormalizeEntityName(entityName)
}

// Parse splits a Global URI back into components. The entity name keeps its
// internal `::` qualifiers.
func Parse(globalURI string) (Parsed, error) {
	parts := strings.Split(globalURI, Separator)
	if len(parts) < 4 {
		return Parsed{}, errors.Newf(errors.InvalidInput, "malformed global URI: %q", globalURI)
	}
	return Parsed{
		RepoName:   parts[0],
		FilePath:   parts[1],
		EntityType: model.EntityType(parts[2]),
		EntityName: strings.Join(parts[3:], Separator),
	}, nil
}

// DeterministicUUID derives the vector-store point ID for a Global URI.
// Downstream ingesters own this derivation; it lives here so both sides of
// the pipeline agree on one rule.
func DeterministicUUID(globalURI string) string {
	return uuid.NewSHA1(pointNamespace, []byte(globalURI)).String()
}

// NormalizeEntityName canonicalizes a C++ entity name into a URI-safe form so
// that trivial whitespace variation between parsers cannot fork identities.
//
// Whitespace runs are deleted, except that a single space survives where both
// neighbors are identifier characters (``operator new``, ``operator unsigned
// long``): deleting those would merge distinct tokens.
func NormalizeEntityName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	runes := []rune(name)
	i := 0
	for i < len(runes) {
		if !isSpace(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && isSpace(runes[j]) {
			j++
		}
		// Run of whitespace from i to j-1. Keep one space only between
		// identifier characters.
		if i > 0 && j < len(runes) && isWordChar(runes[i-1]) && isWordChar(runes[j]) {
			b.WriteByte(' ')
		}
		i = j
	}
	return b.String()
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
