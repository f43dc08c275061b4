package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// docCommentPrefixes mark documentation comments (Doxygen dialects).
var docCommentPrefixes = []string{"///", "/**", "//!", "/*!"}

// IsDocComment reports whether a comment's source text is a documentation
// comment. Anything else is a plain comment.
func IsDocComment(text string) bool {
	stripped := strings.TrimSpace(text)
	for _, prefix := range docCommentPrefixes {
		if strings.HasPrefix(stripped, prefix) {
			return true
		}
	}
	return false
}

// precedingComments collects the run of comments immediately preceding the
// outer node, walking named previous siblings backward until a non-comment
// or a blank-line gap. The run is emitted in source order joined by a single
// newline, raw text preserved. Doc-comment correlation is positional, not
// structural: a plain comment line interleaved with doc lines belongs to the
// same block as long as no blank line separates them.
//
// Returns nil when no adjacent comments exist.
func precedingComments(outer *sitter.Node, source []byte, normalize bool) *string {
	var collected []string
	expectedLine := int(outer.StartPoint().Row)

	for sib := outer.PrevNamedSibling(); sib != nil && sib.Type() == kindComment; sib = sib.PrevNamedSibling() {
		gap := expectedLine - int(sib.EndPoint().Row)
		if gap > 1 {
			break
		}
		collected = append(collected, decodeLossy(source[sib.StartByte():sib.EndByte()]))
		expectedLine = int(sib.StartPoint().Row)
	}

	if len(collected) == 0 {
		return nil
	}

	// Reverse into source order.
	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}

	joined := strings.Join(collected, "\n")
	if normalize {
		joined = CleanDoxygen(joined)
	}
	if joined == "" {
		return nil
	}
	return &joined
}

// CleanDoxygen strips documentation delimiters and leading continuation
// asterisks from a comment block:
//   - /// and //! at the start of each line
//   - /** and /*! opening markers
//   - trailing */ markers
//   - leading * on continuation lines of block comments
//
// Empty lines vanish; remaining lines are rejoined with single newlines.
func CleanDoxygen(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		s := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(s, "///"):
			s = s[3:]
		case strings.HasPrefix(s, "//!"):
			s = s[3:]
		case strings.HasPrefix(s, "/**"):
			s = s[3:]
		case strings.HasPrefix(s, "/*!"):
			s = s[3:]
		case strings.HasPrefix(s, "/*"):
			s = s[2:]
		case strings.HasPrefix(s, "//"):
			s = s[2:]
		}
		s = strings.TrimSpace(s)

		if strings.HasSuffix(s, "*/") {
			s = strings.TrimSpace(s[:len(s)-2])
		}

		if strings.HasPrefix(s, "*") {
			s = strings.TrimSpace(s[1:])
		}

		if s != "" {
			cleaned = append(cleaned, s)
		}
	}

	return strings.Join(cleaned, "\n")
}

// decodeLossy converts raw source bytes to valid UTF-8, replacing invalid
// sequences. Lossy replacement keeps extraction total and deterministic so
// downstream hashing agrees across runs.
func decodeLossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
