// Package parser owns the tree-sitter C++ parser used by the extraction core.
//
// Parsing is error tolerant: ill-formed input produces a tree with ERROR
// nodes instead of a failure. Only file-system problems surface as errors.
package parser

import (
	"context"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	xerrors "cxxtract/internal/errors"
)

// Parser wraps a reusable tree-sitter parser bound to the C++ grammar.
// A Parser is single-goroutine-owned; callers that parallelize across files
// keep one Parser per worker.
type Parser struct {
	parser *sitter.Parser
}

// New creates a parser bound to the C++ grammar.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &Parser{parser: p}
}

// ParseBytes parses raw C++ source bytes. Syntax errors never fail the call;
// the returned tree marks error regions with ERROR nodes.
func (p *Parser) ParseBytes(ctx context.Context, source []byte) (*sitter.Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		// ParseCtx fails only on cancellation, never on bad syntax.
		return nil, xerrors.New(xerrors.InternalError, "parse aborted", err)
	}
	return tree, nil
}

// ParseFile reads and parses a C++ source file in binary mode. It fails only
// with FILE_NOT_FOUND or READ_ERROR, or with INTERNAL_ERROR when ctx cancels
// the parse; syntax errors are tolerated.
func (p *Parser) ParseFile(ctx context.Context, path string) (*sitter.Tree, []byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, xerrors.New(xerrors.FileNotFound, "file not found", err).WithPath(path)
		}
		return nil, nil, xerrors.New(xerrors.ReadError, "cannot read file", err).WithPath(path)
	}

	tree, err := p.ParseBytes(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	return tree, source, nil
}

// CountErrorNodes walks a tree and counts ERROR and missing nodes. The count
// feeds the run's parse_errors diagnostic; it never fails extraction.
func CountErrorNodes(tree *sitter.Tree) int {
	return countErrors(tree.RootNode())
}

func countErrors(n *sitter.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	if n.Type() == "ERROR" || n.IsMissing() {
		count++
	}
	// Subtrees without error markers need no visit.
	if n.HasError() {
		for i := 0; i < int(n.ChildCount()); i++ {
			count += countErrors(n.Child(i))
		}
	}
	return count
}
