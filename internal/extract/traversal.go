package extract

import (
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"cxxtract/internal/model"
	"cxxtract/internal/uri"
)

// Options are the extraction policy switches.
type Options struct {
	// IncludeDeclarations emits declaration-only functions everywhere.
	IncludeDeclarations bool
	// ExternCDeclarations emits declaration-only functions found inside
	// extern "C" blocks even when IncludeDeclarations is off.
	ExternCDeclarations bool
	// NormalizeDocstrings strips Doxygen delimiters from docstrings.
	NormalizeDocstrings bool
}

// FileResult is the outcome of extracting one parsed file.
type FileResult struct {
	Entities []model.ExtractedEntity
	// ParseErrors counts error nodes in the tree plus entity candidates
	// dropped because their name could not be recovered from an error region.
	ParseErrors int
}

// traverser carries the per-file state threaded through the recursive walk.
// The namespace stack is an explicit parameter, never shared state.
type traverser struct {
	source   []byte
	repoName string
	filePath string
	opts     Options
	logger   *slog.Logger

	entities   []model.ExtractedEntity
	nameErrors int
}

// ExtractTree walks a parsed syntax tree and returns all entities in source
// order. Entities inside error regions are still emitted when nameable.
// The returned ParseErrors counts only the unnameable candidates; the tree's
// error-node census is added by the file-level extractor.
func ExtractTree(tree *sitter.Tree, source []byte, repoName, filePath string, opts Options, logger *slog.Logger) FileResult {
	t := &traverser{
		source:   source,
		repoName: repoName,
		filePath: filePath,
		opts:     opts,
		logger:   logger,
	}
	t.walk(tree.RootNode(), nil, false)
	return FileResult{Entities: t.entities, ParseErrors: t.nameErrors}
}

// walk dispatches every named child of a container node.
func (t *traverser) walk(node *sitter.Node, nsStack []string, externContext bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		t.dispatch(node.NamedChild(i), nsStack, externContext)
	}
}

func (t *traverser) dispatch(child *sitter.Node, nsStack []string, externContext bool) {
	switch {
	case child.Type() == kindTemplateDeclaration:
		t.handleTemplate(child, nsStack, externContext)

	case child.Type() == kindNamespaceDefinition:
		t.handleNamespace(child, nsStack, externContext)

	case child.Type() == kindLinkageSpecification:
		// extern "C" { ... } is transparent: no namespace segment, but
		// declaration policy may change inside.
		if body := child.ChildByFieldName("body"); body != nil {
			if containerKinds[body.Type()] {
				t.walk(body, nsStack, true)
			} else {
				t.dispatch(body, nsStack, true)
			}
		}

	case child.Type() == kindDeclaration:
		t.handleDeclaration(child, child, nsStack, externContext)

	case entityKinds[child.Type()] != "":
		t.extractEntity(child, child, nsStack)

	case preprocContainerKinds[child.Type()]:
		// Conditional branches are traversed as-is; both sides of an #if
		// contribute entities.
		t.walk(child, nsStack, externContext)

	case containerKinds[child.Type()]:
		t.walk(child, nsStack, externContext)
	}
}

func (t *traverser) handleNamespace(node *sitter.Node, nsStack []string, externContext bool) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	name := namespaceName(node, t.source)
	next := nsStack
	if name != "" {
		next = append(append([]string(nil), nsStack...), name)
	}
	// Anonymous namespaces contribute no segment.
	t.walk(body, next, externContext)
}

// handleTemplate extracts the entity wrapped by a template_declaration,
// using the template node itself for doc-comment search, byte range and line
// range so the emitted record includes the template<...> prefix.
func (t *traverser) handleTemplate(tmpl *sitter.Node, nsStack []string, externContext bool) {
	for i := 0; i < int(tmpl.NamedChildCount()); i++ {
		inner := tmpl.NamedChild(i)

		if entityKinds[inner.Type()] != "" {
			t.extractEntity(inner, tmpl, nsStack)
			return
		}

		if inner.Type() == kindDeclaration {
			t.handleDeclaration(inner, tmpl, nsStack, externContext)
			return
		}
	}
}

// handleDeclaration unwraps declaration nodes: a wrapped class/struct
// specifier with a body is extracted as the entity; a bare function
// prototype is extracted only under the declaration policy switches.
func (t *traverser) handleDeclaration(decl, outer *sitter.Node, nsStack []string, externContext bool) {
	if typeNode := decl.ChildByFieldName("type"); typeNode != nil && entityKinds[typeNode.Type()] != "" {
		t.extractEntity(typeNode, outer, nsStack)
		return
	}

	if !t.shouldExtractDeclaration(externContext) {
		return
	}
	t.extractFunctionDeclaration(decl, outer, nsStack)
}

func (t *traverser) shouldExtractDeclaration(externContext bool) bool {
	return t.opts.IncludeDeclarations || (externContext && t.opts.ExternCDeclarations)
}

// extractEntity emits one record for a class/struct/function node. The outer
// node (template wrapper when present, else the entity itself) governs
// comment search, byte range and line range.
func (t *traverser) extractEntity(inner, outer *sitter.Node, nsStack []string) {
	var (
		entityType model.EntityType
		name       string
	)

	if et, n, ok := macroBrokenClass(inner, t.source); ok {
		// `class EXPORT_MACRO Name { ... }` misparses as a function
		// definition; recover the class identity from the leading keyword.
		entityType, name = et, n
		t.logger.Debug("recovered macro-broken specifier",
			"file", t.filePath, "name", n, "line", int(inner.StartPoint().Row)+1)
	} else {
		switch inner.Type() {
		case kindFunctionDefinition:
			if inner.ChildByFieldName("body") == nil {
				t.logger.Debug("skipping function declaration",
					"file", t.filePath, "line", int(inner.StartPoint().Row)+1)
				return
			}
			entityType = model.EntityFunction
			name = functionName(inner, t.source)
		case kindClassSpecifier, kindStructSpecifier:
			if inner.ChildByFieldName("body") == nil {
				// Forward declaration.
				t.logger.Debug("skipping forward declaration",
					"file", t.filePath, "line", int(inner.StartPoint().Row)+1)
				return
			}
			entityType = entityKinds[inner.Type()]
			name = classStructName(inner, t.source)
		default:
			return
		}
	}

	if name == "" {
		if inner.HasError() || outer.HasError() {
			// An error region swallowed the declarator.
			t.nameErrors++
		}
		t.logger.Debug("dropping unnameable entity",
			"file", t.filePath, "kind", inner.Type(), "line", int(inner.StartPoint().Row)+1)
		return
	}

	t.emit(entityType, name, outer, nsStack)
}

// extractFunctionDeclaration emits a record for a declaration-only function.
func (t *traverser) extractFunctionDeclaration(decl, outer *sitter.Node, nsStack []string) {
	name := declarationFunctionName(decl, t.source)
	if name == "" {
		return
	}
	t.emit(model.EntityFunction, name, outer, nsStack)
}

func (t *traverser) emit(entityType model.EntityType, name string, outer *sitter.Node, nsStack []string) {
	qualified := uri.NormalizeEntityName(qualify(nsStack, name))
	if qualified == "" {
		return
	}

	docstring := precedingComments(outer, t.source, t.opts.NormalizeDocstrings)
	if docstring != nil && !t.opts.NormalizeDocstrings && !IsDocComment(*docstring) {
		t.logger.Debug("entity documented by plain comments only",
			"name", qualified, "file", t.filePath)
	}

	entity := model.ExtractedEntity{
		GlobalURI:   uri.Create(t.repoName, t.filePath, entityType, qualified),
		RepoName:    t.repoName,
		FilePath:    t.filePath,
		EntityType:  entityType,
		EntityName:  qualified,
		Docstring:   docstring,
		CodeText:    decodeLossy(t.source[outer.StartByte():outer.EndByte()]),
		StartLine:   int(outer.StartPoint().Row) + 1,
		EndLine:     int(outer.EndPoint().Row) + 1,
		IsTemplated: outer.Type() == kindTemplateDeclaration,
	}
	t.entities = append(t.entities, entity)

	t.logger.Debug("extracted entity",
		"type", string(entityType), "name", qualified,
		"file", t.filePath, "line", entity.StartLine)
}

// macroBrokenClass detects a function_definition that is really a class or
// struct broken by an interleaved macro (`class MACRO Name { ... }`).
func macroBrokenClass(node *sitter.Node, source []byte) (model.EntityType, string, bool) {
	if node.Type() != kindFunctionDefinition {
		return "", "", false
	}

	text := strings.TrimSpace(decodeLossy(source[node.StartByte():node.EndByte()]))
	var entityType model.EntityType
	switch {
	case strings.HasPrefix(text, "class "):
		entityType = model.EntityClass
	case strings.HasPrefix(text, "struct "):
		entityType = model.EntityStruct
	default:
		return "", "", false
	}

	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return "", "", false
	}
	name := uri.NormalizeEntityName(declarator.Content(source))
	if name == "" {
		return "", "", false
	}
	return entityType, name, true
}
