package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"cxxtract/internal/uri"
)

// functionName extracts the canonical name from a function_definition node.
// Returns "" when no name can be determined.
func functionName(node *sitter.Node, source []byte) string {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return ""
	}

	if name := declaratorName(declarator, source); name != "" {
		return uri.NormalizeEntityName(name)
	}

	// Fallback: everything before the parameter list. Covers declarator
	// shapes the descent doesn't recognize.
	raw := declarator.Content(source)
	if i := strings.IndexByte(raw, '('); i >= 0 {
		raw = raw[:i]
	}
	return uri.NormalizeEntityName(raw)
}

// declaratorName descends a declarator subtree to its innermost name-bearing
// node: plain identifiers, qualified identifiers (kept verbatim), destructor
// names, operator names, conversion operators and field identifiers.
func declaratorName(n *sitter.Node, source []byte) string {
	for n != nil {
		if nameBearingKinds[n.Type()] {
			return n.Content(source)
		}
		if !declaratorWrapperKinds[n.Type()] {
			return ""
		}
		inner := n.ChildByFieldName("declarator")
		if inner == nil {
			inner = firstNamedChild(n)
		}
		n = inner
	}
	return ""
}

// classStructName reads the name field of a class/struct specifier.
// Anonymous specifiers have no name field and return "".
func classStructName(node *sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return uri.NormalizeEntityName(name.Content(source))
}

// namespaceName reads the name of a namespace_definition. Anonymous
// namespaces return "". C++17 nested specifiers (namespace a::b) come back
// verbatim and qualify later entities as one segment.
func namespaceName(node *sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return uri.NormalizeEntityName(name.Content(source))
}

// declarationFunctionName extracts the name from a declaration node holding a
// function prototype. Returns "" when the declaration is not a function.
func declarationFunctionName(node *sitter.Node, source []byte) string {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return ""
	}

	if declarator.Type() == kindFunctionDeclarator {
		return uri.NormalizeEntityName(declaratorName(declarator, source))
	}

	// Some forms are wrapped one level deeper (e.g. pointer returns).
	inner := declarator.ChildByFieldName("declarator")
	if inner != nil && inner.Type() == kindFunctionDeclarator {
		return uri.NormalizeEntityName(declaratorName(inner, source))
	}
	return ""
}

// qualify prepends the active namespace stack onto a name.
func qualify(nsStack []string, name string) string {
	if len(nsStack) == 0 {
		return name
	}
	return strings.Join(nsStack, uri.Separator) + uri.Separator + name
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	if n.NamedChildCount() == 0 {
		return nil
	}
	return n.NamedChild(0)
}
