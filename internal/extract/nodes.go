// Package extract walks tree-sitter C++ syntax trees and produces the
// canonical entity stream: classes, structs and functions with their
// attached documentation and a deterministic Global URI.
package extract

import "cxxtract/internal/model"

// Node kinds of the tree-sitter C++ grammar the traversal dispatches on.
const (
	kindTranslationUnit     = "translation_unit"
	kindTemplateDeclaration = "template_declaration"
	kindNamespaceDefinition = "namespace_definition"
	kindLinkageSpecification = "linkage_specification"
	kindDeclaration         = "declaration"
	kindComment             = "comment"
	kindClassSpecifier      = "class_specifier"
	kindStructSpecifier     = "struct_specifier"
	kindFunctionDefinition  = "function_definition"
	kindFunctionDeclarator  = "function_declarator"
)

// entityKinds maps target node kinds to the entity type they produce.
var entityKinds = map[string]model.EntityType{
	kindClassSpecifier:     model.EntityClass,
	kindStructSpecifier:    model.EntityStruct,
	kindFunctionDefinition: model.EntityFunction,
}

// containerKinds are nodes whose children may host top-level entities.
// Class/struct bodies are deliberately absent: nested entities ride inside
// their enclosing entity's code text and are never walked.
var containerKinds = map[string]bool{
	kindTranslationUnit: true,
	"declaration_list":  true, // namespace / linkage body
}

// preprocContainerKinds are preprocessor groups traversed transparently.
// Conditional branches are traversed as-is; no macro expansion.
var preprocContainerKinds = map[string]bool{
	"preproc_ifdef":  true,
	"preproc_ifndef": true,
	"preproc_if":     true,
	"preproc_elif":   true,
	"preproc_else":   true,
}

// declaratorWrapperKinds are declarator shells descended through on the way
// to the innermost name-bearing node.
var declaratorWrapperKinds = map[string]bool{
	kindFunctionDeclarator:     true,
	"pointer_declarator":       true,
	"reference_declarator":     true,
	"parenthesized_declarator": true,
}

// nameBearingKinds are the declarator leaves accepted as entity names.
var nameBearingKinds = map[string]bool{
	"identifier":           true,
	"field_identifier":     true,
	"qualified_identifier": true,
	"destructor_name":      true,
	"operator_name":        true,
	"operator_cast":        true, // conversion operator
	"type_identifier":      true,
	"template_function":    true,
}
