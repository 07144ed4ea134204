package extractor

import (
	sitter "github.com/smacker/go-tree-sitter"

	"modelguard/internal/ir"
)

// Markers is the single configurable point of "what counts as a model":
// a class/struct is recognized when it inherits one of Bases or is
// decorated with one of Decorators. When both lists are empty, every
// definition with extractable fields counts.
type Markers struct {
	Bases      []string
	Decorators []string
}

// LanguageExtractor defines the interface each language front end must
// implement to turn syntax-tree nodes into model definitions.
type LanguageExtractor interface {
	GetLanguage() *sitter.Language
	GetQuery() string
	ExtractModel(node *sitter.Node, source []byte, file string, markers Markers) (*ir.Model, []ir.Skipped)
}
