package extractor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"modelguard/internal/ir"
)

// ParseError means a snapshot's source text is not syntactically
// well-formed. It aborts the run; a file with zero recognized models
// is a valid empty contribution, not an error.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Extractor turns source snapshots into model sets using a
// language-specific front end.
type Extractor struct {
	langExtractor LanguageExtractor
	markers       Markers
	logger        *zap.Logger
}

// New creates an extractor for a given language.
func New(lang string, markers Markers, logger *zap.Logger) (*Extractor, error) {
	var langExt LanguageExtractor
	switch lang {
	case "python":
		langExt = &PythonExtractor{}
	case "go":
		langExt = &GoExtractor{}
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	return &Extractor{langExtractor: langExt, markers: markers, logger: logger}, nil
}

// ExtractSource parses one snapshot's text and extracts every
// recognized model. Pure function of the input text: a fresh tree is
// constructed per call, no process-wide parser state.
func (e *Extractor) ExtractSource(file string, source []byte) ([]ir.Model, []ir.Skipped, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(e.langExtractor.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, nil, &ParseError{File: file, Err: err}
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, nil, &ParseError{File: file, Err: errors.New("source is not syntactically well-formed")}
	}

	query, err := sitter.NewQuery([]byte(e.langExtractor.GetQuery()), e.langExtractor.GetLanguage())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create query: %w", err)
	}

	var models []ir.Model
	var skipped []ir.Skipped

	qc := sitter.NewQueryCursor()
	qc.Exec(query, root)
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			model, skips := e.langExtractor.ExtractModel(c.Node, source, file, e.markers)
			skipped = append(skipped, skips...)
			if model != nil {
				models = append(models, *model)
			}
		}
	}

	return models, skipped, nil
}

// ExtractSet builds an immutable ModelSet from a snapshot's candidate
// model files. Files are processed in sorted path order so duplicate
// identifiers resolve deterministically (first definition wins, later
// ones are reported as parse warnings).
func (e *Extractor) ExtractSet(files map[string][]byte) (ir.ModelSet, ir.Diagnostics, error) {
	set := make(ir.ModelSet)
	var diags ir.Diagnostics

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		models, skips, err := e.ExtractSource(path, files[path])
		if err != nil {
			return nil, diags, err
		}
		diags.Skipped = append(diags.Skipped, skips...)
		for _, m := range models {
			if prev, exists := set[m.Identifier]; exists {
				diags.ParseWarnings = append(diags.ParseWarnings, fmt.Sprintf(
					"duplicate model %q in %s (keeping definition from %s)",
					m.Identifier, path, prev.Span.File))
				continue
			}
			set[m.Identifier] = m
		}
		if e.logger != nil {
			e.logger.Debug("extracted models",
				zap.String("file", path),
				zap.Int("models", len(models)),
				zap.Int("skipped", len(skips)))
		}
	}

	return set, diags, nil
}
