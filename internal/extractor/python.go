package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"modelguard/internal/ir"
)

// PythonExtractor implements LanguageExtractor for Python model files.
// A class contributes a model when it matches the marker rule; its
// fields come from class-body assignments (annotated or plain) and
// from `self.x = ...` statements in __init__.
type PythonExtractor struct{}

func (p *PythonExtractor) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

func (p *PythonExtractor) GetQuery() string {
	return `(class_definition) @model`
}

func (p *PythonExtractor) ExtractModel(node *sitter.Node, source []byte, file string, markers Markers) (*ir.Model, []ir.Skipped) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, nil
	}
	name := nameNode.Content(source)

	if !p.isModel(node, source, markers) {
		return nil, nil
	}

	model := &ir.Model{
		Identifier: name,
		Span: ir.Span{
			File:      file,
			StartLine: int(node.StartPoint().Row + 1),
			EndLine:   int(node.EndPoint().Row + 1),
		},
	}

	var skipped []ir.Skipped
	seen := make(map[string]bool)
	addField := func(fieldName, tag string) {
		if fieldName == "" || strings.HasPrefix(fieldName, "_") || seen[fieldName] {
			return
		}
		seen[fieldName] = true
		model.Fields = append(model.Fields, ir.Field{Name: fieldName, Type: tag})
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return model, nil
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		switch stmt.Type() {
		case "expression_statement":
			assign := stmt.NamedChild(0)
			if assign == nil || assign.Type() != "assignment" {
				continue
			}
			left := assign.ChildByFieldName("left")
			if left == nil {
				continue
			}
			if left.Type() != "identifier" {
				skipped = append(skipped, ir.Skipped{
					Model:  name,
					Member: left.Content(source),
					File:   file,
					Line:   int(left.StartPoint().Row + 1),
					Reason: "unsupported assignment target",
				})
				continue
			}
			addField(left.Content(source), p.fieldTag(assign, source))
		case "decorated_definition":
			if def := stmt.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
				skipped = append(skipped, p.extractInitFields(def, source, file, name, addField)...)
			}
		case "function_definition":
			skipped = append(skipped, p.extractInitFields(stmt, source, file, name, addField)...)
		}
	}

	return model, skipped
}

// extractInitFields walks the top level of __init__ and records
// `self.x = ...` members. Assignments buried under control flow or
// built via setattr are dynamic construction and only produce a
// skipped diagnostic.
func (p *PythonExtractor) extractInitFields(fn *sitter.Node, source []byte, file, modelName string, addField func(string, string)) []ir.Skipped {
	fnName := fn.ChildByFieldName("name")
	if fnName == nil || fnName.Content(source) != "__init__" {
		return nil
	}
	body := fn.ChildByFieldName("body")
	if body == nil {
		return nil
	}

	var skipped []ir.Skipped
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		switch stmt.Type() {
		case "expression_statement":
			expr := stmt.NamedChild(0)
			if expr == nil {
				continue
			}
			if expr.Type() == "call" {
				if fnNode := expr.ChildByFieldName("function"); fnNode != nil && fnNode.Content(source) == "setattr" {
					skipped = append(skipped, ir.Skipped{
						Model:  modelName,
						File:   file,
						Line:   int(expr.StartPoint().Row + 1),
						Reason: "dynamically constructed member (setattr)",
					})
				}
				continue
			}
			if expr.Type() != "assignment" {
				continue
			}
			left := expr.ChildByFieldName("left")
			if left == nil || left.Type() != "attribute" {
				continue
			}
			obj := left.ChildByFieldName("object")
			attr := left.ChildByFieldName("attribute")
			if obj == nil || attr == nil || obj.Content(source) != "self" {
				continue
			}
			addField(attr.Content(source), p.fieldTag(expr, source))
		case "for_statement", "while_statement", "if_statement", "with_statement", "try_statement":
			if p.assignsToSelf(stmt, source) {
				skipped = append(skipped, ir.Skipped{
					Model:  modelName,
					File:   file,
					Line:   int(stmt.StartPoint().Row + 1),
					Reason: "member assignment inside control flow",
				})
			}
		}
	}
	return skipped
}

// fieldTag derives the type tag of an assignment: the annotation when
// present, otherwise an inference from the assigned literal.
func (p *PythonExtractor) fieldTag(assign *sitter.Node, source []byte) string {
	if typeNode := assign.ChildByFieldName("type"); typeNode != nil {
		return NormalizePythonAnnotation(typeNode.Content(source))
	}
	right := assign.ChildByFieldName("right")
	if right == nil {
		return "any"
	}
	switch right.Type() {
	case "string", "concatenated_string":
		return "string"
	case "integer":
		return "int"
	case "float":
		return "float"
	case "true", "false":
		return "bool"
	case "list", "list_comprehension", "tuple":
		return "list<any>"
	case "dictionary", "dictionary_comprehension":
		return "map<any,any>"
	case "call":
		if fnNode := right.ChildByFieldName("function"); fnNode != nil {
			callee := lastSegment(fnNode.Content(source))
			if callee != "" && callee[0] >= 'A' && callee[0] <= 'Z' {
				return "reference<" + callee + ">"
			}
		}
		return "any"
	default:
		return "any"
	}
}

// isModel evaluates the closed structural predicate: recognized base
// class or recognized decorator. No markers configured means every
// class counts, matching projects whose models are plain classes.
func (p *PythonExtractor) isModel(node *sitter.Node, source []byte, markers Markers) bool {
	if len(markers.Bases) == 0 && len(markers.Decorators) == 0 {
		return true
	}
	for _, base := range p.baseNames(node, source) {
		for _, want := range markers.Bases {
			if base == want {
				return true
			}
		}
	}
	for _, dec := range p.decoratorNames(node, source) {
		for _, want := range markers.Decorators {
			if dec == want {
				return true
			}
		}
	}
	return false
}

func (p *PythonExtractor) baseNames(node *sitter.Node, source []byte) []string {
	supers := node.ChildByFieldName("superclasses")
	if supers == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(supers.NamedChildCount()); i++ {
		arg := supers.NamedChild(i)
		switch arg.Type() {
		case "identifier", "attribute":
			names = append(names, lastSegment(arg.Content(source)))
		case "subscript":
			if v := arg.ChildByFieldName("value"); v != nil {
				names = append(names, lastSegment(v.Content(source)))
			}
		}
	}
	return names
}

func (p *PythonExtractor) decoratorNames(node *sitter.Node, source []byte) []string {
	parent := node.Parent()
	if parent == nil || parent.Type() != "decorated_definition" {
		return nil
	}
	var names []string
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		child := parent.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		text := strings.TrimPrefix(strings.TrimSpace(child.Content(source)), "@")
		if j := strings.IndexByte(text, '('); j >= 0 {
			text = text[:j]
		}
		names = append(names, lastSegment(strings.TrimSpace(text)))
	}
	return names
}

func (p *PythonExtractor) assignsToSelf(node *sitter.Node, source []byte) bool {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	var visit func(*sitter.TreeCursor) bool
	visit = func(c *sitter.TreeCursor) bool {
		n := c.CurrentNode()
		if n.Type() == "assignment" {
			if left := n.ChildByFieldName("left"); left != nil && left.Type() == "attribute" {
				if obj := left.ChildByFieldName("object"); obj != nil && obj.Content(source) == "self" {
					return true
				}
			}
		}
		if c.GoToFirstChild() {
			defer c.GoToParent()
			if visit(c) {
				return true
			}
			for c.GoToNextSibling() {
				if visit(c) {
					return true
				}
			}
		}
		return false
	}
	return visit(cursor)
}
