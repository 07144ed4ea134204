package extractor

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"modelguard/internal/ir"
)

// GoExtractor implements LanguageExtractor for Go model files. Models
// are exported struct types; when base markers are configured, only
// structs embedding one of the marker types count.
type GoExtractor struct{}

func (g *GoExtractor) GetLanguage() *sitter.Language {
	return golang.GetLanguage()
}

func (g *GoExtractor) GetQuery() string {
	return `(type_spec) @model`
}

func (g *GoExtractor) ExtractModel(node *sitter.Node, source []byte, file string, markers Markers) (*ir.Model, []ir.Skipped) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil, nil
	}
	name := nameNode.Content(source)
	if name == "" || !(name[0] >= 'A' && name[0] <= 'Z') {
		return nil, nil
	}

	typeNode := node.ChildByFieldName("type")
	if typeNode == nil || typeNode.Type() != "struct_type" {
		return nil, nil
	}

	span := ir.Span{
		File:      file,
		StartLine: int(node.StartPoint().Row + 1),
		EndLine:   int(node.EndPoint().Row + 1),
	}

	fields, embedded, skipped := g.structMembers(typeNode, source, file, name)

	if len(markers.Bases) > 0 {
		matched := false
		for _, emb := range embedded {
			for _, want := range markers.Bases {
				if emb == want {
					matched = true
				}
			}
		}
		if !matched {
			return nil, nil
		}
	}

	return &ir.Model{Identifier: name, Fields: fields, Span: span}, skipped
}

// structMembers walks a struct_type's field declarations. Embedded
// types are returned separately: marker bases must not surface as
// fields, and other embeds have no single member name to report.
func (g *GoExtractor) structMembers(structNode *sitter.Node, source []byte, file, modelName string) ([]ir.Field, []string, []ir.Skipped) {
	var fields []ir.Field
	var embedded []string
	var skipped []ir.Skipped

	var fieldList *sitter.Node
	for i := 0; i < int(structNode.ChildCount()); i++ {
		child := structNode.Child(i)
		if child.Type() == "field_declaration_list" {
			fieldList = child
			break
		}
	}
	if fieldList == nil {
		return fields, embedded, skipped
	}

	for i := 0; i < int(fieldList.NamedChildCount()); i++ {
		decl := fieldList.NamedChild(i)
		if decl.Type() != "field_declaration" {
			continue
		}

		typeNode := decl.ChildByFieldName("type")
		var rawType string
		if typeNode != nil {
			rawType = typeNode.Content(source)
		}

		foundNames := false
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			child := decl.NamedChild(j)
			if child.Type() != "field_identifier" {
				continue
			}
			foundNames = true
			fieldName := child.Content(source)
			if fieldName == "" || !(fieldName[0] >= 'A' && fieldName[0] <= 'Z') {
				continue
			}
			if typeNode != nil && (typeNode.Type() == "struct_type" || typeNode.Type() == "interface_type") {
				skipped = append(skipped, ir.Skipped{
					Model:  modelName,
					Member: fieldName,
					File:   file,
					Line:   int(decl.StartPoint().Row + 1),
					Reason: "anonymous " + typeNode.Type() + " field",
				})
				continue
			}
			fields = append(fields, ir.Field{Name: fieldName, Type: NormalizeGoType(rawType)})
		}

		if !foundNames && rawType != "" {
			embedded = append(embedded, lastSegment(strings.TrimPrefix(rawType, "*")))
		}
	}

	return fields, embedded, skipped
}
