package contract

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"modelguard/internal/ir"
)

// ContractParseError means the contract document is not valid
// structured data. Fatal: the run aborts as an infra failure. A valid
// document with no schema sections is an empty SchemaSet, not an
// error, so the validator can report unmatched models distinctly from
// a malformed contract.
type ContractParseError struct {
	Err error
}

func (e *ContractParseError) Error() string {
	return fmt.Sprintf("parse contract: %v", e.Err)
}

func (e *ContractParseError) Unwrap() error { return e.Err }

// Index parses an OpenAPI contract into a SchemaSet. It checks
// parse-level validity only; the contract's own semantic correctness
// is out of scope.
type Index struct {
	logger *zap.Logger
}

// NewIndex creates a contract index.
func NewIndex(logger *zap.Logger) *Index {
	return &Index{logger: logger}
}

// Load parses contract text (YAML or JSON) and indexes
// components.schemas into a SchemaSet with normalized type tags.
func (i *Index) Load(data []byte) (ir.SchemaSet, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, &ContractParseError{Err: err}
	}

	set := make(ir.SchemaSet)
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		if i.logger != nil {
			i.logger.Warn("contract has no schema components")
		}
		return set, nil
	}

	for name, ref := range doc.Components.Schemas {
		entry := ir.SchemaEntry{Identifier: name, Properties: map[string]string{}}
		if ref != nil && ref.Value != nil {
			for prop, propRef := range ref.Value.Properties {
				entry.Properties[prop] = typeTag(propRef)
			}
		}
		set[name] = entry
	}

	if i.logger != nil {
		i.logger.Debug("contract indexed", zap.Int("schemas", len(set)))
	}
	return set, nil
}

// typeTag maps an OpenAPI property schema to the shared tag grammar.
func typeTag(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return "any"
	}
	if ref.Ref != "" {
		return "reference<" + refName(ref.Ref) + ">"
	}
	s := ref.Value
	if s == nil {
		return "any"
	}
	tag := baseTag(s)
	if s.Nullable {
		tag = "optional<" + tag + ">"
	}
	return tag
}

func baseTag(s *openapi3.Schema) string {
	switch {
	case s.Type.Includes(openapi3.TypeInteger):
		return "int"
	case s.Type.Includes(openapi3.TypeNumber):
		return "float"
	case s.Type.Includes(openapi3.TypeString):
		if s.Format == "byte" || s.Format == "binary" {
			return "bytes"
		}
		return "string"
	case s.Type.Includes(openapi3.TypeBoolean):
		return "bool"
	case s.Type.Includes(openapi3.TypeArray):
		return "list<" + typeTag(s.Items) + ">"
	case s.Type.Includes(openapi3.TypeObject):
		if s.AdditionalProperties.Schema != nil {
			return "map<string," + typeTag(s.AdditionalProperties.Schema) + ">"
		}
		return "map<string,any>"
	default:
		return "any"
	}
}

func refName(ref string) string {
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
