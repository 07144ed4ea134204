package extractor

import "strings"

// Type tags form a closed grammar shared by both source front ends and
// the contract index: string, int, float, bool, bytes, any,
// optional<T>, list<T>, map<K,V>, reference<Name>. Normalization keeps
// optional<T> distinct from T so an optionality change surfaces as a
// type change.

// NormalizePythonAnnotation maps a Python type annotation to a tag.
func NormalizePythonAnnotation(ann string) string {
	s := strings.TrimSpace(ann)
	s = strings.Trim(s, `"'`) // forward references
	if s == "" {
		return "any"
	}

	// PEP 604 unions: T | None collapses to optional<T>.
	if parts := splitTopLevel(s, '|'); len(parts) > 1 {
		return normalizeUnion(parts)
	}

	if i := strings.IndexByte(s, '['); i >= 0 && strings.HasSuffix(s, "]") {
		head := strings.TrimSpace(s[:i])
		inner := s[i+1 : len(s)-1]
		args := splitTopLevel(inner, ',')
		switch lastSegment(head) {
		case "Optional":
			return "optional<" + NormalizePythonAnnotation(inner) + ">"
		case "Union":
			return normalizeUnion(args)
		case "List", "list", "Sequence", "Set", "set", "FrozenSet", "frozenset", "Iterable":
			return "list<" + NormalizePythonAnnotation(args[0]) + ">"
		case "Tuple", "tuple":
			return "list<any>"
		case "Dict", "dict", "Mapping", "MutableMapping":
			if len(args) == 2 {
				return "map<" + NormalizePythonAnnotation(args[0]) + "," + NormalizePythonAnnotation(args[1]) + ">"
			}
			return "map<any,any>"
		default:
			return "reference<" + lastSegment(head) + ">"
		}
	}

	switch lastSegment(s) {
	case "str":
		return "string"
	case "int":
		return "int"
	case "float":
		return "float"
	case "bool":
		return "bool"
	case "bytes", "bytearray":
		return "bytes"
	case "Any", "object", "None":
		return "any"
	case "list":
		return "list<any>"
	case "dict":
		return "map<any,any>"
	}
	return "reference<" + lastSegment(s) + ">"
}

func normalizeUnion(parts []string) string {
	var nonNone []string
	sawNone := false
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "None" {
			sawNone = true
			continue
		}
		nonNone = append(nonNone, p)
	}
	if len(nonNone) == 1 {
		inner := NormalizePythonAnnotation(nonNone[0])
		if sawNone {
			return "optional<" + inner + ">"
		}
		return inner
	}
	// Heterogeneous unions have no single structural shape.
	if sawNone {
		return "optional<any>"
	}
	return "any"
}

// NormalizeGoType maps a Go field type expression to a tag.
func NormalizeGoType(typ string) string {
	s := strings.TrimSpace(typ)
	if s == "" {
		return "any"
	}
	if strings.HasPrefix(s, "*") {
		return "optional<" + NormalizeGoType(s[1:]) + ">"
	}
	if s == "[]byte" {
		return "bytes"
	}
	if strings.HasPrefix(s, "[]") {
		return "list<" + NormalizeGoType(s[2:]) + ">"
	}
	if strings.HasPrefix(s, "map[") {
		depth := 1
		for i := 4; i < len(s); i++ {
			switch s[i] {
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return "map<" + NormalizeGoType(s[4:i]) + "," + NormalizeGoType(s[i+1:]) + ">"
				}
			}
		}
		return "map<any,any>"
	}
	if strings.HasPrefix(s, "chan ") || strings.HasPrefix(s, "func(") || strings.HasPrefix(s, "<-chan ") {
		return "any"
	}
	switch s {
	case "string":
		return "string"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "byte", "rune", "uintptr":
		return "int"
	case "float32", "float64":
		return "float"
	case "bool":
		return "bool"
	case "any", "interface{}":
		return "any"
	}
	return "reference<" + lastSegment(s) + ">"
}

// splitTopLevel splits s on sep, ignoring separators nested inside
// brackets or parentheses.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

func lastSegment(s string) string {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}
