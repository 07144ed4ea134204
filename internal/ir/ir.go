package ir

import "sort"

// Span describes where a model definition originated in source code.
// Diagnostics only, it carries no semantic weight.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Field is one member of a model with its normalized type tag.
// The tag grammar is closed: string, int, float, bool, bytes, any,
// optional<T>, list<T>, map<K,V>, reference<Name>. Raw source text
// never appears here.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Model is one structural record type found in a source snapshot.
type Model struct {
	Identifier string  `json:"identifier"`
	Fields     []Field `json:"fields"`
	Span       Span    `json:"span"`
}

// FieldIndex returns the positional index of the named field, or -1.
func (m Model) FieldIndex(name string) int {
	for i, f := range m.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// ModelSet maps model identifier to definition. Built once per
// snapshot and treated as immutable afterwards.
type ModelSet map[string]Model

// Identifiers returns the model identifiers in sorted order.
func (s ModelSet) Identifiers() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
