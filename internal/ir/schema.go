package ir

import "sort"

// SchemaEntry is the contract-side analog of a Model: one named schema
// with its properties mapped to normalized type tags.
type SchemaEntry struct {
	Identifier string            `json:"identifier"`
	Properties map[string]string `json:"properties"`
}

// PropertyNames returns the property names in sorted order.
func (e SchemaEntry) PropertyNames() []string {
	names := make([]string, 0, len(e.Properties))
	for n := range e.Properties {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SchemaSet maps schema identifier to entry. Built once per contract
// snapshot and treated as immutable afterwards.
type SchemaSet map[string]SchemaEntry

// Identifiers returns the schema identifiers in sorted order.
func (s SchemaSet) Identifiers() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
