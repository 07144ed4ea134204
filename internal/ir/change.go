package ir

// ChangeKind enumerates the structural change variants the differ emits.
type ChangeKind string

const (
	ModelAdded       ChangeKind = "model_added"
	ModelRemoved     ChangeKind = "model_removed"
	ModelRenamed     ChangeKind = "model_renamed"
	FieldAdded       ChangeKind = "field_added"
	FieldRemoved     ChangeKind = "field_removed"
	FieldRenamed     ChangeKind = "field_renamed"
	FieldTypeChanged ChangeKind = "field_type_changed"
)

// Change is one entry of a ChangeSet. Which members are populated
// depends on Kind:
//
//	ModelAdded/ModelRemoved: Model
//	ModelRenamed:            Model (old identifier), NewModel
//	FieldAdded/FieldRemoved: Model, Field, FieldType
//	FieldRenamed:            Model, Field (old name), NewField, FieldType
//	FieldTypeChanged:        Model, Field, OldType, NewType
//
// For field-level changes inside a renamed model pair, Model carries
// the new model identifier so contract lookups see the current name.
type Change struct {
	Kind      ChangeKind `json:"kind"`
	Model     string     `json:"model"`
	NewModel  string     `json:"new_model,omitempty"`
	Field     string     `json:"field,omitempty"`
	NewField  string     `json:"new_field,omitempty"`
	FieldType string     `json:"field_type,omitempty"`
	OldType   string     `json:"old_type,omitempty"`
	NewType   string     `json:"new_type,omitempty"`
}

// ChangeSet is the ordered output of the differ: sorted by model
// identifier, then field name, then kind, so repeated runs over the
// same input produce identical diagnostics.
type ChangeSet []Change

// OwnerModel returns the model identifier the contract side should be
// queried with for this change.
func (c Change) OwnerModel() string {
	if c.Kind == ModelRenamed {
		return c.NewModel
	}
	return c.Model
}
