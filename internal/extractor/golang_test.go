package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelguard/internal/ir"
)

func TestGoExtractor_StructModels(t *testing.T) {
	source := []byte(`package models

// User is a persisted account.
type User struct {
	ID        int64
	Email     string
	Nickname  *string
	Tags      []string
	Metadata  map[string]string
	internal  bool
}

type helper interface {
	Do() error
}

type Alias = string
`)

	ext, err := New("go", Markers{}, nil)
	require.NoError(t, err)

	models, skipped, err := ext.ExtractSource("models.go", source)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, models, 1)

	user := models[0]
	assert.Equal(t, "User", user.Identifier)
	assert.Equal(t, []ir.Field{
		{Name: "ID", Type: "int"},
		{Name: "Email", Type: "string"},
		{Name: "Nickname", Type: "optional<string>"},
		{Name: "Tags", Type: "list<string>"},
		{Name: "Metadata", Type: "map<string,string>"},
	}, user.Fields)
}

func TestGoExtractor_BaseMarker(t *testing.T) {
	source := []byte(`package models

type Base struct{}

type Order struct {
	Base
	ID int64
}

type Unmarked struct {
	ID int64
}
`)

	ext, err := New("go", Markers{Bases: []string{"Base"}}, nil)
	require.NoError(t, err)

	models, _, err := ext.ExtractSource("models.go", source)
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "Order", models[0].Identifier)
	// The embedded marker does not surface as a field.
	assert.Equal(t, []ir.Field{{Name: "ID", Type: "int"}}, models[0].Fields)
}

func TestGoExtractor_UnexportedStructsIgnored(t *testing.T) {
	source := []byte(`package models

type secret struct {
	Token string
}
`)

	ext, err := New("go", Markers{}, nil)
	require.NoError(t, err)

	models, _, err := ext.ExtractSource("models.go", source)
	require.NoError(t, err)
	assert.Empty(t, models)
}
