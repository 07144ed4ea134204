package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContract = `
openapi: 3.0.0
info:
  title: Sample API
  version: "1.0"
paths: {}
components:
  schemas:
    User:
      type: object
      properties:
        id:
          type: integer
        email:
          type: string
        balance:
          type: number
        active:
          type: boolean
        nickname:
          type: string
          nullable: true
        tags:
          type: array
          items:
            type: string
        address:
          $ref: '#/components/schemas/Address'
        attributes:
          type: object
          additionalProperties:
            type: string
    Address:
      type: object
      properties:
        street:
          type: string
`

func TestIndex_Load(t *testing.T) {
	idx := NewIndex(nil)
	set, err := idx.Load([]byte(sampleContract))
	require.NoError(t, err)
	require.Len(t, set, 2)

	user, ok := set["User"]
	require.True(t, ok)
	assert.Equal(t, "User", user.Identifier)
	assert.Equal(t, map[string]string{
		"id":         "int",
		"email":      "string",
		"balance":    "float",
		"active":     "bool",
		"nickname":   "optional<string>",
		"tags":       "list<string>",
		"address":    "reference<Address>",
		"attributes": "map<string,string>",
	}, user.Properties)
}

func TestIndex_MissingSchemasIsEmptyNotError(t *testing.T) {
	doc := []byte(`
openapi: 3.0.0
info:
  title: Empty API
  version: "1.0"
paths: {}
`)
	idx := NewIndex(nil)
	set, err := idx.Load(doc)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestIndex_MalformedDocument(t *testing.T) {
	idx := NewIndex(nil)
	_, err := idx.Load([]byte("components:\n  schemas: [\n"))
	require.Error(t, err)
	var parseErr *ContractParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestIndex_Deterministic(t *testing.T) {
	idx := NewIndex(nil)
	first, err := idx.Load([]byte(sampleContract))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := idx.Load([]byte(sampleContract))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
