package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"modelguard/internal/ir"
)

func schemas(ids ...string) ir.SchemaSet {
	set := ir.SchemaSet{}
	for _, id := range ids {
		set[id] = ir.SchemaEntry{Identifier: id, Properties: map[string]string{}}
	}
	return set
}

func TestDefaultNormalizer(t *testing.T) {
	n := &DefaultNormalizer{}
	cases := map[string]string{
		"User":        "user",
		"UserSchema":  "user",
		"UserModel":   "user",
		"UserDto":     "user",
		"OrderEntity": "order",
		"Users":       "user",
		"Companies":   "company",
		"Boxes":       "box",
		"Branches":    "branch",
		"Address":     "address",
		"Addresses":   "address",
		"Status":      "statu",
	}
	for input, want := range cases {
		assert.Equal(t, want, n.Normalize(input), "identifier %q", input)
	}
}

func TestMatch(t *testing.T) {
	m := New(nil)

	t.Run("exact", func(t *testing.T) {
		got, ok := m.Match("User", schemas("User", "Order"))
		assert.True(t, ok)
		assert.Equal(t, "User", got)
	})

	t.Run("suffix convention", func(t *testing.T) {
		got, ok := m.Match("User", schemas("UserSchema", "OrderSchema"))
		assert.True(t, ok)
		assert.Equal(t, "UserSchema", got)
	})

	t.Run("plural convention", func(t *testing.T) {
		got, ok := m.Match("Company", schemas("Companies"))
		assert.True(t, ok)
		assert.Equal(t, "Companies", got)
	})

	t.Run("no candidate", func(t *testing.T) {
		_, ok := m.Match("Invoice", schemas("UserSchema"))
		assert.False(t, ok)
	})

	t.Run("ambiguity fails closed", func(t *testing.T) {
		_, ok := m.Match("User", schemas("User", "UserSchema"))
		assert.False(t, ok)
	})
}

func TestMatch_CustomAffixes(t *testing.T) {
	m := New(&DefaultNormalizer{Affixes: []string{"Payload"}})
	got, ok := m.Match("User", schemas("UserPayload"))
	assert.True(t, ok)
	assert.Equal(t, "UserPayload", got)

	// With custom affixes the defaults no longer apply.
	_, ok = m.Match("User", schemas("UserSchema"))
	assert.False(t, ok)
}
