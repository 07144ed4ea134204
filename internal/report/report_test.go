package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"modelguard/internal/ir"
)

func sampleVerdict() *ir.Verdict {
	return &ir.Verdict{
		Violations: []ir.Violation{
			{
				Change: ir.Change{Kind: ir.FieldRenamed, Model: "User", Field: "first_name", NewField: "name"},
				Kind:   ir.UnreflectedRename,
				Schema: "UserSchema",
				Detail: "field renamed User.first_name -> name but contract schema UserSchema was not updated",
			},
		},
		Diagnostics: ir.Diagnostics{
			Skipped: []ir.Skipped{
				{Model: "User", Member: "legacy", File: "app/models.py", Line: 12, Reason: "dynamically constructed member (setattr)"},
			},
		},
	}
}

func TestRenderMarkdown_Violations(t *testing.T) {
	out := RenderMarkdown(sampleVerdict())
	assert.Contains(t, out, "Contract violations detected")
	assert.Contains(t, out, "**Total violations:** 1")
	assert.Contains(t, out, "model `User`, field `first_name`")
	assert.Contains(t, out, "Schema: `UserSchema`")
	assert.Contains(t, out, "### Diagnostics")
	assert.Contains(t, out, "app/models.py:12")
}

func TestRenderMarkdown_Passed(t *testing.T) {
	out := RenderMarkdown(&ir.Verdict{Passed: true})
	assert.Contains(t, out, "Contract check passed")
	assert.NotContains(t, out, "Diagnostics")
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	v := sampleVerdict()
	first := RenderMarkdown(v)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, RenderMarkdown(v))
	}
}

func TestRenderTable(t *testing.T) {
	var b strings.Builder
	RenderTable(&b, sampleVerdict())
	out := b.String()
	assert.Contains(t, out, "first_name -> name")
	assert.Contains(t, out, "UserSchema")

	b.Reset()
	RenderTable(&b, &ir.Verdict{Passed: true})
	assert.Empty(t, b.String())
}
