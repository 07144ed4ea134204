package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"modelguard/internal/ir"
)

// RenderMarkdown produces the CI-facing markdown report. Input order
// is preserved, so the output is byte-identical across runs on the
// same verdict.
func RenderMarkdown(verdict *ir.Verdict) string {
	var b strings.Builder

	if verdict.Passed {
		b.WriteString("## ✅ Contract check passed\n\n")
		b.WriteString("All model changes are reflected in the API contract.\n")
	} else {
		b.WriteString("## 🛑 Contract violations detected\n\n")
		fmt.Fprintf(&b, "**Total violations:** %d\n\n", len(verdict.Violations))
		for i, v := range verdict.Violations {
			fmt.Fprintf(&b, "- **Violation %d** [%s] model `%s`", i+1, v.Kind, v.Change.OwnerModel())
			if v.Change.Field != "" {
				fmt.Fprintf(&b, ", field `%s`", v.Change.Field)
			}
			b.WriteString("\n")
			if v.Schema != "" {
				fmt.Fprintf(&b, "  - Schema: `%s`\n", v.Schema)
			}
			if v.Detail != "" {
				fmt.Fprintf(&b, "  - Issue: %s\n", v.Detail)
			}
		}
		b.WriteString("\n**Recommended actions:**\n")
		b.WriteString("- Update the contract file to match the model changes\n")
		b.WriteString("- Re-run the check after fixing the violations\n")
	}

	if len(verdict.Diagnostics.Skipped) > 0 || len(verdict.Diagnostics.ParseWarnings) > 0 {
		b.WriteString("\n### Diagnostics\n\n")
		for _, s := range verdict.Diagnostics.Skipped {
			fmt.Fprintf(&b, "- skipped member in `%s` (%s:%d): %s\n", s.Model, s.File, s.Line, s.Reason)
		}
		for _, w := range verdict.Diagnostics.ParseWarnings {
			fmt.Fprintf(&b, "- warning: %s\n", w)
		}
	}

	return b.String()
}

// RenderTable writes the violations as a plain table for terminals.
func RenderTable(w io.Writer, verdict *ir.Verdict) {
	if len(verdict.Violations) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Kind", "Model", "Field", "Schema", "Detail"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, v := range verdict.Violations {
		field := v.Change.Field
		if v.Change.NewField != "" {
			field = v.Change.Field + " -> " + v.Change.NewField
		}
		table.Append([]string{string(v.Kind), v.Change.OwnerModel(), field, v.Schema, v.Detail})
	}
	table.Render()
}
