package validator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"modelguard/internal/ir"
	"modelguard/internal/matcher"
)

// Validator decides, per change, whether the contract covers it.
// Findings are aggregated, never thrown: absence of a contract match
// is itself a reportable violation kind, not an exceptional condition.
type Validator struct {
	matcher        *matcher.Matcher
	strictRemovals bool
	logger         *zap.Logger
}

// New creates a validator. strictRemovals additionally flags removed
// models whose schema lingers in the contract.
func New(m *matcher.Matcher, strictRemovals bool, logger *zap.Logger) *Validator {
	if m == nil {
		m = matcher.New(nil)
	}
	return &Validator{matcher: m, strictRemovals: strictRemovals, logger: logger}
}

// Validate cross-references an ordered ChangeSet against the contract
// SchemaSet. The returned list preserves the change order, so it is as
// deterministic as its input.
func (v *Validator) Validate(changes ir.ChangeSet, schemas ir.SchemaSet) []ir.Violation {
	violations := []ir.Violation{}
	unmatchedReported := make(map[string]bool)

	for _, c := range changes {
		switch c.Kind {
		case ir.ModelAdded:
			// A new model is not yet part of the published surface.
			continue

		case ir.ModelRemoved:
			if !v.strictRemovals {
				continue
			}
			if schema, ok := v.matcher.Match(c.Model, schemas); ok {
				violations = append(violations, ir.Violation{
					Change: c,
					Kind:   ir.UnreflectedRemoval,
					Schema: schema,
					Detail: fmt.Sprintf("model %s removed from source but schema %s remains in contract", c.Model, schema),
				})
			}
			continue

		case ir.ModelRenamed:
			if _, ok := v.matcher.Match(c.NewModel, schemas); !ok {
				staleSchema, _ := v.matcher.Match(c.Model, schemas)
				violations = append(violations, ir.Violation{
					Change: c,
					Kind:   ir.UnreflectedRename,
					Schema: staleSchema,
					Detail: fmt.Sprintf("model renamed %s -> %s but no contract schema resolves for %s", c.Model, c.NewModel, c.NewModel),
				})
			}
			continue
		}

		// Field-level changes need the owning model's schema first.
		owner := c.OwnerModel()
		schemaID, ok := v.matcher.Match(owner, schemas)
		if !ok {
			if !unmatchedReported[owner] {
				unmatchedReported[owner] = true
				violations = append(violations, ir.Violation{
					Change: c,
					Kind:   ir.UnmatchedModel,
					Detail: fmt.Sprintf("no contract schema resolves for model %s", owner),
				})
			}
			continue
		}
		props := schemas[schemaID].Properties

		switch c.Kind {
		case ir.FieldAdded:
			// Additions are backward compatible unless the new field
			// is required (non-optional) and the contract lacks it.
			if strings.HasPrefix(c.FieldType, "optional<") {
				continue
			}
			if _, has := props[c.Field]; !has {
				violations = append(violations, ir.Violation{
					Change: c,
					Kind:   ir.UnreflectedRename,
					Schema: schemaID,
					Detail: fmt.Sprintf("required field %s.%s added in source but missing from contract schema %s", owner, c.Field, schemaID),
				})
			}

		case ir.FieldRemoved:
			if _, has := props[c.Field]; has {
				violations = append(violations, ir.Violation{
					Change: c,
					Kind:   ir.UnreflectedRemoval,
					Schema: schemaID,
					Detail: fmt.Sprintf("field %s.%s removed in source but remains in contract schema %s", owner, c.Field, schemaID),
				})
			}

		case ir.FieldRenamed:
			_, hasOld := props[c.Field]
			_, hasNew := props[c.NewField]
			if !hasNew || hasOld {
				violations = append(violations, ir.Violation{
					Change: c,
					Kind:   ir.UnreflectedRename,
					Schema: schemaID,
					Detail: fmt.Sprintf("field renamed %s.%s -> %s but contract schema %s was not updated", owner, c.Field, c.NewField, schemaID),
				})
			}

		case ir.FieldTypeChanged:
			got, has := props[c.Field]
			if !has || got != c.NewType {
				detail := fmt.Sprintf("field %s.%s changed type %s -> %s but contract schema %s declares %s",
					owner, c.Field, c.OldType, c.NewType, schemaID, got)
				if !has {
					detail = fmt.Sprintf("field %s.%s changed type %s -> %s but is absent from contract schema %s",
						owner, c.Field, c.OldType, c.NewType, schemaID)
				}
				violations = append(violations, ir.Violation{
					Change: c,
					Kind:   ir.UnreflectedTypeChange,
					Schema: schemaID,
					Detail: detail,
				})
			}
		}
	}

	if v.logger != nil {
		v.logger.Debug("validation complete",
			zap.Int("changes", len(changes)),
			zap.Int("violations", len(violations)))
	}
	return violations
}
