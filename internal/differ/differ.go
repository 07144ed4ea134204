package differ

import (
	"sort"

	"go.uber.org/zap"

	"modelguard/internal/ir"
)

// DefaultRenameThreshold is the minimum field-set similarity at which
// an unmatched old/new model pair is treated as a rename rather than a
// removal plus an addition. A heuristic default, deliberately
// configurable; not a verified production constant.
const DefaultRenameThreshold = 0.6

// Differ computes a deterministic, rename-aware ChangeSet between two
// model sets.
type Differ struct {
	threshold float64
	logger    *zap.Logger
}

// New creates a differ. A non-positive threshold selects the default.
func New(threshold float64, logger *zap.Logger) *Differ {
	if threshold <= 0 {
		threshold = DefaultRenameThreshold
	}
	return &Differ{threshold: threshold, logger: logger}
}

// Diff compares oldSet against newSet. Models present in both are
// field-diffed; the remainder go through rename pairing. The result is
// sorted by model identifier (old name for removals and renames, new
// name for additions), then field name, then kind.
func (d *Differ) Diff(oldSet, newSet ir.ModelSet) ir.ChangeSet {
	var changes ir.ChangeSet

	var unmatchedOld, unmatchedNew []string
	for _, id := range oldSet.Identifiers() {
		if _, ok := newSet[id]; ok {
			changes = append(changes, d.diffFields(id, oldSet[id], newSet[id])...)
		} else {
			unmatchedOld = append(unmatchedOld, id)
		}
	}
	for _, id := range newSet.Identifiers() {
		if _, ok := oldSet[id]; !ok {
			unmatchedNew = append(unmatchedNew, id)
		}
	}

	pairs, removed, added := d.pairRenames(unmatchedOld, unmatchedNew, oldSet, newSet)
	for _, id := range removed {
		changes = append(changes, ir.Change{Kind: ir.ModelRemoved, Model: id})
	}
	for _, id := range added {
		changes = append(changes, ir.Change{Kind: ir.ModelAdded, Model: id})
	}
	for _, p := range pairs {
		if d.logger != nil {
			d.logger.Debug("paired model rename",
				zap.String("old", p.oldID),
				zap.String("new", p.newID),
				zap.Float64("similarity", p.sim))
		}
		changes = append(changes, ir.Change{Kind: ir.ModelRenamed, Model: p.oldID, NewModel: p.newID})
		changes = append(changes, d.diffFields(p.newID, oldSet[p.oldID], newSet[p.newID])...)
	}

	sortChanges(changes)
	return changes
}

type renamePair struct {
	oldID, newID string
	sim          float64
}

// pairRenames assigns unmatched old models to unmatched new models by
// greedy descending-similarity assignment. A pair is accepted only if
// similarity meets the threshold and at least one field matches
// exactly. Ties break lexicographically on (old, new) identifier so
// the assignment is deterministic.
func (d *Differ) pairRenames(oldIDs, newIDs []string, oldSet, newSet ir.ModelSet) ([]renamePair, []string, []string) {
	var candidates []renamePair
	for _, o := range oldIDs {
		for _, n := range newIDs {
			sim, exact := similarity(oldSet[o], newSet[n])
			if exact >= 1 && sim >= d.threshold {
				candidates = append(candidates, renamePair{oldID: o, newID: n, sim: sim})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].sim != candidates[j].sim {
			return candidates[i].sim > candidates[j].sim
		}
		if candidates[i].oldID != candidates[j].oldID {
			return candidates[i].oldID < candidates[j].oldID
		}
		return candidates[i].newID < candidates[j].newID
	})

	usedOld := make(map[string]bool)
	usedNew := make(map[string]bool)
	var pairs []renamePair
	for _, c := range candidates {
		if usedOld[c.oldID] || usedNew[c.newID] {
			continue
		}
		usedOld[c.oldID] = true
		usedNew[c.newID] = true
		pairs = append(pairs, c)
	}

	var removed, added []string
	for _, id := range oldIDs {
		if !usedOld[id] {
			removed = append(removed, id)
		}
	}
	for _, id := range newIDs {
		if !usedNew[id] {
			added = append(added, id)
		}
	}
	return pairs, removed, added
}

// similarity is the share of exactly matching (name, type) fields over
// the larger field set. Two zero-field models have undefined
// similarity and never pair.
func similarity(o, n ir.Model) (float64, int) {
	if len(o.Fields) == 0 || len(n.Fields) == 0 {
		return 0, 0
	}
	newFields := make(map[string]string, len(n.Fields))
	for _, f := range n.Fields {
		newFields[f.Name] = f.Type
	}
	exact := 0
	for _, f := range o.Fields {
		if t, ok := newFields[f.Name]; ok && t == f.Type {
			exact++
		}
	}
	denom := len(o.Fields)
	if len(n.Fields) > denom {
		denom = len(n.Fields)
	}
	return float64(exact) / float64(denom), exact
}

// diffFields diffs one matched (or rename-paired) model pair. Fields
// matched by exact name get a type comparison; the rest go through the
// positional rename heuristic: same declared type and positional index
// within one place of each other.
func (d *Differ) diffFields(modelID string, o, n ir.Model) []ir.Change {
	var changes []ir.Change

	newByName := make(map[string]ir.Field, len(n.Fields))
	for _, f := range n.Fields {
		newByName[f.Name] = f
	}
	oldByName := make(map[string]ir.Field, len(o.Fields))
	for _, f := range o.Fields {
		oldByName[f.Name] = f
	}

	var unmatchedOld, unmatchedNew []ir.Field
	for _, f := range o.Fields {
		if nf, ok := newByName[f.Name]; ok {
			if nf.Type != f.Type {
				changes = append(changes, ir.Change{
					Kind:    ir.FieldTypeChanged,
					Model:   modelID,
					Field:   f.Name,
					OldType: f.Type,
					NewType: nf.Type,
				})
			}
		} else {
			unmatchedOld = append(unmatchedOld, f)
		}
	}
	for _, f := range n.Fields {
		if _, ok := oldByName[f.Name]; !ok {
			unmatchedNew = append(unmatchedNew, f)
		}
	}

	usedNew := make(map[string]bool)
	for _, of := range unmatchedOld {
		oldPos := o.FieldIndex(of.Name)
		bestIdx := -1
		bestDist := 2
		for i, nf := range unmatchedNew {
			if usedNew[nf.Name] || nf.Type != of.Type {
				continue
			}
			dist := n.FieldIndex(nf.Name) - oldPos
			if dist < 0 {
				dist = -dist
			}
			if dist <= 1 && (bestIdx == -1 || dist < bestDist) {
				bestIdx = i
				bestDist = dist
			}
		}
		if bestIdx >= 0 {
			nf := unmatchedNew[bestIdx]
			usedNew[nf.Name] = true
			changes = append(changes, ir.Change{
				Kind:      ir.FieldRenamed,
				Model:     modelID,
				Field:     of.Name,
				NewField:  nf.Name,
				FieldType: of.Type,
			})
		} else {
			changes = append(changes, ir.Change{
				Kind:      ir.FieldRemoved,
				Model:     modelID,
				Field:     of.Name,
				FieldType: of.Type,
			})
		}
	}
	for _, nf := range unmatchedNew {
		if !usedNew[nf.Name] {
			changes = append(changes, ir.Change{
				Kind:      ir.FieldAdded,
				Model:     modelID,
				Field:     nf.Name,
				FieldType: nf.Type,
			})
		}
	}

	return changes
}

func sortChanges(changes ir.ChangeSet) {
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Model != changes[j].Model {
			return changes[i].Model < changes[j].Model
		}
		if changes[i].Field != changes[j].Field {
			return changes[i].Field < changes[j].Field
		}
		return changes[i].Kind < changes[j].Kind
	})
}
