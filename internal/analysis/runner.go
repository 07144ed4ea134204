package analysis

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"modelguard/internal/config"
	"modelguard/internal/contract"
	"modelguard/internal/differ"
	"modelguard/internal/extractor"
	"modelguard/internal/ir"
	"modelguard/internal/matcher"
	"modelguard/internal/revision"
	"modelguard/internal/validator"
)

// Runner wires the pipeline for one analysis run: two snapshots in, a
// verdict out. Every run builds its state fresh and discards it; there
// is no cross-run memory.
type Runner struct {
	cfg       *config.Config
	extractor *extractor.Extractor
	differ    *differ.Differ
	index     *contract.Index
	validator *validator.Validator
	logger    *zap.Logger
}

// NewRunner builds a runner from configuration.
func NewRunner(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	ext, err := extractor.New(cfg.Model.Language, extractor.Markers{
		Bases:      cfg.Model.Markers.Bases,
		Decorators: cfg.Model.Markers.Decorators,
	}, logger)
	if err != nil {
		return nil, err
	}

	m := matcher.New(&matcher.DefaultNormalizer{Affixes: cfg.Match.StripAffixes})

	return &Runner{
		cfg:       cfg,
		extractor: ext,
		differ:    differ.New(cfg.Diff.RenameThreshold, logger),
		index:     contract.NewIndex(logger),
		validator: validator.New(m, cfg.Validate.StrictRemovals, logger),
		logger:    logger,
	}, nil
}

// Check runs the full pipeline: extract both model sets, diff them,
// index the contract from the new snapshot, and validate. Violations
// never abort the run; only ParseError, ContractParseError and
// snapshot access failures do.
func (r *Runner) Check(ctx context.Context, oldSnap, newSnap revision.Snapshot) (*ir.Verdict, error) {
	oldSet, oldDiags, err := r.extractModels(ctx, oldSnap)
	if err != nil {
		return nil, err
	}
	newSet, newDiags, err := r.extractModels(ctx, newSnap)
	if err != nil {
		return nil, err
	}

	changes := r.differ.Diff(oldSet, newSet)
	if r.logger != nil {
		r.logger.Info("model diff computed",
			zap.String("old", oldSnap.Name()),
			zap.String("new", newSnap.Name()),
			zap.Int("models_old", len(oldSet)),
			zap.Int("models_new", len(newSet)),
			zap.Int("changes", len(changes)))
	}

	contractData, err := newSnap.Read(ctx, r.cfg.Contract.Path)
	if err != nil {
		if errors.Is(err, revision.ErrNotFound) {
			return nil, fmt.Errorf("contract file %s not found in snapshot %s", r.cfg.Contract.Path, newSnap.Name())
		}
		return nil, err
	}
	schemas, err := r.index.Load(contractData)
	if err != nil {
		return nil, err
	}

	verdict := &ir.Verdict{
		Violations: r.validator.Validate(changes, schemas),
		Diagnostics: ir.Diagnostics{
			Skipped:       append(oldDiags.Skipped, newDiags.Skipped...),
			ParseWarnings: append(oldDiags.ParseWarnings, newDiags.ParseWarnings...),
		},
	}
	verdict.Passed = len(verdict.Violations) == 0
	return verdict, nil
}

func (r *Runner) extractModels(ctx context.Context, snap revision.Snapshot) (ir.ModelSet, ir.Diagnostics, error) {
	var diags ir.Diagnostics

	paths, err := snap.Files(ctx, r.cfg.Model.Files)
	if err != nil {
		return nil, diags, fmt.Errorf("list model files at %s: %w", snap.Name(), err)
	}

	files := make(map[string][]byte, len(paths))
	for _, p := range paths {
		data, err := snap.Read(ctx, p)
		if errors.Is(err, revision.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, diags, fmt.Errorf("read %s at %s: %w", p, snap.Name(), err)
		}
		files[p] = data
	}

	set, diags, err := r.extractor.ExtractSet(files)
	if err != nil {
		return nil, diags, err
	}

	for i, w := range diags.ParseWarnings {
		diags.ParseWarnings[i] = snap.Name() + ": " + w
	}
	return set, diags, nil
}
