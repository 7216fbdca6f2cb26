// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/example/camrec/internal/core/effects"
	"github.com/example/camrec/internal/models"
	"github.com/example/camrec/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place planned I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) (ExecutionReport, error)
}

// ExecutionReport collects the non-fatal outcomes of an Execute call.
type ExecutionReport struct {
	Normalized []secondary.NormalizeResult
}

// Warnings flattens the warnings of every normalization that ran.
func (r ExecutionReport) Warnings() []models.PermissionWarning {
	var out []models.PermissionWarning
	for _, n := range r.Normalized {
		out = append(out, n.Warnings...)
	}
	return out
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	store      secondary.SegmentStore
	normalizer secondary.Normalizer
	log        zerolog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(store secondary.SegmentStore, normalizer secondary.Normalizer, log zerolog.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		store:      store,
		normalizer: normalizer,
		log:        log,
	}
}

// Execute processes a slice of effects in sequence and stops at the first
// error. Normalization never fails; its warnings land in the report.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) (ExecutionReport, error) {
	var report ExecutionReport
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff, &report); err != nil {
			return report, fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return report, nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect, report *ExecutionReport) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.NormalizeEffect:
		res := e.normalizer.Normalize(ctx, typed.Path)
		logNormalize(e.log, res)
		report.Normalized = append(report.Normalized, res)
		return nil
	case effects.LogEffect:
		ev := e.log.WithLevel(parseLevel(typed.Level))
		for k, v := range typed.Fields {
			ev = ev.Interface(k, v)
		}
		ev.Msg(typed.Message)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	switch eff.Operation {
	case effects.FileWrite:
		return e.store.WriteFile(ctx, eff.Path, eff.Content, os.FileMode(eff.Mode))
	case effects.FileRemove:
		return e.store.RemoveFile(ctx, eff.Path)
	case effects.FileRename:
		return e.store.Rename(ctx, eff.Path, eff.Target)
	case effects.FileRemoveTree:
		return e.store.RemoveTree(ctx, eff.Path)
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// logNormalize reports every normalization warning; they are never fatal.
func logNormalize(log zerolog.Logger, res secondary.NormalizeResult) {
	for _, w := range res.Warnings {
		log.Warn().
			Str("strategy", res.Strategy).
			Str("path", w.Path).
			Str("op", w.Op).
			Err(w.Err).
			Msg("normalization incomplete")
	}
	log.Debug().
		Str("strategy", res.Strategy).
		Str("path", res.Path).
		Int("applied", res.Applied).
		Msg("normalized")
}
