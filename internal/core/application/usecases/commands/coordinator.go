package commands

import (
	"context"
	"fmt"
	"time"

	"shiptrack/internal/pkg/errs"

	"go.uber.org/zap"
)

// Unit outcomes reported to logs and metrics.
const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
)

// UnitObserver receives the outcome of every unit run by the Coordinator.
type UnitObserver interface {
	ObserveUnit(unit, outcome string, code errs.Code, duration time.Duration, ledgerEntries int)
}

// UnitFunc is the body of a unit of work.
type UnitFunc func(ctx context.Context, uow UoW) error

// Coordinator runs unit functions as single atomic operations.
//
// Run begins a transaction, calls the unit function and commits. If the
// function returns an error or panics, every change made in the unit is rolled
// back before Run returns. Run never retries; callers decide whether a
// CONFLICTING_WRITE is worth another attempt.
//
// Errors that do not already carry a domain error kind are wrapped in an
// InternalError so every failure maps to a stable code.
type Coordinator struct {
	uowFactory UoWFactory
	logger     *zap.Logger
	observer   UnitObserver
	now        func() time.Time
}

// NewCoordinator creates a coordinator. A nil observer disables metrics.
func NewCoordinator(uowFactory UoWFactory, logger *zap.Logger, observer UnitObserver) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		uowFactory: uowFactory,
		logger:     logger.With(zap.String("component", "coordinator")),
		observer:   observer,
		now:        time.Now,
	}
}

// Run executes fn inside a new unit of work named unit.
func (c *Coordinator) Run(ctx context.Context, unit string, fn UnitFunc) (err error) {
	start := c.now()
	uow := c.uowFactory.Create()

	committed := false
	defer func() {
		if r := recover(); r != nil {
			err = errs.NewInternalError(unit, fmt.Errorf("panic: %v", r))
		}
		if !committed {
			_ = uow.Rollback(ctx)
		}
		c.report(unit, uow, err, c.now().Sub(start))
	}()

	if err = uow.Begin(ctx); err != nil {
		return classify(unit, err)
	}

	if err = fn(ctx, uow); err != nil {
		return classify(unit, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return classify(unit, err)
	}
	committed = true

	return nil
}

func (c *Coordinator) report(unit string, uow UoW, err error, duration time.Duration) {
	outcome := OutcomeCommitted
	entries := 0
	if err != nil {
		outcome = OutcomeRolledBack
	} else {
		entries = len(uow.RecordedEntries())
	}
	code := errs.CodeOf(err)

	if c.observer != nil {
		c.observer.ObserveUnit(unit, outcome, code, duration, entries)
	}

	fields := []zap.Field{
		zap.String("unit", unit),
		zap.String("outcome", outcome),
		zap.Int64("duration_ms", duration.Milliseconds()),
	}
	switch {
	case err == nil:
		c.logger.Info("unit finished", append(fields, zap.Int("ledger_entries", entries))...)
	case code == errs.CodeInternal:
		c.logger.Error("unit failed", append(fields, zap.String("code", string(code)), zap.Error(err))...)
	default:
		c.logger.Info("unit rejected", append(fields, zap.String("code", string(code)), zap.Error(err))...)
	}
}

func classify(unit string, err error) error {
	if errs.IsClassified(err) {
		return err
	}
	return errs.NewInternalError(unit, err)
}
