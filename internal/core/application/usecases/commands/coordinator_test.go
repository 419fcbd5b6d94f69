package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type observation struct {
	unit    string
	outcome string
	code    errs.Code
	entries int
}

type recordingObserver struct {
	observed []observation
}

func (o *recordingObserver) ObserveUnit(unit, outcome string, code errs.Code, _ time.Duration, entries int) {
	o.observed = append(o.observed, observation{unit: unit, outcome: outcome, code: code, entries: entries})
}

func newObservedCoordinator(uow *MockUoW) (*commands.Coordinator, *recordingObserver) {
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)
	observer := &recordingObserver{}
	return commands.NewCoordinator(factory, nil, observer), observer
}

func TestCoordinator_Run_CommitsOnSuccess(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	coordinator, observer := newObservedCoordinator(uow)

	entry, err := history.NewEntry(ids(1)[0], "", "pending", "package created", nil, testTime)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)
	uow.On("RecordedEntries").Return([]history.Entry{entry})

	called := false
	err = coordinator.Run(ctx, "create_package", func(_ context.Context, _ commands.UoW) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
	require.Len(t, observer.observed, 1)
	assert.Equal(t, observation{unit: "create_package", outcome: commands.OutcomeCommitted, entries: 1}, observer.observed[0])
}

func TestCoordinator_Run_RollsBackClassifiedError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	coordinator, observer := newObservedCoordinator(uow)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cause := errs.NewPreconditionFailedError("package is delivered")
	err := coordinator.Run(ctx, "delete_package", func(_ context.Context, _ commands.UoW) error {
		return cause
	})

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	assert.Same(t, cause, err)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	require.Len(t, observer.observed, 1)
	assert.Equal(t, commands.OutcomeRolledBack, observer.observed[0].outcome)
	assert.Equal(t, errs.CodePreconditionFailed, observer.observed[0].code)
	assert.Zero(t, observer.observed[0].entries)
}

func TestCoordinator_Run_WrapsUnclassifiedError(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	coordinator, observer := newObservedCoordinator(uow)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	cause := errors.New("connection reset")
	err := coordinator.Run(ctx, "transition_package", func(_ context.Context, _ commands.UoW) error {
		return cause
	})

	require.ErrorIs(t, err, errs.ErrInternal)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, errs.CodeInternal, errs.CodeOf(err))
	assert.Equal(t, errs.CodeInternal, observer.observed[0].code)
	uow.AssertExpectations(t)
}

func TestCoordinator_Run_RecoversPanic(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	coordinator, _ := newObservedCoordinator(uow)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err := coordinator.Run(ctx, "transition_shipment", func(_ context.Context, _ commands.UoW) error {
		panic("boom")
	})

	require.ErrorIs(t, err, errs.ErrInternal)
	assert.Contains(t, err.Error(), "boom")
	uow.AssertExpectations(t)
}

func TestCoordinator_Run_BeginFailure(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	coordinator, _ := newObservedCoordinator(uow)

	uow.On("Begin", ctx).Return(errors.New("pool exhausted")).Once()
	uow.On("Rollback", ctx).Return(errors.New("no transaction")).Once()

	called := false
	err := coordinator.Run(ctx, "create_shipment", func(_ context.Context, _ commands.UoW) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, errs.ErrInternal)
	assert.False(t, called)
	uow.AssertExpectations(t)
}

func TestCoordinator_Run_CommitConflict(t *testing.T) {
	ctx := t.Context()
	uow := new(MockUoW)
	coordinator, observer := newObservedCoordinator(uow)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(errs.NewConflictingWriteError("package", 7)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	err := coordinator.Run(ctx, "add_packages_to_shipment", func(_ context.Context, _ commands.UoW) error {
		return nil
	})

	require.ErrorIs(t, err, errs.ErrConflictingWrite)
	assert.Equal(t, errs.CodeConflictingWrite, observer.observed[0].code)
	uow.AssertExpectations(t)
}
