package commands_test

import (
	"strings"
	"testing"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAddPackagesToShipmentCommand(t *testing.T) {
	t.Run("deduplicates ids", func(t *testing.T) {
		cmd, err := commands.NewAddPackagesToShipmentCommand(kernel.MustNewID(10), ids(2, 3, 2), nil)
		require.NoError(t, err)
		assert.Equal(t, ids(2, 3), cmd.PackageIDs())
	})

	t.Run("requires at least one id", func(t *testing.T) {
		_, err := commands.NewAddPackagesToShipmentCommand(kernel.MustNewID(10), nil, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewTransitionShipmentCommand_BoundsComment(t *testing.T) {
	_, err := commands.NewTransitionShipmentCommand(kernel.MustNewID(10), "delivered",
		strings.Repeat("x", commands.MaxCommentLength+1), nil)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewUpdateShipmentCommand_RejectsEmptyPatch(t *testing.T) {
	_, err := commands.NewUpdateShipmentCommand(kernel.MustNewID(10), commands.ShipmentPatch{}, nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateShipmentCommandHandler_Handle(t *testing.T) {
	t.Run("founds shipment with pending package", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		p := restorePackage(t, 1, parcel.Pending)
		h.expectCommit(ctx)
		h.packages.On("Get", ctx, kernel.MustNewID(1)).Return(p, nil).Once()
		h.ships.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
		h.packages.On("Update", ctx, p).Return(nil).Once()

		cmd, err := commands.NewCreateShipmentCommand(kernel.MustNewID(1), testRoute(t), nil, idPtr(9))
		require.NoError(t, err)

		handler := commands.NewCreateShipmentCommandHandler(h.coord, &sequenceIDs{next: 9}, h.clock)
		s, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.InTransit, s.Status())
		assert.Equal(t, ids(1), s.Members())
		assert.Equal(t, kernel.MustNewID(10), s.ID())
		assert.Equal(t, parcel.InTransit, p.Status())
		require.Len(t, p.Entries(), 1)
		assert.Equal(t, commands.CommentShipmentCreated, p.Entries()[0].Comment())
		h.assert(t)
	})

	t.Run("refuses package that is not pending", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		p := restorePackage(t, 1, parcel.InTransit)
		h.expectRollback(ctx)
		h.packages.On("Get", ctx, kernel.MustNewID(1)).Return(p, nil).Once()

		cmd, err := commands.NewCreateShipmentCommand(kernel.MustNewID(1), testRoute(t), nil, nil)
		require.NoError(t, err)

		_, err = commands.NewCreateShipmentCommandHandler(h.coord, &sequenceIDs{}, h.clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		h.ships.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		h.assert(t)
	})
}

func TestTransitionShipmentCommandHandler_Handle(t *testing.T) {
	t.Run("delivery cascades to members", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.InTransit, 1, 2)
		p1 := restorePackage(t, 1, parcel.InTransit)
		p2 := restorePackage(t, 2, parcel.InTransit)
		h.expectCommit(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
		h.packages.On("GetMany", ctx, ids(1, 2)).Return([]*parcel.Package{p1, p2}, nil).Once()
		h.ships.On("Update", ctx, s).Return(nil).Once()
		h.packages.On("Update", ctx, p1).Return(nil).Once()
		h.packages.On("Update", ctx, p2).Return(nil).Once()

		cmd, err := commands.NewTransitionShipmentCommand(kernel.MustNewID(10), "delivered", "left at door", nil)
		require.NoError(t, err)

		handler := commands.NewTransitionShipmentCommandHandler(h.coord, services.NewShipmentCascade(), h.clock)
		got, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, shipment.Delivered, got.Status())
		require.NotNil(t, got.DeliveredAt())
		for _, p := range []*parcel.Package{p1, p2} {
			assert.Equal(t, parcel.Delivered, p.Status())
			require.Len(t, p.Entries(), 1)
			assert.Equal(t, "shipment delivered: left at door", p.Entries()[0].Comment())
		}
		h.assert(t)
	})

	t.Run("member that cannot follow aborts the transition", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.InTransit, 1, 2)
		p1 := restorePackage(t, 1, parcel.InTransit)
		p2 := restorePackage(t, 2, parcel.Pending)
		h.expectRollback(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
		h.packages.On("GetMany", ctx, ids(1, 2)).Return([]*parcel.Package{p1, p2}, nil).Once()

		cmd, err := commands.NewTransitionShipmentCommand(kernel.MustNewID(10), "delivered", "", nil)
		require.NoError(t, err)

		handler := commands.NewTransitionShipmentCommandHandler(h.coord, services.NewShipmentCascade(), h.clock)
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, parcel.InTransit, p1.Status())
		assert.Empty(t, p1.Entries())
		h.ships.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		h.packages.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		h.assert(t)
	})

	t.Run("terminal shipment refuses transition", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.Cancelled)
		h.expectRollback(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()

		cmd, err := commands.NewTransitionShipmentCommand(kernel.MustNewID(10), "in_transit", "", nil)
		require.NoError(t, err)

		handler := commands.NewTransitionShipmentCommandHandler(h.coord, services.NewShipmentCascade(), h.clock)
		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		h.assert(t)
	})
}

func TestAddPackagesToShipmentCommandHandler_Handle(t *testing.T) {
	t.Run("binds and moves packages of an in-transit shipment", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.InTransit, 1)
		p2 := restorePackage(t, 2, parcel.Pending)
		h.expectCommit(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
		h.packages.On("GetMany", ctx, ids(2)).Return([]*parcel.Package{p2}, nil).Once()
		h.ships.On("Update", ctx, s).Return(nil).Once()
		h.packages.On("Update", ctx, p2).Return(nil).Once()

		cmd, err := commands.NewAddPackagesToShipmentCommand(kernel.MustNewID(10), ids(1, 2), nil)
		require.NoError(t, err)

		added, err := commands.NewAddPackagesToShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, ids(2), added)
		assert.Equal(t, ids(1, 2), s.Members())
		assert.Equal(t, parcel.InTransit, p2.Status())
		require.Len(t, p2.Entries(), 1)
		assert.Equal(t, "added to shipment 10", p2.Entries()[0].Comment())
		h.assert(t)
	})

	t.Run("one ineligible package rejects the whole batch", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.InTransit, 1)
		p2 := restorePackage(t, 2, parcel.Pending)
		p3 := restorePackage(t, 3, parcel.Delivered)
		h.expectRollback(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
		h.packages.On("GetMany", ctx, ids(2, 3)).Return([]*parcel.Package{p2, p3}, nil).Once()

		cmd, err := commands.NewAddPackagesToShipmentCommand(kernel.MustNewID(10), ids(2, 3), nil)
		require.NoError(t, err)

		_, err = commands.NewAddPackagesToShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Equal(t, ids(1), s.Members())
		assert.Equal(t, parcel.Pending, p2.Status())
		h.ships.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		h.assert(t)
	})

	t.Run("already bound ids are a no-op", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.InTransit, 1)
		h.expectCommit(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()

		cmd, err := commands.NewAddPackagesToShipmentCommand(kernel.MustNewID(10), ids(1), nil)
		require.NoError(t, err)

		added, err := commands.NewAddPackagesToShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Empty(t, added)
		h.packages.AssertNotCalled(t, "GetMany", mock.Anything, mock.Anything)
		h.assert(t)
	})

	t.Run("delivered shipment refuses members", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		h.expectRollback(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(restoreShipment(t, 10, shipment.Delivered, 1), nil).Once()

		cmd, err := commands.NewAddPackagesToShipmentCommand(kernel.MustNewID(10), ids(2), nil)
		require.NoError(t, err)

		_, err = commands.NewAddPackagesToShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.Contains(t, err.Error(), shipment.ReasonImmutable)
		h.assert(t)
	})
}

func TestRemovePackageFromShipmentCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	s := restoreShipment(t, 10, shipment.InTransit, 1, 2)
	p2 := restorePackage(t, 2, parcel.InTransit)
	h.expectCommit(ctx)
	h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
	h.ships.On("ListActiveByPackage", ctx, kernel.MustNewID(2)).Return([]*shipment.Shipment{s}, nil).Once()
	h.packages.On("Get", ctx, kernel.MustNewID(2)).Return(p2, nil).Once()
	h.ships.On("Update", ctx, s).Return(nil).Once()
	h.packages.On("Update", ctx, p2).Return(nil).Once()

	cmd, err := commands.NewRemovePackageFromShipmentCommand(kernel.MustNewID(10), kernel.MustNewID(2), nil)
	require.NoError(t, err)

	err = commands.NewRemovePackageFromShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ids(1), s.Members())
	assert.Equal(t, parcel.Pending, p2.Status())
	require.Len(t, p2.Entries(), 1)
	assert.Equal(t, "removed from shipment 10", p2.Entries()[0].Comment())
	h.assert(t)
}

func TestRemovePackageFromShipmentCommandHandler_KeepsStatusOfLiveMember(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	s := restoreShipment(t, 10, shipment.Returned, 1, 2)
	live := restoreShipment(t, 11, shipment.InTransit, 2)
	h.expectCommit(ctx)
	h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
	h.ships.On("ListActiveByPackage", ctx, kernel.MustNewID(2)).Return([]*shipment.Shipment{live}, nil).Once()
	h.ships.On("Update", ctx, s).Return(nil).Once()

	cmd, err := commands.NewRemovePackageFromShipmentCommand(kernel.MustNewID(10), kernel.MustNewID(2), nil)
	require.NoError(t, err)

	err = commands.NewRemovePackageFromShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, ids(1), s.Members())
	h.packages.AssertNotCalled(t, "Get", ctx, kernel.MustNewID(2))
	h.assert(t)
}

func TestRemovePackageFromShipmentCommandHandler_UnknownBinding(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.expectRollback(ctx)
	h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(restoreShipment(t, 10, shipment.InTransit, 1), nil).Once()

	cmd, err := commands.NewRemovePackageFromShipmentCommand(kernel.MustNewID(10), kernel.MustNewID(2), nil)
	require.NoError(t, err)

	err = commands.NewRemovePackageFromShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

	assert.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
	h.assert(t)
}

func TestDeleteShipmentCommandHandler_Handle(t *testing.T) {
	t.Run("releases active members", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.InTransit, 1, 2)
		p1 := restorePackage(t, 1, parcel.InTransit)
		h.expectCommit(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
		h.packages.On("FindMany", ctx, ids(1, 2)).Return([]*parcel.Package{p1}, nil).Once()
		h.ships.On("ListActiveByPackage", ctx, kernel.MustNewID(1)).Return([]*shipment.Shipment{s}, nil).Once()
		h.ships.On("Update", ctx, s).Return(nil).Once()
		h.packages.On("Update", ctx, p1).Return(nil).Once()

		cmd, err := commands.NewDeleteShipmentCommand(kernel.MustNewID(10), nil)
		require.NoError(t, err)

		err = commands.NewDeleteShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, s.IsActive())
		assert.Empty(t, s.Members())
		assert.Equal(t, parcel.Pending, p1.Status())
		require.Len(t, p1.Entries(), 1)
		assert.Equal(t, "shipment 10 deleted", p1.Entries()[0].Comment())
		h.assert(t)
	})

	t.Run("member carried by a live shipment keeps its status", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.Cancelled, 1)
		live := restoreShipment(t, 11, shipment.InTransit, 1)
		p1 := restorePackage(t, 1, parcel.InTransit)
		h.expectCommit(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
		h.packages.On("FindMany", ctx, ids(1)).Return([]*parcel.Package{p1}, nil).Once()
		h.ships.On("ListActiveByPackage", ctx, kernel.MustNewID(1)).
			Return([]*shipment.Shipment{s, live}, nil).Once()
		h.ships.On("Update", ctx, s).Return(nil).Once()

		cmd, err := commands.NewDeleteShipmentCommand(kernel.MustNewID(10), nil)
		require.NoError(t, err)

		err = commands.NewDeleteShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, s.IsActive())
		assert.Equal(t, parcel.InTransit, p1.Status())
		assert.Empty(t, p1.Entries())
		h.packages.AssertNotCalled(t, "Update", ctx, p1)
		h.assert(t)
	})

	t.Run("delivered shipment cannot be deleted", func(t *testing.T) {
		ctx := t.Context()
		h := newHarness()
		s := restoreShipment(t, 10, shipment.Delivered, 1)
		h.expectRollback(ctx)
		h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()

		cmd, err := commands.NewDeleteShipmentCommand(kernel.MustNewID(10), nil)
		require.NoError(t, err)

		err = commands.NewDeleteShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.True(t, s.IsActive())
		h.assert(t)
	})
}

func TestUpdateShipmentCommandHandler_ReassignsFounding(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	s := restoreShipment(t, 10, shipment.InTransit, 1)
	p1 := restorePackage(t, 1, parcel.InTransit)
	p2 := restorePackage(t, 2, parcel.Pending)
	h.expectCommit(ctx)
	h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
	h.packages.On("GetMany", ctx, ids(2, 1)).Return([]*parcel.Package{p2, p1}, nil).Once()
	h.ships.On("ListActiveByPackage", ctx, kernel.MustNewID(1)).Return([]*shipment.Shipment{s}, nil).Once()
	h.ships.On("Update", ctx, s).Return(nil).Once()
	h.packages.On("Update", ctx, p1).Return(nil).Once()
	h.packages.On("Update", ctx, p2).Return(nil).Once()

	destination := "Customer 9"
	cmd, err := commands.NewUpdateShipmentCommand(kernel.MustNewID(10), commands.ShipmentPatch{
		Destination:       &destination,
		FoundingPackageID: idPtr(2),
	}, nil)
	require.NoError(t, err)

	got, err := commands.NewUpdateShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

	require.NoError(t, err)
	founding, ok := got.Founding()
	require.True(t, ok)
	assert.Equal(t, kernel.MustNewID(2), founding)
	assert.False(t, got.Contains(kernel.MustNewID(1)))
	assert.Equal(t, destination, got.Route().Destination().String())
	assert.Equal(t, parcel.Pending, p1.Status())
	assert.Equal(t, "removed from shipment 10", p1.Entries()[0].Comment())
	assert.Equal(t, parcel.InTransit, p2.Status())
	assert.Equal(t, "added to shipment 10", p2.Entries()[0].Comment())
	h.assert(t)
}

func TestUpdateShipmentCommandHandler_KeepsPreviousFoundingOfLiveShipment(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	s := restoreShipment(t, 10, shipment.Returned, 1)
	live := restoreShipment(t, 11, shipment.InTransit, 1)
	p1 := restorePackage(t, 1, parcel.InTransit)
	p2 := restorePackage(t, 2, parcel.Pending)
	h.expectCommit(ctx)
	h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(s, nil).Once()
	h.packages.On("GetMany", ctx, ids(2, 1)).Return([]*parcel.Package{p2, p1}, nil).Once()
	h.ships.On("ListActiveByPackage", ctx, kernel.MustNewID(1)).
		Return([]*shipment.Shipment{s, live}, nil).Once()
	h.ships.On("Update", ctx, s).Return(nil).Once()
	h.packages.On("Update", ctx, p2).Return(nil).Once()

	cmd, err := commands.NewUpdateShipmentCommand(kernel.MustNewID(10), commands.ShipmentPatch{
		FoundingPackageID: idPtr(2),
	}, nil)
	require.NoError(t, err)

	_, err = commands.NewUpdateShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, s.Contains(kernel.MustNewID(1)))
	assert.Equal(t, parcel.InTransit, p1.Status())
	assert.Empty(t, p1.Entries())
	assert.Equal(t, parcel.InTransit, p2.Status())
	h.packages.AssertNotCalled(t, "Update", ctx, p1)
	h.assert(t)
}

func TestUpdateShipmentCommandHandler_RefusesCancelledShipment(t *testing.T) {
	ctx := t.Context()
	h := newHarness()
	h.expectRollback(ctx)
	h.ships.On("Get", ctx, kernel.MustNewID(10)).Return(restoreShipment(t, 10, shipment.Cancelled), nil).Once()

	origin := "Depot 3"
	cmd, err := commands.NewUpdateShipmentCommand(kernel.MustNewID(10), commands.ShipmentPatch{Origin: &origin}, nil)
	require.NoError(t, err)

	_, err = commands.NewUpdateShipmentCommandHandler(h.coord, h.clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	h.assert(t)
}
