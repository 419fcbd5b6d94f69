package commands_test

import (
	"context"
	"testing"
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/clock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *parcel.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, p *parcel.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) Get(ctx context.Context, id kernel.ID) (*parcel.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetMany(ctx context.Context, ids []kernel.ID) ([]*parcel.Package, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) FindMany(ctx context.Context, ids []kernel.ID) ([]*parcel.Package, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Package), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ListActiveByPackage(ctx context.Context, id kernel.ID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) RecordedEntries() []history.Entry {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]history.Entry)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type sequenceIDs struct{ next int64 }

func (s *sequenceIDs) NextID() kernel.ID {
	s.next++
	return kernel.MustNewID(s.next)
}

type fixedTracking struct{}

func (fixedTracking) NextTracking() (parcel.Tracking, error) {
	return parcel.NewTracking("TRK-0001", "public-0001")
}

// harness wires a mock unit of work behind a real coordinator.
type harness struct {
	factory  *MockUoWFactory
	uow      *MockUoW
	packages *MockPackageRepository
	ships    *MockShipmentRepository
	coord    *commands.Coordinator
	clock    *clock.FakeClock
}

func newHarness() *harness {
	h := &harness{
		factory:  new(MockUoWFactory),
		uow:      new(MockUoW),
		packages: new(MockPackageRepository),
		ships:    new(MockShipmentRepository),
		clock:    clock.NewFakeClock(testTime),
	}
	h.factory.On("Create").Return(h.uow)
	h.uow.On("PackageRepository").Return(h.packages).Maybe()
	h.uow.On("ShipmentRepository").Return(h.ships).Maybe()
	h.uow.On("RecordedEntries").Return([]history.Entry{}).Maybe()
	h.coord = commands.NewCoordinator(h.factory, nil, nil)
	return h
}

func (h *harness) expectCommit(ctx context.Context) {
	h.uow.On("Begin", ctx).Return(nil).Once()
	h.uow.On("Commit", ctx).Return(nil).Once()
}

func (h *harness) expectRollback(ctx context.Context) {
	h.uow.On("Begin", ctx).Return(nil).Once()
	h.uow.On("Rollback", ctx).Return(nil).Once()
}

func (h *harness) assert(t *testing.T) {
	t.Helper()
	h.uow.AssertExpectations(t)
	h.packages.AssertExpectations(t)
	h.ships.AssertExpectations(t)
}

func testRoute(t *testing.T) kernel.Route {
	t.Helper()
	r, err := kernel.ParseRoute("Depot 1", "Customer 2")
	require.NoError(t, err)
	return r
}

func testDetails(t *testing.T) parcel.Details {
	t.Helper()
	dims, err := parcel.NewDimensions(decimal.NewFromInt(10), decimal.NewFromInt(10), decimal.NewFromInt(10))
	require.NoError(t, err)
	d, err := parcel.NewDetails("shoes", decimal.RequireFromString("1.2"), dims, decimal.NewFromInt(80))
	require.NoError(t, err)
	return d
}

func restorePackage(t *testing.T, id int64, status parcel.Status) *parcel.Package {
	t.Helper()
	tracking, err := parcel.NewTracking("TRK", "PUB")
	require.NoError(t, err)
	p, err := parcel.RestorePackage(kernel.MustNewID(id), kernel.MustNewID(500), tracking, testDetails(t),
		testRoute(t), status, true, testTime, testTime, 1)
	require.NoError(t, err)
	return p
}

func restoreShipment(t *testing.T, id int64, status shipment.Status, members ...int64) *shipment.Shipment {
	t.Helper()
	ids := make([]kernel.ID, 0, len(members))
	for _, m := range members {
		ids = append(ids, kernel.MustNewID(m))
	}
	s, err := shipment.RestoreShipment(kernel.MustNewID(id), testRoute(t), status, nil, nil, true, ids,
		testTime, testTime, 1)
	require.NoError(t, err)
	return s
}

func idPtr(v int64) *kernel.ID {
	id := kernel.MustNewID(v)
	return &id
}

func ids(values ...int64) []kernel.ID {
	out := make([]kernel.ID, 0, len(values))
	for _, v := range values {
		out = append(out, kernel.MustNewID(v))
	}
	return out
}
