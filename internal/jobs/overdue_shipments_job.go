package jobs

import (
	"context"
	"time"

	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/pkg/clock"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OverdueShipmentsJobName labels the job in logs and metrics.
const OverdueShipmentsJobName = "overdue_shipments"

// DefaultOverdueScanSchedule runs the scan every five minutes.
const DefaultOverdueScanSchedule = "@every 5m"

// OverdueShipmentsReader lists overdue shipments. queries.GetOverdueShipmentsQueryHandler implements it.
type OverdueShipmentsReader interface {
	Handle(ctx context.Context, query queries.GetOverdueShipmentsQuery) ([]queries.OverdueShipmentView, error)
}

// OverdueRecorder receives the scan results. The metrics adapter implements it.
type OverdueRecorder interface {
	SetOverdueShipments(n int)
	ObserveJob(job string, err error)
}

// OverdueShipmentsJob periodically reports in-transit shipments whose estimated
// delivery has passed. It only reads; no shipment or package is changed.
type OverdueShipmentsJob struct {
	reader   OverdueShipmentsReader
	recorder OverdueRecorder
	clock    clock.Clock
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewOverdueShipmentsJob creates the job. An empty schedule means DefaultOverdueScanSchedule;
// a nil recorder disables metrics.
func NewOverdueShipmentsJob(
	reader OverdueShipmentsReader,
	recorder OverdueRecorder,
	clk clock.Clock,
	schedule string,
	logger *zap.Logger,
) *OverdueShipmentsJob {
	if schedule == "" {
		schedule = DefaultOverdueScanSchedule
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)
	return &OverdueShipmentsJob{
		reader:   reader,
		recorder: recorder,
		clock:    clk,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "overdue_shipments_job")),
	}
}

// Start schedules the scan. It fails on an invalid schedule.
func (j *OverdueShipmentsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_, _ = j.Run(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("overdue shipments job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running scan to finish.
func (j *OverdueShipmentsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("overdue shipments job stopped")
}

// Run performs one scan and returns the overdue shipments found.
func (j *OverdueShipmentsJob) Run(ctx context.Context) ([]queries.OverdueShipmentView, error) {
	asOf := j.clock.Now()

	query, err := queries.NewGetOverdueShipmentsQuery(asOf)
	if err != nil {
		return nil, err
	}

	overdue, err := j.reader.Handle(ctx, query)
	if j.recorder != nil {
		j.recorder.ObserveJob(OverdueShipmentsJobName, err)
	}
	if err != nil {
		j.logger.Error("overdue shipments scan failed", zap.Error(err))
		return nil, err
	}

	if j.recorder != nil {
		j.recorder.SetOverdueShipments(len(overdue))
	}
	for _, s := range overdue {
		j.logger.Warn("shipment is overdue",
			zap.String("shipment_id", s.ID.String()),
			zap.Time("estimated_delivery", s.EstimatedDelivery),
			zap.Duration("late_by", asOf.Sub(s.EstimatedDelivery)),
			zap.Int("packages", s.PackageCount),
		)
	}
	j.logger.Info("overdue shipments scan finished", zap.Int("overdue", len(overdue)))

	return overdue, nil
}
