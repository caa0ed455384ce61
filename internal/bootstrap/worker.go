package bootstrap

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/monitoring"
	"github.com/turtacn/FreonTrack-Compliance/internal/application/risk"
	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// Worker runs the compliance scanner on a fixed cadence and, when enabled,
// the inspection-rescore consumer.
type Worker struct {
	scanner  *monitoring.Scanner
	consumer *kafka.RescoreConsumer
	metrics  *prometheus.AppMetrics
	interval time.Duration
	logger   logging.Logger
}

// BuildWorker assembles the background worker from already-built services.
// The rescore consumer is only attached when worker.rescore_on_inspection is
// set and Kafka connected.
func BuildWorker(cfg *config.Config, infra *Infrastructure, svcs *Services, log logging.Logger) *Worker {
	w := &Worker{
		scanner:  svcs.Scanner,
		metrics:  infra.Metrics,
		interval: cfg.Worker.ScanInterval,
		logger:   log.Named("worker"),
	}
	if cfg.Worker.RescoreOnInspection && infra.Producer != nil {
		w.consumer = kafka.NewRescoreConsumer(cfg.Kafka, &rescoreAdapter{svc: svcs.Risk}, log).
			WithMetrics(func(topic, status string) {
				infra.Metrics.EventsConsumedTotal.WithLabelValues(topic, status).Inc()
			})
	}
	return w
}

// Run blocks until the context is canceled or a component fails terminally.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return w.runScanner(ctx) })
	if w.consumer != nil {
		g.Go(func() error { return w.consumer.Run(ctx) })
	}

	err := g.Wait()
	if w.consumer != nil {
		if closeErr := w.consumer.Close(); closeErr != nil {
			w.logger.Warn("close rescore consumer", logging.Err(closeErr))
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runScanner sweeps immediately and then on every tick, recording sweep
// outcomes in the metrics registry.
func (w *Worker) runScanner(ctx context.Context) error {
	w.logger.Info("compliance scanner started", logging.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.sweep(ctx)
		select {
		case <-ctx.Done():
			w.logger.Info("compliance scanner stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Worker) sweep(ctx context.Context) {
	start := time.Now()
	result, err := w.scanner.SweepOnce(ctx)
	prometheus.RecordSweep(w.metrics, "compliance", time.Since(start), err)
	if err != nil {
		w.logger.Error("sweep failed", logging.Err(err))
		return
	}
	if result.Skipped {
		return
	}
	w.metrics.OverdueInspections.WithLabelValues().Set(float64(result.InspectionAlerts))
	w.metrics.ExpiringCertifications.WithLabelValues().Set(float64(result.CertificationAlerts))
}

// rescoreAdapter satisfies the kafka Rescorer port: drop the cached score and
// recompute so reads after an inspection see current risk.
type rescoreAdapter struct {
	svc *risk.Service
}

func (r *rescoreAdapter) Rescore(ctx context.Context, equipmentID common.ID) error {
	r.svc.Invalidate(ctx, equipmentID)
	_, err := r.svc.AssessEquipment(ctx, equipmentID)
	return err
}

//Personal.AI order the ending
