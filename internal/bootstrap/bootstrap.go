// Package bootstrap wires configuration, infrastructure clients,
// repositories, and application services into runnable units.  The apiserver,
// worker, and CLI entry points all assemble themselves from here so the
// dependency graph exists in exactly one place.
package bootstrap

import (
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/compliance"
	"github.com/turtacn/FreonTrack-Compliance/internal/application/dashboard"
	"github.com/turtacn/FreonTrack-Compliance/internal/application/inventorymgmt"
	"github.com/turtacn/FreonTrack-Compliance/internal/application/monitoring"
	"github.com/turtacn/FreonTrack-Compliance/internal/application/reporting"
	"github.com/turtacn/FreonTrack-Compliance/internal/application/risk"
	"github.com/turtacn/FreonTrack-Compliance/internal/application/servicing"
	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inventory"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/servicelog"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/technician"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/postgres/repositories"
	redisdb "github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/database/redis"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/prometheus"
	miniostore "github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/storage/minio"
)

// Infrastructure bundles the external clients.  PostgreSQL is mandatory;
// Redis, Kafka, and MinIO degrade to nil and the services that depend on
// them fall back to their in-process defaults.
type Infrastructure struct {
	DB        *postgres.Connection
	Redis     *redisdb.Client
	Cache     redisdb.Cache
	Locks     *redisdb.LockManager
	Producer  *kafka.Producer
	Publisher *kafka.Publisher
	Objects   *miniostore.Client
	Documents *miniostore.DocumentStore

	Collector prometheus.Collector
	Metrics   *prometheus.AppMetrics

	logger logging.Logger
}

// NewInfrastructure connects every configured backend.  A PostgreSQL or
// metrics failure aborts startup; the optional backends log a warning and
// leave their slot nil.
func NewInfrastructure(cfg *config.Config, log logging.Logger) (*Infrastructure, error) {
	collector, err := prometheus.NewCollector(cfg.Metrics, log)
	if err != nil {
		return nil, err
	}

	infra := &Infrastructure{
		Collector: collector,
		Metrics:   prometheus.NewAppMetrics(collector),
		logger:    log.Named("bootstrap"),
	}

	infra.DB, err = postgres.NewConnection(cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if rc, err := redisdb.NewClient(cfg.Redis, log); err != nil {
		infra.logger.Warn("redis unavailable, caching and distributed locking disabled",
			logging.Err(err))
	} else {
		infra.Redis = rc
		infra.Cache = redisdb.NewCache(rc, log, redisdb.WithStatsHooks(
			func() { infra.Metrics.RiskCacheHitsTotal.WithLabelValues().Inc() },
			func() { infra.Metrics.RiskCacheMissesTotal.WithLabelValues().Inc() },
		))
		infra.Locks = redisdb.NewLockManager(rc, log)
	}

	if producer, err := kafka.NewProducer(cfg.Kafka, log); err != nil {
		infra.logger.Warn("kafka unavailable, event publishing disabled", logging.Err(err))
	} else {
		infra.Producer = producer
		infra.Publisher = kafka.NewPublisher(producer, log).WithMetrics(
			func(topic, status string) {
				infra.Metrics.EventsPublishedTotal.WithLabelValues(topic, status).Inc()
			})
	}

	if mc, err := miniostore.NewClient(cfg.MinIO, log); err != nil {
		infra.logger.Warn("minio unavailable, invoice storage disabled", logging.Err(err))
	} else {
		infra.Objects = mc
		infra.Documents = miniostore.NewDocumentStore(mc, log)
	}

	return infra, nil
}

// Close shuts the clients down in reverse dependency order.
func (i *Infrastructure) Close() {
	if i.Producer != nil {
		if err := i.Producer.Close(); err != nil {
			i.logger.Warn("close kafka producer", logging.Err(err))
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.logger.Warn("close redis client", logging.Err(err))
		}
	}
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			i.logger.Warn("close database", logging.Err(err))
		}
	}
}

// Repositories groups the PostgreSQL-backed domain repositories.
type Repositories struct {
	Equipment   equipment.Repository
	Technicians technician.Repository
	Inspections inspection.Repository
	ServiceLogs servicelog.Repository
	Alerts      alert.Repository
	Inventory   inventory.Repository
}

// NewRepositories builds the repositories with query latency observation
// feeding the shared Prometheus histogram.
func NewRepositories(infra *Infrastructure, log logging.Logger) *Repositories {
	metrics := infra.Metrics
	observe := repositories.WithQueryObserver(
		func(repository, operation string, elapsed time.Duration, err error) {
			prometheus.RecordDBQuery(metrics, repository, operation, elapsed, err)
		})

	return &Repositories{
		Equipment:   repositories.NewEquipmentRepo(infra.DB, log, observe),
		Technicians: repositories.NewTechnicianRepo(infra.DB, log, observe),
		Inspections: repositories.NewInspectionRepo(infra.DB, log, observe),
		ServiceLogs: repositories.NewServiceLogRepo(infra.DB, log, observe),
		Alerts:      repositories.NewAlertRepo(infra.DB, log, observe),
		Inventory:   repositories.NewInventoryRepo(infra.DB, log, observe),
	}
}

// Services groups the application layer.
type Services struct {
	Compliance *compliance.Service
	Risk       *risk.Service
	Servicing  *servicing.Service
	Inventory  *inventorymgmt.Service
	Dashboard  *dashboard.Service
	Reporting  *reporting.Service
	Scanner    *monitoring.Scanner
}

// BuildServices assembles the application services over the repositories,
// wiring events, caching, metrics, and document storage where the backing
// infrastructure is present.
func BuildServices(cfg *config.Config, infra *Infrastructure, repos *Repositories, log logging.Logger) *Services {
	complianceOpts := []compliance.Option{
		compliance.WithMetrics(prometheus.NewComplianceMetrics(infra.Metrics)),
	}
	if infra.Publisher != nil {
		complianceOpts = append(complianceOpts, compliance.WithEventPublisher(infra.Publisher))
	}
	complianceSvc := compliance.NewService(
		repos.Equipment, repos.Technicians, repos.Inspections, repos.Alerts,
		log, complianceOpts...)

	scorer := risk.NewScorer(repos.Equipment, repos.Inspections, repos.ServiceLogs)
	riskOpts := []risk.Option{
		risk.WithMetrics(prometheus.NewRiskMetrics(infra.Metrics)),
	}
	if infra.Cache != nil {
		riskOpts = append(riskOpts, risk.WithCache(infra.Cache, cfg.Compliance.RiskCacheTTL))
	}
	riskSvc := risk.NewService(scorer, log, riskOpts...)

	servicingOpts := []servicing.Option{}
	if infra.Publisher != nil {
		servicingOpts = append(servicingOpts, servicing.WithEventPublisher(infra.Publisher))
	}
	if infra.Documents != nil {
		servicingOpts = append(servicingOpts, servicing.WithInvoiceStore(infra.Documents))
	}
	servicingSvc := servicing.NewService(
		repos.Equipment, repos.Technicians, repos.ServiceLogs, repos.Inventory, repos.Alerts,
		log, servicingOpts...)

	scannerOpts := []monitoring.Option{}
	if infra.Publisher != nil {
		scannerOpts = append(scannerOpts, monitoring.WithEventPublisher(infra.Publisher))
	}
	if infra.Locks != nil {
		scannerOpts = append(scannerOpts, monitoring.WithLocker(infra.Locks))
	}
	scanner := monitoring.NewScanner(
		repos.Equipment, repos.Technicians, repos.Alerts,
		monitoring.Config{
			Interval:     cfg.Worker.ScanInterval,
			DueWindow:    cfg.Worker.InspectionDueWindow,
			ExpiryWindow: cfg.Worker.CertExpiryWindow,
			LockTTL:      cfg.Worker.LockTTL,
		},
		log, scannerOpts...)

	return &Services{
		Compliance: complianceSvc,
		Risk:       riskSvc,
		Servicing:  servicingSvc,
		Inventory:  inventorymgmt.NewService(repos.Inventory, repos.Alerts, log),
		Dashboard: dashboard.NewService(
			repos.Equipment, repos.Technicians, repos.Alerts, repos.Inventory,
			riskSvc, cfg.Worker.InspectionDueWindow, cfg.Worker.CertExpiryWindow, log),
		Reporting: reporting.NewService(repos.Equipment, repos.Inspections, repos.ServiceLogs, log),
		Scanner:   scanner,
	}
}

//Personal.AI order the ending
