package bootstrap

import (
	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/FreonTrack-Compliance/internal/interfaces/http"
	"github.com/turtacn/FreonTrack-Compliance/internal/interfaces/http/handlers"
	"github.com/turtacn/FreonTrack-Compliance/internal/interfaces/http/middleware"
)

// BuildAPIServer assembles handlers, middleware, and probes into a runnable
// HTTP server.  The returned rate limiter must be stopped with the server;
// Server.Stop handles neither, so callers defer both.
func BuildAPIServer(
	cfg *config.Config,
	infra *Infrastructure,
	repos *Repositories,
	svcs *Services,
	version string,
	log logging.Logger,
) (*httpserver.Server, *middleware.RateLimitMiddleware) {
	checkers := []handlers.HealthChecker{
		handlers.CheckerFunc{ComponentName: "postgres", Probe: infra.DB.HealthCheck},
	}
	if infra.Redis != nil {
		checkers = append(checkers,
			handlers.CheckerFunc{ComponentName: "redis", Probe: infra.Redis.Ping})
	}
	if infra.Objects != nil {
		checkers = append(checkers,
			handlers.CheckerFunc{ComponentName: "minio", Probe: infra.Objects.HealthCheck})
	}

	rateLimit := middleware.NewRateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		EquipmentHandler:  handlers.NewEquipmentHandler(repos.Equipment, cfg.Compliance, log),
		TechnicianHandler: handlers.NewTechnicianHandler(repos.Technicians, log),
		InspectionHandler: handlers.NewInspectionHandler(svcs.Compliance, log),
		ServiceLogHandler: handlers.NewServiceLogHandler(svcs.Servicing, log),
		AlertHandler:      handlers.NewAlertHandler(repos.Alerts, log),
		InventoryHandler:  handlers.NewInventoryHandler(svcs.Inventory, log),
		DashboardHandler:  handlers.NewDashboardHandler(svcs.Dashboard, log),
		RiskHandler:       handlers.NewRiskHandler(svcs.Risk, log),
		ReportHandler:     handlers.NewReportHandler(svcs.Reporting, log),
		HealthHandler:     handlers.NewHealthHandler(version, checkers...),

		AuthMiddleware:      middleware.NewAuthMiddleware(cfg.Auth, log),
		CORSMiddleware:      middleware.NewCORSMiddleware(cfg.Server.CORSOrigins),
		LoggingMiddleware:   middleware.NewLoggingMiddleware(log, infra.Metrics),
		RateLimitMiddleware: rateLimit,

		MetricsCollector: infra.Collector,
	})

	return httpserver.NewServer(cfg.Server, router, log), rateLimit
}

//Personal.AI order the ending
