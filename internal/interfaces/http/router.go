// Package http assembles the REST API route tree and server.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FreonTrack-Compliance/internal/interfaces/http/handlers"
	"github.com/turtacn/FreonTrack-Compliance/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware the route tree needs.
// Nil handlers leave their routes unmounted, which keeps tests small.
type RouterConfig struct {
	EquipmentHandler  *handlers.EquipmentHandler
	TechnicianHandler *handlers.TechnicianHandler
	InspectionHandler *handlers.InspectionHandler
	ServiceLogHandler *handlers.ServiceLogHandler
	AlertHandler      *handlers.AlertHandler
	InventoryHandler  *handlers.InventoryHandler
	DashboardHandler  *handlers.DashboardHandler
	RiskHandler       *handlers.RiskHandler
	ReportHandler     *handlers.ReportHandler
	HealthHandler     *handlers.HealthHandler

	AuthMiddleware      *middleware.AuthMiddleware
	CORSMiddleware      *middleware.CORSMiddleware
	LoggingMiddleware   *middleware.LoggingMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware

	MetricsCollector prometheus.Collector
}

// NewRouter builds the complete route tree: public probes and metrics, then
// the authenticated /api/v1 resource groups.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}
	if cfg.LoggingMiddleware != nil {
		r.Use(cfg.LoggingMiddleware.Handler)
	}
	if cfg.RateLimitMiddleware != nil {
		r.Use(cfg.RateLimitMiddleware.Handler)
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.Handle("/metrics", cfg.MetricsCollector.Handler())
	}

	r.Route("/api/v1", func(api chi.Router) {
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.Handler)
		}

		registerEquipmentRoutes(api, cfg)
		registerTechnicianRoutes(api, cfg.TechnicianHandler)
		registerAlertRoutes(api, cfg.AlertHandler)
		registerInventoryRoutes(api, cfg.InventoryHandler)

		if cfg.InspectionHandler != nil {
			api.Post("/inspections", cfg.InspectionHandler.Record)
		}
		if cfg.ServiceLogHandler != nil {
			api.Post("/service-logs", cfg.ServiceLogHandler.Record)
			api.Post("/service-logs/{serviceLogID}/invoice", cfg.ServiceLogHandler.UploadInvoice)
			api.Get("/service-logs/{serviceLogID}/invoice", cfg.ServiceLogHandler.InvoiceURL)
		}
		if cfg.DashboardHandler != nil {
			api.Get("/dashboard", cfg.DashboardHandler.Overview)
		}
		if cfg.RiskHandler != nil {
			api.Get("/risk/assessments", cfg.RiskHandler.Fleet)
			api.Get("/risk/assessments/{equipmentID}", cfg.RiskHandler.Equipment)
		}
		if cfg.ReportHandler != nil {
			api.Get("/reports/compliance", cfg.ReportHandler.Compliance)
			api.Get("/reports/usage", cfg.ReportHandler.Usage)
		}
	})

	return r
}

// registerEquipmentRoutes mounts the equipment registry plus the per-
// appliance compliance, inspection, and service history endpoints.
func registerEquipmentRoutes(r chi.Router, cfg RouterConfig) {
	if cfg.EquipmentHandler == nil {
		return
	}
	r.Route("/equipment", func(er chi.Router) {
		er.Get("/", cfg.EquipmentHandler.List)
		er.Post("/", cfg.EquipmentHandler.Create)

		er.Route("/{equipmentID}", func(item chi.Router) {
			item.Get("/", cfg.EquipmentHandler.Get)
			item.Put("/", cfg.EquipmentHandler.Update)
			item.Delete("/", cfg.EquipmentHandler.Delete)

			if cfg.InspectionHandler != nil {
				item.Get("/inspections", cfg.InspectionHandler.History)
				item.Get("/compliance", cfg.InspectionHandler.Status)
			}
			if cfg.ServiceLogHandler != nil {
				item.Get("/service-logs", cfg.ServiceLogHandler.History)
			}
		})
	})
}

func registerTechnicianRoutes(r chi.Router, h *handlers.TechnicianHandler) {
	if h == nil {
		return
	}
	r.Route("/technicians", func(tr chi.Router) {
		tr.Get("/", h.List)
		tr.Post("/", h.Create)

		tr.Route("/{technicianID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Put("/", h.Update)
			item.Delete("/", h.Delete)
		})
	})
}

func registerAlertRoutes(r chi.Router, h *handlers.AlertHandler) {
	if h == nil {
		return
	}
	r.Route("/alerts", func(ar chi.Router) {
		ar.Get("/", h.List)

		ar.Route("/{alertID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Post("/resolve", h.Resolve)
			item.Post("/dismiss", h.Dismiss)
		})
	})
}

func registerInventoryRoutes(r chi.Router, h *handlers.InventoryHandler) {
	if h == nil {
		return
	}
	r.Route("/inventory", func(ir chi.Router) {
		ir.Get("/", h.List)
		ir.Post("/", h.Create)

		ir.Route("/{inventoryID}", func(item chi.Router) {
			item.Get("/", h.Get)
			item.Post("/adjust", h.Adjust)
			item.Get("/transactions", h.Transactions)
		})
	})
}

//Personal.AI order the ending
