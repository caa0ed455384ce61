package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/inventorymgmt"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inventory"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// InventoryService is the slice of the inventory application service the
// HTTP layer uses.
type InventoryService interface {
	Create(ctx context.Context, refrigerantType string, quantity, reorderLevel, costPerLb float64) (*inventory.RefrigerantInventory, error)
	Get(ctx context.Context, id common.ID) (*inventory.RefrigerantInventory, error)
	List(ctx context.Context) ([]*inventory.RefrigerantInventory, error)
	Adjust(ctx context.Context, req inventorymgmt.AdjustRequest) (*inventory.RefrigerantInventory, error)
	Transactions(ctx context.Context, inventoryID common.ID, limit int) ([]*inventory.Transaction, error)
}

// InventoryHandler serves the refrigerant inventory endpoints.
type InventoryHandler struct {
	service InventoryService
	logger  logging.Logger
}

func NewInventoryHandler(service InventoryService, log logging.Logger) *InventoryHandler {
	return &InventoryHandler{service: service, logger: log}
}

// CreateInventoryRequest registers stock tracking for a refrigerant type.
type CreateInventoryRequest struct {
	RefrigerantType string  `json:"refrigerant_type"`
	QuantityOnHand  float64 `json:"quantity_on_hand_lbs"`
	ReorderLevel    float64 `json:"reorder_level_lbs"`
	CostPerLb       float64 `json:"cost_per_lb"`
}

func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}

	inv, err := h.service.Create(r.Context(), req.RefrigerantType, req.QuantityOnHand, req.ReorderLevel, req.CostPerLb)
	if err != nil {
		h.logger.Warn("Inventory create rejected",
			logging.String("refrigerant_type", req.RefrigerantType), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Get(r.Context(), common.ID(chi.URLParam(r, "inventoryID")))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list inventory", logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Adjust posts a purchase, adjustment, or recovery to the stock ledger.
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req inventorymgmt.AdjustRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid request body")
		return
	}
	req.InventoryID = common.ID(chi.URLParam(r, "inventoryID"))

	inv, err := h.service.Adjust(r.Context(), req)
	if err != nil {
		h.logger.Warn("Inventory adjustment rejected",
			logging.String("inventory_id", string(req.InventoryID)), logging.Err(err))
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	inventoryID := common.ID(chi.URLParam(r, "inventoryID"))
	txs, err := h.service.Transactions(r.Context(), inventoryID, parseLimit(r, 50))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

//Personal.AI order the ending
