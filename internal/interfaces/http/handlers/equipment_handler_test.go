package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FreonTrack-Compliance/internal/config"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

type fakeEquipmentRepo struct {
	items      map[common.ID]*equipment.Equipment
	created    *equipment.Equipment
	lastFilter equipment.ListFilter
}

func newFakeEquipmentRepo(items ...*equipment.Equipment) *fakeEquipmentRepo {
	repo := &fakeEquipmentRepo{items: make(map[common.ID]*equipment.Equipment)}
	for _, eq := range items {
		repo.items[eq.ID] = eq
	}
	return repo
}

func (f *fakeEquipmentRepo) Create(ctx context.Context, eq *equipment.Equipment) error {
	f.created = eq
	f.items[eq.ID] = eq
	return nil
}

func (f *fakeEquipmentRepo) GetByID(ctx context.Context, id common.ID) (*equipment.Equipment, error) {
	eq, ok := f.items[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeEquipmentNotFound, "")
	}
	return eq, nil
}

func (f *fakeEquipmentRepo) Update(ctx context.Context, eq *equipment.Equipment) error {
	f.items[eq.ID] = eq
	return nil
}

func (f *fakeEquipmentRepo) Delete(ctx context.Context, id common.ID) error {
	if _, ok := f.items[id]; !ok {
		return errors.New(errors.ErrCodeEquipmentNotFound, "")
	}
	delete(f.items, id)
	return nil
}

func (f *fakeEquipmentRepo) List(ctx context.Context, filter equipment.ListFilter, page common.Pagination) (common.PaginatedResult[*equipment.Equipment], error) {
	f.lastFilter = filter
	items := make([]*equipment.Equipment, 0, len(f.items))
	for _, eq := range f.items {
		items = append(items, eq)
	}
	return common.NewPaginatedResult(items, int64(len(items)), page), nil
}

func (f *fakeEquipmentRepo) ListActive(ctx context.Context) ([]*equipment.Equipment, error) {
	return nil, nil
}

func (f *fakeEquipmentRepo) CountByStatus(ctx context.Context) (map[equipment.Status]int64, error) {
	return nil, nil
}

func equipmentRouter(repo equipment.Repository) http.Handler {
	defaults := config.ComplianceConfig{DefaultLeakRateThreshold: 10, DefaultInspectionFreqDays: 90}
	h := NewEquipmentHandler(repo, defaults, logging.NewNopLogger())
	r := chi.NewRouter()
	r.Get("/equipment", h.List)
	r.Post("/equipment", h.Create)
	r.Get("/equipment/{equipmentID}", h.Get)
	r.Put("/equipment/{equipmentID}", h.Update)
	r.Delete("/equipment/{equipmentID}", h.Delete)
	return r
}

func TestCreateEquipment_AppliesDefaults(t *testing.T) {
	repo := newFakeEquipmentRepo()
	router := equipmentRouter(repo)

	body, _ := json.Marshal(CreateEquipmentRequest{
		Name:            "Chiller-7",
		EquipmentType:   equipment.TypeComfortCooling,
		RefrigerantType: "R-410A",
		FullCharge:      100,
	})
	req := httptest.NewRequest(http.MethodPost, "/equipment", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, 10.0, repo.created.LeakRateThreshold)
	assert.Equal(t, 90, repo.created.InspectionFrequencyDays)
	assert.Equal(t, equipment.StatusActive, repo.created.Status)
}

func TestCreateEquipment_MissingName(t *testing.T) {
	router := equipmentRouter(newFakeEquipmentRepo())

	body, _ := json.Marshal(CreateEquipmentRequest{RefrigerantType: "R-22", FullCharge: 50})
	req := httptest.NewRequest(http.MethodPost, "/equipment", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEquipment_NotFound(t *testing.T) {
	router := equipmentRouter(newFakeEquipmentRepo())

	req := httptest.NewRequest(http.MethodGet, "/equipment/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateEquipment_ChangesStatus(t *testing.T) {
	eq := equipment.New("Freezer-2", equipment.TypeCommercialRefrigeration, "R-404A", 60, 20, 90)
	repo := newFakeEquipmentRepo(eq)
	router := equipmentRouter(repo)

	body, _ := json.Marshal(UpdateEquipmentRequest{
		Name:                    eq.Name,
		EquipmentType:           eq.EquipmentType,
		RefrigerantType:         eq.RefrigerantType,
		FullCharge:              eq.FullCharge,
		LeakRateThreshold:       eq.LeakRateThreshold,
		InspectionFrequencyDays: eq.InspectionFrequencyDays,
		Status:                  equipment.StatusRetired,
	})
	req := httptest.NewRequest(http.MethodPut, "/equipment/"+string(eq.ID), bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, equipment.StatusRetired, repo.items[eq.ID].Status)
}

func TestDeleteEquipment_NoContent(t *testing.T) {
	eq := equipment.New("Rack-1", equipment.TypeCommercialRefrigeration, "R-404A", 80, 20, 90)
	repo := newFakeEquipmentRepo(eq)
	router := equipmentRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/equipment/"+string(eq.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.items)
}

func TestListEquipment_StatusFilter(t *testing.T) {
	repo := newFakeEquipmentRepo()
	router := equipmentRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/equipment?status=Active&page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, equipment.StatusActive, *repo.lastFilter.Status)
}

//Personal.AI order the ending
