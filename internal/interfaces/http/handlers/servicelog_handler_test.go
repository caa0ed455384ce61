package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FreonTrack-Compliance/internal/application/servicing"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/servicelog"
	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

type fakeServicingService struct {
	attached     *servicelog.ServiceLog
	attachErr    error
	lastFilename string
	lastSize     int64
	url          string
	urlErr       error
}

func (f *fakeServicingService) RecordService(ctx context.Context, req servicing.RecordServiceRequest) (*servicelog.ServiceLog, error) {
	return servicelog.New(req.EquipmentID, req.TechnicianID, req.ServiceDate, req.ServiceType, req.Description), nil
}

func (f *fakeServicingService) AttachInvoice(ctx context.Context, serviceLogID common.ID, filename, contentType string, size int64, r io.Reader) (*servicelog.ServiceLog, error) {
	if f.attachErr != nil {
		return nil, f.attachErr
	}
	f.lastFilename = filename
	f.lastSize = size
	return f.attached, nil
}

func (f *fakeServicingService) InvoiceURL(ctx context.Context, serviceLogID common.ID, expiry time.Duration) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return f.url, nil
}

func (f *fakeServicingService) History(ctx context.Context, equipmentID common.ID, limit int) ([]*servicelog.ServiceLog, error) {
	return nil, nil
}

func serviceLogRouter(svc ServicingService) http.Handler {
	h := NewServiceLogHandler(svc, logging.NewNopLogger())
	r := chi.NewRouter()
	r.Post("/service-logs", h.Record)
	r.Post("/service-logs/{serviceLogID}/invoice", h.UploadInvoice)
	r.Get("/service-logs/{serviceLogID}/invoice", h.InvoiceURL)
	return r
}

func invoiceUploadRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("invoice", "invoice.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake pdf content"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadInvoice_Created(t *testing.T) {
	log := servicelog.New("eq-1", "tech-1", time.Now(), servicelog.TypeLeakRepair, "fixed joint")
	svc := &fakeServicingService{attached: log}
	router := serviceLogRouter(svc)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, invoiceUploadRequest(t, "/service-logs/"+string(log.ID)+"/invoice"))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "invoice.pdf", svc.lastFilename)
	assert.Equal(t, int64(len("fake pdf content")), svc.lastSize)
}

func TestUploadInvoice_MissingFile(t *testing.T) {
	router := serviceLogRouter(&fakeServicingService{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/service-logs/log-1/invoice", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadInvoice_UnsupportedType(t *testing.T) {
	router := serviceLogRouter(&fakeServicingService{
		attachErr: errors.New(errors.ErrCodeDocumentTypeInvalid, ""),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, invoiceUploadRequest(t, "/service-logs/log-1/invoice"))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestInvoiceURL_OK(t *testing.T) {
	router := serviceLogRouter(&fakeServicingService{url: "https://minio.local/doc?signed=1"})

	req := httptest.NewRequest(http.MethodGet, "/service-logs/log-1/invoice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed=1")
}

func TestInvoiceURL_NotFound(t *testing.T) {
	router := serviceLogRouter(&fakeServicingService{
		urlErr: errors.New(errors.ErrCodeDocumentNotFound, ""),
	})

	req := httptest.NewRequest(http.MethodGet, "/service-logs/log-1/invoice", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

//Personal.AI order the ending
