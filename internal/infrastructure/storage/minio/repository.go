package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/turtacn/FreonTrack-Compliance/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// allowedContentTypes lists the invoice document formats accepted for
// upload.
var allowedContentTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

const defaultPresignExpiry = time.Hour

// DocumentStore keeps service invoices in the documents bucket and hands out
// presigned links to them.
type DocumentStore struct {
	client *Client
	logger logging.Logger
}

// NewDocumentStore constructs a DocumentStore on top of the client.
func NewDocumentStore(client *Client, log logging.Logger) *DocumentStore {
	return &DocumentStore{client: client, logger: log}
}

// StoreInvoice uploads an invoice document and returns its object key.
// Uploads are rejected when the content type is not an accepted invoice
// format or the document exceeds the configured size cap.
func (s *DocumentStore) StoreInvoice(ctx context.Context, serviceLogID common.ID, filename, contentType string, size int64, r io.Reader) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", errors.New(errors.ErrCodeDocumentTypeInvalid, "").WithDetail(contentType)
	}
	if size <= 0 {
		return "", errors.InvalidParam("document size must be positive")
	}
	if size > s.client.MaxDocumentBytes() {
		return "", errors.New(errors.ErrCodeDocumentTooLarge, "").
			WithDetailf("size=%d max=%d", size, s.client.MaxDocumentBytes())
	}

	key := fmt.Sprintf("invoices/%s/%s%s", serviceLogID, uuid.NewString(), ext)

	_, err := s.client.API().PutObject(ctx, s.client.Bucket(), key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"service-log-id":    string(serviceLogID),
			"original-filename": sanitizeFilename(filename),
		},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeDocumentUploadFailed, "failed to upload invoice")
	}

	s.logger.Info("Stored invoice document",
		logging.String("service_log_id", string(serviceLogID)),
		logging.String("key", key),
		logging.Int64("size", size),
	)
	return key, nil
}

// InvoiceURL returns a presigned download link for a stored invoice.
func (s *DocumentStore) InvoiceURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if key == "" {
		return "", errors.New(errors.ErrCodeDocumentNotFound, "")
	}
	if expiry == 0 {
		expiry = defaultPresignExpiry
	}

	if _, err := s.client.API().StatObject(ctx, s.client.Bucket(), key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", errors.New(errors.ErrCodeDocumentNotFound, "").WithDetail(key)
		}
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "failed to stat invoice")
	}

	u, err := s.client.API().PresignedGetObject(ctx, s.client.Bucket(), key, expiry, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeExternalService, "failed to presign invoice url")
	}
	return u.String(), nil
}

// DeleteInvoice removes a stored invoice document.
func (s *DocumentStore) DeleteInvoice(ctx context.Context, key string) error {
	if key == "" {
		return errors.New(errors.ErrCodeDocumentNotFound, "")
	}
	if err := s.client.API().RemoveObject(ctx, s.client.Bucket(), key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to delete invoice")
	}
	return nil
}

// sanitizeFilename strips directory components and characters that break
// metadata headers.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

//Personal.AI order the ending
