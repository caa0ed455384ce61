// Package common defines shared primitive types used across all layers of the
// FreonTrack-Compliance platform.
package common

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
)

// ID is the canonical entity identifier (UUID string).
type ID string

// UserID identifies an authenticated API caller.
type UserID string

// Metadata is a free-form key/value bag attached to entities and events.
type Metadata map[string]interface{}

// NewID generates a new random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Validate checks that the ID is a well-formed UUID.
func (id ID) Validate() error {
	if id == "" {
		return errors.InvalidParam("id is empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return errors.InvalidParam("id is not a valid UUID").WithDetail(string(id))
	}
	return nil
}

func (id ID) String() string { return string(id) }

// ─────────────────────────────────────────────────────────────────────────────
// Pagination
// ─────────────────────────────────────────────────────────────────────────────

// Pagination carries page/size parameters for list queries.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// DefaultPageSize is applied when a list request omits page_size.
const DefaultPageSize = 50

// MaxPageSize caps page_size to keep result sets bounded.
const MaxPageSize = 500

// Validate checks bounds and normalizes zero values to defaults.
func (p *Pagination) Validate() error {
	if p.Page < 0 || p.PageSize < 0 {
		return errors.InvalidParam("pagination values must be non-negative")
	}
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		return errors.InvalidParam(fmt.Sprintf("page_size exceeds maximum of %d", MaxPageSize))
	}
	return nil
}

// Offset returns the SQL offset for the page.
func (p Pagination) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// PaginatedResult wraps a page of items with totals.
type PaginatedResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginatedResult computes TotalPages from the totals.
func NewPaginatedResult[T any](items []T, total int64, p Pagination) PaginatedResult[T] {
	pages := 0
	if p.PageSize > 0 {
		pages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return PaginatedResult[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: pages,
	}
}

// DateRange bounds a report query.  Zero values mean unbounded.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Validate rejects inverted ranges.
func (dr DateRange) Validate() error {
	if !dr.From.IsZero() && !dr.To.IsZero() && dr.To.Before(dr.From) {
		return errors.InvalidParam("date range end precedes start")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// API envelope
// ─────────────────────────────────────────────────────────────────────────────

// ErrorDetail is the error body returned by the HTTP API.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// APIResponse is the uniform JSON envelope for all API responses.
type APIResponse[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{Success: true, Data: data}
}

// NewErrorResponse builds an error envelope.
func NewErrorResponse(code, message string) APIResponse[any] {
	return APIResponse[any]{
		Success: false,
		Error:   &ErrorDetail{Code: code, Message: message},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────────────────────────────────────

// HealthStatus enumerates component health states.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthDegraded  HealthStatus = "degraded"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth reports the state of a single dependency.
type ComponentHealth struct {
	Name      string       `json:"name"`
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message,omitempty"`
	LatencyMs int64        `json:"latency_ms"`
	CheckedAt time.Time    `json:"checked_at"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Messaging
// ─────────────────────────────────────────────────────────────────────────────

// ProducerMessage is the transport-agnostic outbound message handed to the
// Kafka producer.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
	Partition int
}

// BatchItemError records a single failed message within a batch publish.
type BatchItemError struct {
	Index int
	Topic string
	Error error
}

// BatchPublishResult summarizes a batch publish.
type BatchPublishResult struct {
	Succeeded int
	Failed    int
	Errors    []BatchItemError
}

// ─────────────────────────────────────────────────────────────────────────────
// Risk
// ─────────────────────────────────────────────────────────────────────────────

// RiskLevel is the qualitative risk band assigned by the risk scorer.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
	RiskLevelUnknown  RiskLevel = "Unknown"
)

// ContextKey is the type used for request-scoped context values.
type ContextKey string

const (
	ContextKeyUserID    ContextKey = "user_id"
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyRoles     ContextKey = "roles"
)

//Personal.AI order the ending
