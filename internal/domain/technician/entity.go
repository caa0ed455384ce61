// Package technician defines EPA-certified service technicians.
package technician

import (
	"context"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// CertificationType enumerates EPA Section 608 certification classes.
type CertificationType string

const (
	CertUniversal CertificationType = "Universal"
	CertTypeI     CertificationType = "Type I"
	CertTypeII    CertificationType = "Type II"
	CertTypeIII   CertificationType = "Type III"
)

// ValidCertificationTypes lists every accepted certification class.
var ValidCertificationTypes = []CertificationType{CertUniversal, CertTypeI, CertTypeII, CertTypeIII}

// Technician is an EPA-certified individual authorized to perform leak
// inspections and refrigerant service.
type Technician struct {
	ID                  common.ID         `json:"id"`
	Name                string            `json:"name"`
	CertificationNumber string            `json:"certification_number"`
	CertificationType   CertificationType `json:"certification_type"`
	CertificationExpiry time.Time         `json:"certification_expiry"`
	Email               string            `json:"email,omitempty"`
	Phone               string            `json:"phone,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// New constructs a Technician with a fresh ID.
func New(name, certNumber string, certType CertificationType, expiry time.Time) *Technician {
	now := time.Now().UTC()
	return &Technician{
		ID:                  common.NewID(),
		Name:                name,
		CertificationNumber: certNumber,
		CertificationType:   certType,
		CertificationExpiry: expiry,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Validate checks the invariants every persisted Technician must satisfy.
func (t *Technician) Validate() error {
	if t.Name == "" {
		return errors.InvalidParam("technician name is required")
	}
	if t.CertificationNumber == "" {
		return errors.InvalidParam("certification number is required")
	}
	valid := false
	for _, ct := range ValidCertificationTypes {
		if t.CertificationType == ct {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New(errors.ErrCodeCertificationTypeInvalid, "").
			WithDetail(string(t.CertificationType))
	}
	return nil
}

// CertifiedAt reports whether the certification is valid at the given time.
// A zero expiry is treated as non-expiring.
func (t *Technician) CertifiedAt(at time.Time) bool {
	return t.CertificationExpiry.IsZero() || !t.CertificationExpiry.Before(at)
}

// Repository is the persistence contract for Technician.
type Repository interface {
	Create(ctx context.Context, tech *Technician) error
	GetByID(ctx context.Context, id common.ID) (*Technician, error)
	GetByCertificationNumber(ctx context.Context, certNumber string) (*Technician, error)
	Update(ctx context.Context, tech *Technician) error
	Delete(ctx context.Context, id common.ID) error
	List(ctx context.Context, page common.Pagination) (common.PaginatedResult[*Technician], error)
	// ListExpiringCertifications returns technicians whose certification
	// expires on or before the cutoff, ordered by expiry ascending.
	ListExpiringCertifications(ctx context.Context, cutoff time.Time) ([]*Technician, error)
}

//Personal.AI order the ending
