package alert

import (
	"testing"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

func TestNewIsOpen(t *testing.T) {
	a := New(common.NewID(), TypeLeakRateExceeded, SeverityCritical, "title", "msg")
	if a.Status != StatusOpen {
		t.Errorf("Status = %s", a.Status)
	}
	if a.CreatedDate.IsZero() {
		t.Error("CreatedDate not set")
	}
	if !a.AlertDate.Equal(a.CreatedDate) {
		t.Error("AlertDate defaults to CreatedDate")
	}
}

func TestValidate(t *testing.T) {
	a := New(common.NewID(), TypeInspectionDue, SeverityWarning, "t", "inspection overdue")
	if err := a.Validate(); err != nil {
		t.Fatalf("valid alert rejected: %v", err)
	}

	a.AlertType = "Weird"
	if err := a.Validate(); !errors.IsCode(err, errors.ErrCodeAlertTypeInvalid) {
		t.Errorf("expected alert-type error, got %v", err)
	}

	a.AlertType = TypeInspectionDue
	a.Message = ""
	if err := a.Validate(); err == nil {
		t.Error("empty message should fail")
	}
}

func TestResolve(t *testing.T) {
	a := New(common.NewID(), TypeLeakRateExceeded, SeverityCritical, "t", "m")

	if err := a.Resolve("auditor@site", "repaired coil"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a.Status != StatusResolved || a.ResolvedDate == nil || a.ResolvedBy != "auditor@site" {
		t.Errorf("resolution not recorded: %+v", a)
	}

	// Double resolve conflicts.
	if err := a.Resolve("x", "y"); !errors.IsCode(err, errors.ErrCodeAlertAlreadyResolved) {
		t.Errorf("expected already-resolved error, got %v", err)
	}
}

func TestDismiss(t *testing.T) {
	a := New("", TypeLowInventory, SeverityWarning, "t", "m")
	if err := a.Dismiss("manager", "expected seasonal draw-down"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if a.Status != StatusDismissed {
		t.Errorf("Status = %s", a.Status)
	}
	if err := a.Dismiss("x", "y"); err == nil {
		t.Error("double dismiss should fail")
	}
}

//Personal.AI order the ending
