package equipment

import (
	"testing"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
)

func TestNewAppliesDefaults(t *testing.T) {
	eq := New("Rooftop Chiller 3", TypeComfortCooling, "R-410A", 120, 10.0, 30)

	if eq.ID == "" {
		t.Error("expected generated ID")
	}
	if eq.Status != StatusActive {
		t.Errorf("Status = %s", eq.Status)
	}
	if eq.LeakRateThreshold != 10.0 || eq.InspectionFrequencyDays != 30 {
		t.Errorf("defaults not applied: %+v", eq)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Equipment {
		eq := New("Walk-in Freezer", TypeCommercialRefrigeration, "R-404A", 80, 20.0, 30)
		eq.InstallDate = time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
		return eq
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid equipment rejected: %v", err)
	}

	cases := []struct {
		name     string
		mutate   func(*Equipment)
		wantCode errors.ErrorCode
	}{
		{"empty name", func(e *Equipment) { e.Name = "" }, errors.ErrCodeValidation},
		{"empty refrigerant", func(e *Equipment) { e.RefrigerantType = "" }, errors.ErrCodeValidation},
		{"negative charge", func(e *Equipment) { e.FullCharge = -1 }, errors.ErrCodeEquipmentInvalidCharge},
		{"zero threshold", func(e *Equipment) { e.LeakRateThreshold = 0 }, errors.ErrCodeInvalidLeakRateThreshold},
		{"negative threshold", func(e *Equipment) { e.LeakRateThreshold = -3 }, errors.ErrCodeInvalidLeakRateThreshold},
		{"zero frequency", func(e *Equipment) { e.InspectionFrequencyDays = 0 }, errors.ErrCodeValidation},
		{"bad status", func(e *Equipment) { e.Status = "Scrapped" }, errors.ErrCodeEquipmentInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eq := base()
			tc.mutate(eq)
			err := eq.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsCode(err, tc.wantCode) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tc.wantCode)
			}
		})
	}
}

func TestAgeYears(t *testing.T) {
	at := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		install time.Time
		want    int
	}{
		{time.Date(2010, 9, 1, 0, 0, 0, 0, time.UTC), 16},
		{time.Date(2010, 9, 2, 0, 0, 0, 0, time.UTC), 15}, // day before anniversary
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Time{}, 0},
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), 0}, // future install clamps to 0
	}
	for _, tc := range cases {
		eq := &Equipment{InstallDate: tc.install}
		if got := eq.AgeYears(at); got != tc.want {
			t.Errorf("AgeYears(install=%s) = %d, want %d", tc.install, got, tc.want)
		}
	}
}

func TestScheduleNextInspection(t *testing.T) {
	eq := New("AHU-7", TypeComfortCooling, "R-134a", 55, 10.0, 30)
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	eq.ScheduleNextInspection(date)

	if eq.NextInspectionDate == nil {
		t.Fatal("NextInspectionDate not set")
	}
	want := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)
	if !eq.NextInspectionDate.Equal(want) {
		t.Errorf("NextInspectionDate = %s, want %s", eq.NextInspectionDate, want)
	}
}

func TestIsActive(t *testing.T) {
	eq := New("x", TypeOther, "R-22", 10, 10, 30)
	if !eq.IsActive() {
		t.Error("new equipment should be active")
	}
	eq.Status = StatusRetired
	if eq.IsActive() {
		t.Error("retired equipment should not be active")
	}
}

//Personal.AI order the ending
