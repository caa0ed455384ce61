package compliance

import (
	"math"
	"testing"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
)

func testEquipment(threshold float64) *equipment.Equipment {
	eq := equipment.New("Chiller-7", equipment.TypeCommercialRefrigeration, "R-410A", 100, threshold, 30)
	return eq
}

func testInspection(eq *equipment.Equipment, date time.Time, charge float64) *inspection.LeakInspection {
	return inspection.New(eq.ID, "tech-1", date, inspection.MethodElectronic, charge, 0)
}

func TestEvaluateAnnualizedRate(t *testing.T) {
	eq := testEquipment(10)
	ev := NewEvaluator()

	d0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d0, 100)
	incoming := testInspection(eq, d0.AddDate(0, 0, 30), 85)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.LeakRate == nil {
		t.Fatal("LeakRate not computed")
	}
	// 15% lost over 30 days annualizes to 182.5%.
	if math.Abs(*res.LeakRate-182.5) > 1e-9 {
		t.Errorf("LeakRate = %g, want 182.5", *res.LeakRate)
	}
	if res.ChargeDeficit == nil || *res.ChargeDeficit != 15 {
		t.Errorf("ChargeDeficit = %v, want 15", res.ChargeDeficit)
	}
	if res.Compliant {
		t.Error("182.5%% against a 10%% threshold must be non-compliant")
	}
	if res.Alert == nil {
		t.Fatal("violation must raise an alert")
	}
	if res.Alert.AlertType != alert.TypeLeakRateExceeded || res.Alert.Severity != alert.SeverityCritical {
		t.Errorf("alert = %s/%s", res.Alert.AlertType, res.Alert.Severity)
	}
	wantTitle := "Equipment Chiller-7: Leak Rate Exceeds Threshold"
	if res.Alert.Title != wantTitle {
		t.Errorf("Title = %q, want %q", res.Alert.Title, wantTitle)
	}
	wantMsg := "Annual leak rate of 182.50% exceeds threshold of 10%. Immediate repair required per 40 CFR 82.156."
	if res.Alert.Message != wantMsg {
		t.Errorf("Message = %q, want %q", res.Alert.Message, wantMsg)
	}
	if !res.Alert.AlertDate.Equal(incoming.InspectionDate) {
		t.Errorf("AlertDate = %v, want inspection date %v", res.Alert.AlertDate, incoming.InspectionDate)
	}
}

func TestEvaluateBackdatedViolationKeepsInspectionDate(t *testing.T) {
	eq := testEquipment(10)
	ev := NewEvaluator()

	// A violation entered long after the fact is dated to the inspection,
	// not to when the record was written.
	d0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d0, 100)
	incoming := testInspection(eq, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), 85)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Alert == nil {
		t.Fatal("violation must raise an alert")
	}
	if !res.Alert.AlertDate.Equal(incoming.InspectionDate) {
		t.Errorf("AlertDate = %v, want %v", res.Alert.AlertDate, incoming.InspectionDate)
	}
	if res.Alert.CreatedDate.Year() == 2024 {
		t.Error("CreatedDate must stay the persistence timestamp")
	}
}

func TestEvaluateHighThresholdCompliant(t *testing.T) {
	eq := testEquipment(200)
	ev := NewEvaluator()

	d0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d0, 100)
	incoming := testInspection(eq, d0.AddDate(0, 0, 30), 85)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !res.Compliant {
		t.Error("182.5%% against a 200%% threshold must be compliant")
	}
	if res.Alert != nil {
		t.Error("compliant evaluation must not raise an alert")
	}
}

func TestEvaluateRateAtThresholdIsCompliant(t *testing.T) {
	// 10 lbs lost from 100 over 365 days is exactly 10%/yr.
	eq := testEquipment(10)
	ev := NewEvaluator()

	d0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d0, 100)
	incoming := testInspection(eq, d0.AddDate(0, 0, 365), 90)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.LeakRate == nil || math.Abs(*res.LeakRate-10) > 1e-9 {
		t.Fatalf("LeakRate = %v, want 10", res.LeakRate)
	}
	if !res.Compliant {
		t.Error("a rate exactly at threshold is compliant")
	}
}

func TestEvaluateNoPreviousInspection(t *testing.T) {
	eq := testEquipment(10)
	ev := NewEvaluator()

	d := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	res, err := ev.Evaluate(eq, nil, testInspection(eq, d, 95))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.LeakRate != nil {
		t.Errorf("first inspection must not carry a rate, got %g", *res.LeakRate)
	}
	if !res.Compliant {
		t.Error("first inspection is compliant")
	}
	want := time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)
	if !res.NextInspectionDate.Equal(want) {
		t.Errorf("NextInspectionDate = %v, want %v", res.NextInspectionDate, want)
	}
}

func TestEvaluateSameDayFollowUp(t *testing.T) {
	eq := testEquipment(10)
	ev := NewEvaluator()

	d := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d, 100)
	incoming := testInspection(eq, d.Add(4*time.Hour), 80)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.LeakRate != nil {
		t.Error("zero-day gap must not produce a rate")
	}
	if !res.Compliant || res.Alert != nil {
		t.Error("uncomputable rate is never a violation")
	}
}

func TestEvaluateZeroPreviousCharge(t *testing.T) {
	eq := testEquipment(10)
	ev := NewEvaluator()

	d0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d0, 0)
	incoming := testInspection(eq, d0.AddDate(0, 0, 10), 0)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.LeakRate != nil {
		t.Error("zero previous charge must not produce a rate")
	}
	if !res.Compliant {
		t.Error("zero previous charge skips evaluation, stays compliant")
	}
}

func TestEvaluateChargeIncreaseYieldsNegativeRate(t *testing.T) {
	eq := testEquipment(10)
	ev := NewEvaluator()

	d0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d0, 80)
	incoming := testInspection(eq, d0.AddDate(0, 0, 73), 90)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.LeakRate == nil || *res.LeakRate >= 0 {
		t.Fatalf("LeakRate = %v, want negative", res.LeakRate)
	}
	if !res.Compliant {
		t.Error("negative rate is compliant")
	}
}

func TestEvaluateInvalidThreshold(t *testing.T) {
	ev := NewEvaluator()
	d := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, th := range []float64{0, -5} {
		eq := testEquipment(th)
		_, err := ev.Evaluate(eq, nil, testInspection(eq, d, 100))
		if !errors.IsCode(err, errors.ErrCodeInvalidLeakRateThreshold) {
			t.Errorf("threshold %g: expected invalid-threshold error, got %v", th, err)
		}
	}
}

func TestApplyCopiesOutcome(t *testing.T) {
	eq := testEquipment(10)
	ev := NewEvaluator()

	d0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := testInspection(eq, d0, 100)
	incoming := testInspection(eq, d0.AddDate(0, 0, 30), 85)

	res, err := ev.Evaluate(eq, prev, incoming)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	res.Apply(incoming)

	if incoming.CalculatedLeakRate == nil || *incoming.CalculatedLeakRate != *res.LeakRate {
		t.Error("rate not copied onto inspection")
	}
	if incoming.Compliant {
		t.Error("verdict not copied onto inspection")
	}
	if incoming.NextInspectionDate == nil || !incoming.NextInspectionDate.Equal(res.NextInspectionDate) {
		t.Error("next inspection date not copied onto inspection")
	}
}

//Personal.AI order the ending
