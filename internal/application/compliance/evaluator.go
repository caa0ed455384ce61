// Package compliance implements the EPA Section 608 leak-rate evaluation
// engine and the inspection recording workflow built on top of it.
package compliance

import (
	"fmt"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/alert"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
)

// daysPerYear is the annualization constant mandated by 40 CFR Part 82 leak
// rate math.
const daysPerYear = 365.0

// EvaluationResult is the outcome of evaluating one incoming inspection
// against the previous one.
type EvaluationResult struct {
	// LeakRate is the annualized leak rate in percent.  Nil when the rate
	// could not be computed: no previous inspection, a non-positive day gap,
	// or a previous reading with zero charge.
	LeakRate *float64

	// ChargeDeficit is the refrigerant lost since the previous inspection in
	// lbs (negative when charge increased).  Set only when LeakRate is set.
	ChargeDeficit *float64

	// Compliant is false only when a computed rate exceeds the equipment
	// threshold.  An uncomputable rate is never a violation.
	Compliant bool

	// Alert is the Critical alert draft raised on violation, nil otherwise.
	// The caller is responsible for persisting it.
	Alert *alert.ComplianceAlert

	// NextInspectionDate is always set: inspection date plus the equipment's
	// inspection frequency.
	NextInspectionDate time.Time
}

// Evaluator computes annualized leak rates and compliance verdicts.  It is
// stateless and pure: it does not persist anything and never touches a clock,
// so identical inputs always produce identical results.
type Evaluator struct{}

// NewEvaluator returns a ready Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate determines the compliance outcome of the incoming inspection.
//
// previous must be the latest inspection recorded for the equipment before
// the incoming one, or nil when none exists.  The annualized rate is
//
//	(previousCharge − currentCharge) / previousCharge × (365 / daysBetween) × 100
//
// and is computed only when previous exists, the day gap is positive, and the
// previous charge is positive.  In every other case the incoming inspection
// carries no rate and is treated as compliant.
//
// The only failure is a non-positive leak-rate threshold on the equipment;
// every data-shaped degeneracy is expressed in the result instead.
func (ev *Evaluator) Evaluate(eq *equipment.Equipment, previous, incoming *inspection.LeakInspection) (*EvaluationResult, error) {
	if eq == nil || incoming == nil {
		return nil, errors.InvalidParam("equipment and incoming inspection are required")
	}
	if eq.LeakRateThreshold <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLeakRateThreshold, "").
			WithDetailf("equipment=%s threshold=%g", eq.ID, eq.LeakRateThreshold)
	}

	result := &EvaluationResult{
		Compliant:          true,
		NextInspectionDate: incoming.InspectionDate.AddDate(0, 0, eq.InspectionFrequencyDays),
	}

	if previous != nil && previous.CurrentCharge > 0 {
		daysBetween := daysBetweenDates(previous.InspectionDate, incoming.InspectionDate)
		if daysBetween > 0 {
			deficit := previous.CurrentCharge - incoming.CurrentCharge
			rate := (deficit / previous.CurrentCharge) * (daysPerYear / float64(daysBetween)) * 100

			result.ChargeDeficit = &deficit
			result.LeakRate = &rate
			result.Compliant = rate <= eq.LeakRateThreshold

			if !result.Compliant {
				result.Alert = alert.New(
					eq.ID,
					alert.TypeLeakRateExceeded,
					alert.SeverityCritical,
					fmt.Sprintf("Equipment %s: Leak Rate Exceeds Threshold", eq.Name),
					fmt.Sprintf("Annual leak rate of %.2f%% exceeds threshold of %g%%. Immediate repair required per 40 CFR 82.156.",
						rate, eq.LeakRateThreshold),
				)
				// The violation is dated to the inspection that revealed it,
				// not to when the row was written.
				result.Alert.AlertDate = incoming.InspectionDate
			}
		}
	}

	return result, nil
}

// Apply copies the evaluation outcome onto the inspection record.
func (r *EvaluationResult) Apply(ins *inspection.LeakInspection) {
	ins.CalculatedLeakRate = r.LeakRate
	ins.Compliant = r.Compliant
	next := r.NextInspectionDate
	ins.NextInspectionDate = &next
}

// daysBetweenDates returns the whole-day calendar gap between two instants,
// ignoring the time-of-day component the way inspection dates are recorded.
func daysBetweenDates(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

//Personal.AI order the ending
