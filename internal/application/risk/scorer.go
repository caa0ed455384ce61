// Package risk implements predictive leak-risk scoring over inspection
// history, equipment age, and service frequency.
package risk

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/turtacn/FreonTrack-Compliance/internal/domain/equipment"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/inspection"
	"github.com/turtacn/FreonTrack-Compliance/internal/domain/servicelog"
	"github.com/turtacn/FreonTrack-Compliance/pkg/errors"
	"github.com/turtacn/FreonTrack-Compliance/pkg/types/common"
)

// Factor weights.  Non-compliance stacks up to three occurrences; everything
// else contributes at most once.
const (
	weightIncreasingTrend    = 30
	weightNearThreshold      = 40
	weightApproachThreshold  = 25
	weightPerNonCompliance   = 20
	maxNonComplianceStacking = 3
	weightAgeOver15          = 15
	weightAgeOver10          = 10
	weightHighServiceFreq    = 10
)

// Band boundaries for qualitative risk levels.
const (
	scoreCritical = 70
	scoreHigh     = 40
	scoreMedium   = 20
)

// historyWindow is how many recent inspections feed the analysis.
const historyWindow = 10

// trendWindow is how many of the most recent inspections feed the trend
// factor.
const trendWindow = 3

// minServiceLogsForFlag is the service-log count above which an appliance is
// considered frequently serviced.
const minServiceLogsForFlag = 5

// Assessment is the scored risk profile of one appliance.
type Assessment struct {
	EquipmentID   common.ID `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`

	RiskLevel common.RiskLevel `json:"risk_level"`
	RiskScore int              `json:"risk_score"`

	// Confidence reflects history depth: High with five or more inspections,
	// Medium otherwise, Low when there is not enough data to score at all.
	Confidence string `json:"confidence"`

	Prediction     string   `json:"prediction,omitempty"`
	RiskFactors    []string `json:"risk_factors,omitempty"`
	Recommendation string   `json:"recommendation"`
	Message        string   `json:"message,omitempty"`

	CurrentLeakRate     float64 `json:"current_leak_rate"`
	Threshold           float64 `json:"threshold"`
	InspectionsAnalyzed int     `json:"inspections_analyzed"`
}

// Scorer computes risk assessments.  It is deterministic for a fixed "now":
// the clock is injected so tests can pin the age factor.
type Scorer struct {
	equipment   equipment.Repository
	inspections inspection.Repository
	services    servicelog.Repository
	now         func() time.Time
}

// NewScorer constructs a Scorer using the wall clock.
func NewScorer(eq equipment.Repository, ins inspection.Repository, svc servicelog.Repository) *Scorer {
	return &Scorer{
		equipment:   eq,
		inspections: ins,
		services:    svc,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the scorer's clock.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// ScoreEquipment assesses one appliance from its ten most recent inspections.
//
// With fewer than two inspections on file no prediction is possible and the
// assessment comes back Unknown at score zero rather than failing.
func (s *Scorer) ScoreEquipment(ctx context.Context, equipmentID common.ID) (*Assessment, error) {
	eq, err := s.equipment.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEquipmentNotFound, "")
	}

	history, err := s.inspections.ListForEquipment(ctx, equipmentID, historyWindow)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRiskScoringFailed, "load inspection history")
	}

	if len(history) < 2 {
		return &Assessment{
			EquipmentID:    eq.ID,
			EquipmentName:  eq.Name,
			RiskLevel:      common.RiskLevelUnknown,
			RiskScore:      0,
			Confidence:     "Low",
			Message:        "Insufficient data for prediction (need at least 2 inspections)",
			Recommendation: "Continue regular inspections to build data history",
			Threshold:      eq.LeakRateThreshold,
			InspectionsAnalyzed: len(history),
		}, nil
	}

	score := 0
	var factors []string

	// Trend over the most recent inspections.  history is newest-first, so an
	// increase means the newest computed rate exceeds the oldest in the window.
	var recentRates []float64
	for _, ins := range history[:minInt(trendWindow, len(history))] {
		if r := leakRate(ins); r != 0 {
			recentRates = append(recentRates, r)
		}
	}
	if len(recentRates) >= 2 && recentRates[0] > recentRates[len(recentRates)-1] {
		score += weightIncreasingTrend
		factors = append(factors, fmt.Sprintf("Increasing leak rate trend (%.1f%% → %.1f%%)",
			recentRates[len(recentRates)-1], recentRates[0]))
	}

	// Proximity of the latest rate to the threshold.
	if latest := leakRate(history[0]); latest != 0 && eq.LeakRateThreshold > 0 {
		proximity := latest / eq.LeakRateThreshold * 100
		if proximity > 80 {
			score += weightNearThreshold
			factors = append(factors, fmt.Sprintf("Current leak rate at %.0f%% of threshold", proximity))
		} else if proximity > 60 {
			score += weightApproachThreshold
			factors = append(factors, fmt.Sprintf("Current leak rate at %.0f%% of threshold", proximity))
		}
	}

	// Non-compliant history.
	nonCompliant := 0
	for _, ins := range history {
		if !ins.Compliant {
			nonCompliant++
		}
	}
	if nonCompliant > 0 {
		score += weightPerNonCompliance * minInt(nonCompliant, maxNonComplianceStacking)
		factors = append(factors, fmt.Sprintf("Failed %d compliance checks in history", nonCompliant))
	}

	// Equipment age.
	if !eq.InstallDate.IsZero() {
		ageYears := s.now().Sub(eq.InstallDate).Hours() / 24 / 365
		if ageYears > 15 {
			score += weightAgeOver15
			factors = append(factors, fmt.Sprintf("Equipment age: %.1f years", ageYears))
		} else if ageYears > 10 {
			score += weightAgeOver10
			factors = append(factors, fmt.Sprintf("Equipment age: %.1f years", ageYears))
		}
	}

	// Service frequency.
	serviceCount, err := s.services.CountForEquipment(ctx, equipmentID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRiskScoringFailed, "count service logs")
	}
	if serviceCount > minServiceLogsForFlag {
		score += weightHighServiceFreq
		factors = append(factors, fmt.Sprintf("High service frequency (%d service logs)", serviceCount))
	}

	a := &Assessment{
		EquipmentID:         eq.ID,
		EquipmentName:       eq.Name,
		RiskScore:           score,
		RiskFactors:         factors,
		CurrentLeakRate:     leakRate(history[0]),
		Threshold:           eq.LeakRateThreshold,
		InspectionsAnalyzed: len(history),
	}
	if len(history) >= 5 {
		a.Confidence = "High"
	} else {
		a.Confidence = "Medium"
	}

	switch {
	case score >= scoreCritical:
		a.RiskLevel = common.RiskLevelCritical
		a.Prediction = fmt.Sprintf("High probability (%d%%) of exceeding leak threshold within 30 days", score)
		a.Recommendation = "Immediate inspection recommended. Consider proactive repair or replacement."
	case score >= scoreHigh:
		a.RiskLevel = common.RiskLevelHigh
		a.Prediction = fmt.Sprintf("Moderate probability (%d%%) of exceeding leak threshold within 60 days", score)
		a.Recommendation = "Schedule inspection within 2 weeks. Monitor closely."
	case score >= scoreMedium:
		a.RiskLevel = common.RiskLevelMedium
		a.Prediction = fmt.Sprintf("Low probability (%d%%) of exceeding leak threshold in near term", score)
		a.Recommendation = "Continue regular inspection schedule."
	default:
		a.RiskLevel = common.RiskLevelLow
		a.Prediction = "Equipment performing within normal parameters"
		a.Recommendation = "Maintain current inspection frequency."
	}

	return a, nil
}

// ScoreAllActive assesses every active appliance, sorted by score descending.
// Appliances that fail to score are skipped, not fatal; ties keep the listing
// order of the equipment repository.
func (s *Scorer) ScoreAllActive(ctx context.Context) ([]*Assessment, error) {
	active, err := s.equipment.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRiskScoringFailed, "list active equipment")
	}

	assessments := make([]*Assessment, 0, len(active))
	for _, eq := range active {
		a, err := s.ScoreEquipment(ctx, eq.ID)
		if err != nil {
			continue
		}
		assessments = append(assessments, a)
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].RiskScore > assessments[j].RiskScore
	})
	return assessments, nil
}

// leakRate unwraps an inspection's computed rate, zero when absent.
func leakRate(ins *inspection.LeakInspection) float64 {
	if ins.CalculatedLeakRate == nil {
		return 0
	}
	return *ins.CalculatedLeakRate
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

//Personal.AI order the ending
