package client

import "time"

// RiskAssessment mirrors the server's risk assessment payload.
type RiskAssessment struct {
	EquipmentID   string `json:"equipment_id"`
	EquipmentName string `json:"equipment_name"`

	RiskLevel  string `json:"risk_level"`
	RiskScore  int    `json:"risk_score"`
	Confidence string `json:"confidence"`

	Prediction     string   `json:"prediction,omitempty"`
	RiskFactors    []string `json:"risk_factors,omitempty"`
	Recommendation string   `json:"recommendation"`
	Message        string   `json:"message,omitempty"`

	CurrentLeakRate     float64 `json:"current_leak_rate"`
	Threshold           float64 `json:"threshold"`
	InspectionsAnalyzed int     `json:"inspections_analyzed"`
}

// ComplianceStatus mirrors the per-appliance compliance snapshot.  Equipment
// details are kept loose so SDK consumers are not coupled to the server's
// entity shape.
type ComplianceStatus struct {
	Equipment          map[string]interface{} `json:"equipment"`
	CurrentLeakRate    *float64               `json:"current_leak_rate,omitempty"`
	Compliant          bool                   `json:"compliant"`
	InspectionOverdue  bool                   `json:"inspection_overdue"`
	NextInspectionDate *time.Time             `json:"next_inspection_date,omitempty"`
	OpenAlerts         int                    `json:"open_alerts"`
}

// ComplianceReportLine is one appliance row in the fleet compliance report.
type ComplianceReportLine struct {
	Equipment         map[string]interface{} `json:"equipment"`
	CurrentLeakRate   *float64               `json:"current_leak_rate,omitempty"`
	Compliant         bool                   `json:"compliant"`
	InspectionOverdue bool                   `json:"inspection_overdue"`
	InspectionsOnFile int64                  `json:"inspections_on_file"`
}

// ComplianceReport mirrors the fleet-wide compliance report.
type ComplianceReport struct {
	GeneratedAt       time.Time              `json:"generated_at"`
	TotalEquipment    int                    `json:"total_equipment"`
	CompliantCount    int                    `json:"compliant_count"`
	NonCompliantCount int                    `json:"non_compliant_count"`
	OverdueCount      int                    `json:"overdue_count"`
	Lines             []ComplianceReportLine `json:"lines"`
}

//Personal.AI order the ending
