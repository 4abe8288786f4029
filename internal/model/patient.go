package model

import "time"

// Patient is the registry record as served by the upstream API. The client
// never owns this data; every copy is transient and re-fetched per view.
type Patient struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Age         int          `json:"age"`
	Gender      string       `json:"gender"`
	ContactInfo string       `json:"contact_info"`
	CreatedAt   time.Time    `json:"created_at"`
	Indicators  []Indicator  `json:"indicators,omitempty"`
	Assessments []Assessment `json:"assessments,omitempty"`
	FollowUps   []FollowUp   `json:"follow_ups,omitempty"`
}

// CurrentRisk returns the normalized risk level of the patient's most recent
// assessment, or RiskUnknown when none exist.
func (p *Patient) CurrentRisk() string {
	if len(p.Assessments) == 0 {
		return RiskUnknown
	}
	return NormalizeRisk(p.Assessments[len(p.Assessments)-1].RiskLevel)
}

// Indicator is a timestamped clinical measurement. Append-only from this
// client; immutable once created.
type Indicator struct {
	ID               int64     `json:"id"`
	PatientID        int64     `json:"patient_id"`
	BloodPressureSys int       `json:"blood_pressure_sys"`
	BloodPressureDia int       `json:"blood_pressure_dia"`
	Glucose          float64   `json:"glucose"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// Assessment is a clinician-entered risk evaluation. Read-only here.
type Assessment struct {
	ID             int64     `json:"id"`
	PatientID      int64     `json:"patient_id"`
	RiskLevel      string    `json:"risk_level"`
	Notes          string    `json:"notes"`
	AssessmentDate time.Time `json:"assessment_date"`
}

type CreatePatientRequest struct {
	Name        string `form:"name" json:"name" binding:"required"`
	Age         int    `form:"age" json:"age" binding:"min=0,max=120"`
	Gender      string `form:"gender" json:"gender" binding:"required,oneof=male female other"`
	ContactInfo string `form:"contact_info" json:"contact_info" binding:"required"`
}

// UpdatePatientRequest carries the same editable fields; the upstream PUT
// replaces the record wholesale.
type UpdatePatientRequest = CreatePatientRequest

type CreateIndicatorRequest struct {
	PatientID        int64   `form:"-" json:"patient_id"`
	BloodPressureSys int     `form:"blood_pressure_sys" json:"blood_pressure_sys" binding:"min=50,max=250"`
	BloodPressureDia int     `form:"blood_pressure_dia" json:"blood_pressure_dia" binding:"min=30,max=150"`
	Glucose          float64 `form:"glucose" json:"glucose" binding:"min=20,max=600"`
}
