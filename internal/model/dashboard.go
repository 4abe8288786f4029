package model

// Dashboard is the aggregate snapshot from GET /dashboard/. All fields
// default to zero values so a partial or unexpected upstream shape renders
// as empty rather than failing.
type Dashboard struct {
	Counts                     DashboardCounts      `json:"counts"`
	RiskDistribution           RiskDistribution     `json:"risk_distribution"`
	WeeklyPatientRegistrations []WeeklyRegistration `json:"weekly_patient_registrations"`
	AgeDistribution            []AgeBucket          `json:"age_distribution"`
}

type DashboardCounts struct {
	TotalPatients     int `json:"total_patients"`
	HighRiskPatients  int `json:"high_risk_patients"`
	UpcomingFollowUps int `json:"upcoming_followups"`
}

type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type WeeklyRegistration struct {
	Count int `json:"count"`
}

type AgeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// NewRegistrations sums the weekly registration counts for the
// "New Registrations" KPI.
func (d *Dashboard) NewRegistrations() int {
	total := 0
	for _, w := range d.WeeklyPatientRegistrations {
		total += w.Count
	}
	return total
}
