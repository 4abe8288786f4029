package model

import "time"

// Follow-up statuses as stored upstream. Overdue additionally exists as a
// derived display state, see EffectiveStatus.
const (
	FollowUpPending   = "Pending"
	FollowUpOverdue   = "Overdue"
	FollowUpCompleted = "Completed"
)

// FollowUp is a scheduled task tied to a patient. PatientName is denormalized
// from the nested upstream list shape for display.
type FollowUp struct {
	ID              int64      `json:"id"`
	PatientID       int64      `json:"patient_id"`
	PatientName     string     `json:"patient_name,omitempty"`
	TaskDescription string     `json:"task_description"`
	DueDate         time.Time  `json:"due_date"`
	Status          string     `json:"status"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// EffectiveStatus derives the display status at the given instant. A task
// past due and not completed shows as Overdue. The derivation is recomputed
// per render and never persisted.
func (f *FollowUp) EffectiveStatus(now time.Time) string {
	if f.Status != FollowUpCompleted && f.DueDate.Before(now) {
		return FollowUpOverdue
	}
	return f.Status
}

// Completed reports whether the task is done upstream.
func (f *FollowUp) Completed() bool {
	return f.Status == FollowUpCompleted
}

// PatientFollowUps is the nested shape returned by GET /followups: tasks
// grouped under their patient.
type PatientFollowUps struct {
	Patient   Patient    `json:"patient"`
	FollowUps []FollowUp `json:"followups"`
}

// Flatten denormalizes grouped follow-ups into display rows carrying the
// patient name and id.
func Flatten(groups []PatientFollowUps) []FollowUp {
	var tasks []FollowUp
	for _, g := range groups {
		for _, fu := range g.FollowUps {
			fu.PatientID = g.Patient.ID
			fu.PatientName = g.Patient.Name
			tasks = append(tasks, fu)
		}
	}
	return tasks
}

// UpdateFollowUpRequest is the PATCH body for marking a task done.
type UpdateFollowUpRequest struct {
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
