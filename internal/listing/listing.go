// Package listing implements the shared list-presentation pipeline: a
// structural filter, a case-insensitive substring search, a stable sort and
// fixed-size pagination, applied in that order.
package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
)

// PageSize is the fixed page length for every list view.
const PageSize = 10

// FilterHighRisk keeps patients whose most recent assessment's risk level
// lowercases to "high". Patients without assessments are dropped.
func FilterHighRisk(patients []model.Patient) []model.Patient {
	var out []model.Patient
	for _, p := range patients {
		if len(p.Assessments) == 0 {
			continue
		}
		if model.IsHighRisk(p.Assessments[len(p.Assessments)-1].RiskLevel) {
			out = append(out, p)
		}
	}
	return out
}

// SearchPatients keeps patients whose name or contact info contains the
// query, case-insensitively. An empty query keeps everything.
func SearchPatients(patients []model.Patient, query string) []model.Patient {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return patients
	}
	var out []model.Patient
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.ContactInfo), query) {
			out = append(out, p)
		}
	}
	return out
}

// SortPatients returns patients in server order, reversed when configured.
// The reversal is a display preference carried over from the source app.
func SortPatients(patients []model.Patient, reverse bool) []model.Patient {
	out := make([]model.Patient, len(patients))
	copy(out, patients)
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// FilterFollowUps keeps tasks whose effective status at now equals status.
// "All" or "" keeps everything. Matching runs on the derived status, so the
// Overdue filter works even though upstream never stores Overdue.
func FilterFollowUps(tasks []model.FollowUp, status string, now time.Time) []model.FollowUp {
	if status == "" || status == "All" {
		return tasks
	}
	var out []model.FollowUp
	for _, t := range tasks {
		if t.EffectiveStatus(now) == status {
			out = append(out, t)
		}
	}
	return out
}

// SearchFollowUps matches against the patient name and task description.
func SearchFollowUps(tasks []model.FollowUp, query string) []model.FollowUp {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tasks
	}
	var out []model.FollowUp
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.PatientName), query) ||
			strings.Contains(strings.ToLower(t.TaskDescription), query) {
			out = append(out, t)
		}
	}
	return out
}

// SortFollowUps orders incomplete tasks before completed ones, ascending by
// due date within each group. The sort is stable so equal due dates keep
// their fetched order.
func SortFollowUps(tasks []model.FollowUp) []model.FollowUp {
	out := make([]model.FollowUp, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed() != out[j].Completed() {
			return !out[i].Completed()
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}
