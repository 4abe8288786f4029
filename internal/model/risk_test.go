package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRisk(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Low", RiskLow},
		{"low", RiskLow},
		{"Med", RiskMedium},
		{"med", RiskMedium},
		{"Medium", RiskMedium},
		{"MEDIUM", RiskMedium},
		{"High", RiskHigh},
		{" high ", RiskHigh},
		{"", RiskUnknown},
		{"critical", RiskUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRisk(tt.raw), "raw=%q", tt.raw)
	}
}

func TestIsHighRisk(t *testing.T) {
	assert.True(t, IsHighRisk("High"))
	assert.True(t, IsHighRisk("HIGH"))
	assert.False(t, IsHighRisk("Med"))
	assert.False(t, IsHighRisk(""))
}

func TestPatientCurrentRisk(t *testing.T) {
	p := &Patient{}
	assert.Equal(t, RiskUnknown, p.CurrentRisk())

	p.Assessments = []Assessment{
		{RiskLevel: "High"},
		{RiskLevel: "Med"},
	}
	// Last assessment wins, normalized for display.
	assert.Equal(t, RiskMedium, p.CurrentRisk())
}
