package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRegistrations(t *testing.T) {
	d := &Dashboard{}
	assert.Zero(t, d.NewRegistrations())

	d.WeeklyPatientRegistrations = []WeeklyRegistration{{Count: 2}, {Count: 0}, {Count: 5}}
	assert.Equal(t, 7, d.NewRegistrations())
}
