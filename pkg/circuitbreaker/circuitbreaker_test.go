package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := New(Settings{Name: "upstream", MaxFailures: 2, Timeout: time.Minute})
	fail := func() error { return errors.New("boom") }

	assert.Error(t, cb.Execute(fail))
	assert.Equal(t, "closed", cb.State())

	assert.Error(t, cb.Execute(fail))
	assert.Equal(t, "open", cb.State())

	err := cb.Execute(func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
}

func TestRecoversAfterTimeout(t *testing.T) {
	cb := New(Settings{Name: "upstream", MaxFailures: 1, Timeout: 10 * time.Millisecond})

	assert.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	assert.Equal(t, "open", cb.State())

	time.Sleep(20 * time.Millisecond)

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, "closed", cb.State())
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(Settings{Name: "upstream", MaxFailures: 2, Timeout: time.Minute})

	assert.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Error(t, cb.Execute(func() error { return errors.New("boom") }))
	assert.Equal(t, "closed", cb.State())
}
