package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/flashreel/internal/srs"
)

func TestComputeNextSchedule_PerfectProgression(t *testing.T) {
	interval, ease := srs.ComputeNextSchedule(5, 0, 2.5)
	assert.Equal(t, 1, interval, "first successful review schedules one day out")
	assert.InDelta(t, 2.6, ease, 1e-9)

	interval, ease = srs.ComputeNextSchedule(5, interval, ease)
	assert.Equal(t, 6, interval, "second successful review schedules six days out")
	assert.InDelta(t, 2.7, ease, 1e-9)

	interval, ease = srs.ComputeNextSchedule(5, interval, ease)
	assert.Equal(t, 16, interval, "round(6 * 2.7) = 16")
	assert.InDelta(t, 2.8, ease, 1e-9)
}

func TestComputeNextSchedule_FailureResetsInterval(t *testing.T) {
	interval, ease := srs.ComputeNextSchedule(0, 10, 2.5)
	assert.Equal(t, 1, interval)
	assert.Equal(t, 2.5, ease, "ease is left unchanged on failure")
}

func TestComputeNextSchedule_FailureIgnoresPriorInterval(t *testing.T) {
	for _, q := range []int{0, 1, 2} {
		for _, prior := range []int{0, 1, 6, 42, 365} {
			interval, ease := srs.ComputeNextSchedule(q, prior, 2.1)
			assert.Equal(t, 1, interval, "quality=%d prior=%d", q, prior)
			assert.Equal(t, 2.1, ease, "quality=%d prior=%d", q, prior)
		}
	}
}

func TestComputeNextSchedule_EaseDeltaByQuality(t *testing.T) {
	tests := []struct {
		name    string
		quality int
		delta   float64
	}{
		{name: "quality 5", quality: 5, delta: 0.1},
		{name: "quality 4", quality: 4, delta: 0.0},
		{name: "quality 3", quality: 3, delta: -0.14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ease := srs.ComputeNextSchedule(tt.quality, 6, 2.5)
			assert.InDelta(t, 2.5+tt.delta, ease, 1e-9)
		})
	}
}

func TestComputeNextSchedule_IntervalCalculation(t *testing.T) {
	tests := []struct {
		name     string
		quality  int
		interval int
		ease     float64
		expected int
	}{
		{name: "never reviewed", quality: 3, interval: 0, ease: 2.5, expected: 1},
		{name: "second success", quality: 4, interval: 1, ease: 2.5, expected: 6},
		{name: "multiplies by prior ease", quality: 4, interval: 6, ease: 2.5, expected: 15},
		{name: "rounds half away from zero", quality: 4, interval: 5, ease: 2.5, expected: 13},
		{name: "rounds down below half", quality: 4, interval: 3, ease: 1.4, expected: 4},
		{name: "uses prior ease not new ease", quality: 5, interval: 10, ease: 2.5, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, _ := srs.ComputeNextSchedule(tt.quality, tt.interval, tt.ease)
			assert.Equal(t, tt.expected, interval)
		})
	}
}

func TestComputeNextSchedule_MinEaseFactor(t *testing.T) {
	ease := 1.3
	interval := 10
	for i := 0; i < 20; i++ {
		interval, ease = srs.ComputeNextSchedule(3, interval, ease)
		assert.GreaterOrEqual(t, ease, srs.MinEaseFactor, "ease factor should not drop below 1.3")
	}

	_, ease = srs.ComputeNextSchedule(3, 4, 0.5)
	assert.Equal(t, srs.MinEaseFactor, ease, "floor applies even to a degenerate prior ease")
}

func TestComputeNextSchedule_RepeatedPerfectIsMonotonic(t *testing.T) {
	interval, ease := 0, srs.DefaultEaseFactor
	for i := 0; i < 15; i++ {
		nextInterval, nextEase := srs.ComputeNextSchedule(5, interval, ease)
		assert.GreaterOrEqual(t, nextInterval, interval)
		assert.GreaterOrEqual(t, nextEase, ease)
		assert.GreaterOrEqual(t, nextEase, srs.MinEaseFactor)
		interval, ease = nextInterval, nextEase
	}
}

func TestValidQuality(t *testing.T) {
	for q := 0; q <= 5; q++ {
		assert.True(t, srs.ValidQuality(q), "quality %d", q)
	}
	assert.False(t, srs.ValidQuality(-1))
	assert.False(t, srs.ValidQuality(6))
}
