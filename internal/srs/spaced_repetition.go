package srs

import "math"

const (
	// DefaultEaseFactor is the ease assumed for a card that has never been reviewed.
	DefaultEaseFactor = 2.5
	// MinEaseFactor is the floor applied after every review.
	MinEaseFactor = 1.3

	MinQuality     = 0
	MaxQuality     = 5
	PassingQuality = 3
)

// ValidQuality reports whether q is a rating ComputeNextSchedule accepts.
func ValidQuality(q int) bool {
	return q >= MinQuality && q <= MaxQuality
}

// ComputeNextSchedule returns the next interval (days) and ease factor using an SM-2 variant.
// quality: 0-5, where 3 and above count as a successful recall.
//
// A failed review restarts the cadence at one day and leaves the ease factor untouched.
// Canonical SM-2 lowers ease on failure; this variant does not.
func ComputeNextSchedule(quality, priorInterval int, priorEase float64) (int, float64) {
	if quality < PassingQuality {
		return 1, math.Max(priorEase, MinEaseFactor)
	}

	var interval int
	switch priorInterval {
	case 0:
		interval = 1
	case 1:
		interval = 6
	default:
		// math.Round rounds half away from zero.
		interval = int(math.Round(float64(priorInterval) * priorEase))
	}

	miss := float64(MaxQuality - quality)
	ease := priorEase + (0.1 - miss*(0.08+miss*0.02))
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}
	return interval, ease
}
