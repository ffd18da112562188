package srs

import (
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/models"
)

// NextStreak applies one study day to a user's streak. today is a calendar date.
// The second return value is false when the streak is already up to date for today.
//
//	no row             -> 1
//	last == today      -> unchanged
//	last == yesterday  -> +1
//	older or in future -> 1
func NextStreak(existing *models.UserStreak, userID uuid.UUID, today time.Time, now time.Time) (models.UserStreak, bool) {
	if existing == nil {
		return models.UserStreak{
			UserID:        userID,
			CurrentStreak: 1,
			LastStudyDate: today,
			UpdatedAt:     now,
		}, true
	}

	next := *existing
	switch clock.DaysBetween(existing.LastStudyDate, today) {
	case 0:
		return next, false
	case 1:
		next.CurrentStreak++
	default:
		next.CurrentStreak = 1
	}
	next.LastStudyDate = today
	next.UpdatedAt = now
	return next, true
}

// ActiveStreak is the streak as it should be displayed on date today: a streak whose
// last study day is before yesterday is already broken and reads as zero.
func ActiveStreak(s *models.UserStreak, today time.Time) int {
	if s == nil {
		return 0
	}
	switch clock.DaysBetween(s.LastStudyDate, today) {
	case 0, 1:
		return s.CurrentStreak
	default:
		return 0
	}
}
