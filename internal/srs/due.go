package srs

import (
	"bytes"
	"sort"
	"time"

	"github.com/vytor/flashreel/internal/models"
)

// IsDue reports whether a card should be presented at now. Cards never reviewed are always due.
func IsDue(c models.CardWithProgress, now time.Time) bool {
	if c.Progress == nil {
		return true
	}
	return !c.Progress.DueAt.After(now)
}

// SelectDue returns the cards due at now, ordered by due date ascending.
// Never-reviewed cards sort as if due at creation. Ties fall back to creation time, then id.
func SelectDue(cards []models.CardWithProgress, now time.Time) []models.CardWithProgress {
	due := make([]models.CardWithProgress, 0, len(cards))
	for _, c := range cards {
		if IsDue(c, now) {
			due = append(due, c)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		di, dj := dueKey(due[i]), dueKey(due[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if !due[i].CreatedAt.Equal(due[j].CreatedAt) {
			return due[i].CreatedAt.Before(due[j].CreatedAt)
		}
		return bytes.Compare(due[i].ID[:], due[j].ID[:]) < 0
	})
	return due
}

func dueKey(c models.CardWithProgress) time.Time {
	if c.Progress == nil {
		return c.CreatedAt
	}
	return c.Progress.DueAt
}
