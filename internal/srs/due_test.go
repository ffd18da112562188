package srs_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/srs"
)

func card(created time.Time, progress *models.CardProgress) models.CardWithProgress {
	return models.CardWithProgress{
		Card:     models.Card{ID: uuid.New(), CreatedAt: created},
		Progress: progress,
	}
}

func TestSelectDue_Membership(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	never := card(now.Add(-time.Hour), nil)
	boundary := card(now.Add(-48*time.Hour), &models.CardProgress{DueAt: now})
	overdue := card(now.Add(-72*time.Hour), &models.CardProgress{DueAt: now.Add(-24 * time.Hour)})
	future := card(now.Add(-96*time.Hour), &models.CardProgress{DueAt: now.Add(time.Second)})

	due := srs.SelectDue([]models.CardWithProgress{future, never, boundary, overdue}, now)

	ids := make([]uuid.UUID, 0, len(due))
	for _, c := range due {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, never.ID, "never-reviewed card is always due")
	assert.Contains(t, ids, boundary.ID, "due date equal to now is inclusive")
	assert.Contains(t, ids, overdue.ID)
	assert.NotContains(t, ids, future.ID, "future due date is excluded")
}

func TestSelectDue_Ordering(t *testing.T) {
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	a := card(now.Add(-10*day), &models.CardProgress{DueAt: now.Add(-3 * day)})
	b := card(now.Add(-2*day), nil)
	c := card(now.Add(-9*day), &models.CardProgress{DueAt: now.Add(-3 * day)})
	d := card(now.Add(-1*day), &models.CardProgress{DueAt: now})

	due := srs.SelectDue([]models.CardWithProgress{d, c, b, a}, now)
	require.Len(t, due, 4)

	assert.Equal(t, a.ID, due[0].ID, "earliest due, older card first on tie")
	assert.Equal(t, c.ID, due[1].ID)
	assert.Equal(t, b.ID, due[2].ID, "never-reviewed sorts at creation time")
	assert.Equal(t, d.ID, due[3].ID)
}

func TestSelectDue_Empty(t *testing.T) {
	due := srs.SelectDue(nil, time.Now())
	assert.Empty(t, due)
}
