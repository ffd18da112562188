package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashreel/internal/db"
	"github.com/vytor/flashreel/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The pool is capped at one connection so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(":memory:")
	require.NoError(t, err)
	return d.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// SeedTopic inserts a root topic node for userID and returns its id.
func SeedTopic(t *testing.T, sqlDB *sql.DB, userID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := sqlDB.ExecContext(context.Background(), `
INSERT INTO hierarchy (id, user_id, parent_id, name, type, created_at)
VALUES (?, ?, NULL, ?, ?, ?)
`, id, userID, name, models.HierarchyTopic, time.Now().UTC())
	require.NoError(t, err)
	return id
}

// SeedCard inserts a flashcard under hierarchyID and returns it.
func SeedCard(t *testing.T, sqlDB *sql.DB, userID, hierarchyID uuid.UUID, question string, createdAt time.Time) models.Card {
	t.Helper()
	c := models.Card{
		ID:          uuid.New(),
		UserID:      userID,
		HierarchyID: hierarchyID,
		Question:    question,
		Answer:      "answer to " + question,
		Kind:        models.CardKindFlashcard,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   createdAt.UTC(),
	}
	_, err := sqlDB.ExecContext(context.Background(), `
INSERT INTO cards (id, user_id, hierarchy_id, question, answer, kind, media_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, NULL, ?, ?)
`, c.ID, c.UserID, c.HierarchyID, c.Question, c.Answer, c.Kind, c.CreatedAt, c.UpdatedAt)
	require.NoError(t, err)
	return c
}
