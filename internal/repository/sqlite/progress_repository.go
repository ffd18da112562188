package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, cardID uuid.UUID) (*models.CardProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%s, card_id=%s", userID, cardID)

	var p models.CardProgress
	err := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT user_id, card_id, interval_days, ease_factor, due_at, last_reviewed
FROM card_progress
WHERE user_id = ? AND card_id = ?
`, userID, cardID).Scan(&p.UserID, &p.CardID, &p.IntervalDays, &p.EaseFactor, &p.DueAt, &p.LastReviewed)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no progress yet: card_id=%s", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.CardProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: card_id=%s, interval=%d, ease=%.2f, due_at=%s",
		p.CardID, p.IntervalDays, p.EaseFactor, p.DueAt.Format("2006-01-02"))

	_, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO card_progress (user_id, card_id, interval_days, ease_factor, due_at, last_reviewed)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, card_id) DO UPDATE SET
    interval_days = excluded.interval_days,
    ease_factor = excluded.ease_factor,
    due_at = excluded.due_at,
    last_reviewed = excluded.last_reviewed
`, p.UserID, p.CardID, p.IntervalDays, p.EaseFactor, p.DueAt.UTC(), p.LastReviewed.UTC())
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

// AverageEase returns the mean ease factor over the user's reviewed cards, or 0 when
// none have been reviewed.
func (r *progressRepository) AverageEase(ctx context.Context, userID uuid.UUID) (float64, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var avg sql.NullFloat64
	err := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT AVG(ease_factor) FROM card_progress WHERE user_id = ?
`, userID).Scan(&avg)
	if err != nil {
		log.Error("failed to compute average ease: %v", err)
		return 0, err
	}
	return avg.Float64, nil
}
