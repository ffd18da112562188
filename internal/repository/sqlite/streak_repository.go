package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
)

type streakRepository struct {
	db *sql.DB
}

// NewStreakRepository creates a new StreakRepository implementation
func NewStreakRepository(db *sql.DB) repository.StreakRepository {
	return &streakRepository{db: db}
}

func (r *streakRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserStreak, error) {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")
	log.Debug("getting streak: user_id=%s", userID)

	var (
		s    models.UserStreak
		date string
	)
	err := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT user_id, current_streak, last_study_date, updated_at
FROM user_streaks
WHERE user_id = ?
`, userID).Scan(&s.UserID, &s.CurrentStreak, &date, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get streak: %v", err)
		return nil, err
	}
	if s.LastStudyDate, err = clock.ParseDate(date); err != nil {
		log.Error("invalid last_study_date %q: %v", date, err)
		return nil, err
	}
	return &s, nil
}

func (r *streakRepository) Upsert(ctx context.Context, s models.UserStreak) error {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")
	log.Debug("upserting streak: user_id=%s, current=%d, last_study_date=%s",
		s.UserID, s.CurrentStreak, clock.FormatDate(s.LastStudyDate))

	_, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO user_streaks (user_id, current_streak, last_study_date, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
    current_streak = excluded.current_streak,
    last_study_date = excluded.last_study_date,
    updated_at = excluded.updated_at
`, s.UserID, s.CurrentStreak, clock.FormatDate(s.LastStudyDate), s.UpdatedAt.UTC())
	if err != nil {
		log.Error("failed to upsert streak: %v", err)
	}
	return err
}
