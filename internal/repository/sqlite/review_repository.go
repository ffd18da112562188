package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Append(ctx context.Context, rv models.Review) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("appending review: id=%s, card_id=%s, quality=%d", rv.ID, rv.CardID, rv.Quality)

	res, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO reviews (id, user_id, card_id, quality, reviewed_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING
`, rv.ID, rv.UserID, rv.CardID, rv.Quality, rv.ReviewedAt.UTC())
	if err != nil {
		log.Error("failed to append review: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		log.Debug("review already recorded: id=%s", rv.ID)
	}
	return n > 0, nil
}

func (r *reviewRepository) Get(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	var rv models.Review
	err := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT id, user_id, card_id, quality, reviewed_at FROM reviews WHERE id = ?
`, id).Scan(&rv.ID, &rv.UserID, &rv.CardID, &rv.Quality, &rv.ReviewedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review: %v", err)
		return nil, err
	}
	return &rv, nil
}

func (r *reviewRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Review, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing reviews: user_id=%s, since=%s", userID, since.Format(time.RFC3339))

	sqlStr, args, err := sqlBuilder.
		Select("id", "user_id", "card_id", "quality", "reviewed_at").
		From("reviews").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"reviewed_at": since.UTC()}).
		OrderBy("reviewed_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.CardID, &rv.Quality, &rv.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	log.Debug("found %d reviews", len(reviews))
	return reviews, rows.Err()
}

func (r *reviewRepository) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	var n int
	err := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT COUNT(*) FROM reviews WHERE user_id = ? AND reviewed_at >= ?
`, userID, since.UTC()).Scan(&n)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
	}
	return n, err
}
