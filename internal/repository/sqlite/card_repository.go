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

const cardColumns = "c.id, c.user_id, c.hierarchy_id, c.question, c.answer, c.kind, c.media_url, c.created_at, c.updated_at"

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner, c *models.Card, extra ...any) error {
	var media sql.NullString
	dest := append([]any{&c.ID, &c.UserID, &c.HierarchyID, &c.Question, &c.Answer, &c.Kind, &media, &c.CreatedAt, &c.UpdatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if media.Valid {
		c.MediaURL = &media.String
	}
	return nil
}

func (r *cardRepository) Insert(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s, hierarchy_id=%s", c.ID, c.HierarchyID)

	_, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO cards (id, user_id, hierarchy_id, question, answer, kind, media_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.UserID, c.HierarchyID, c.Question, c.Answer, c.Kind, c.MediaURL, c.CreatedAt.UTC(), c.UpdatedAt.UTC())
	if err != nil {
		log.Error("failed to insert card: %v", err)
	}
	return err
}

func (r *cardRepository) Get(ctx context.Context, userID, cardID uuid.UUID) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("getting card: id=%s", cardID)

	var c models.Card
	row := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT `+cardColumns+`
FROM cards c
WHERE c.id = ? AND c.user_id = ?
`, cardID, userID)
	err := scanCard(row, &c)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%s", cardID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: user_id=%s", filter.UserID)

	query := sqlBuilder.Select(cardColumns).
		From("cards c").
		Where(squirrel.Eq{"c.user_id": filter.UserID}).
		OrderBy("c.created_at DESC", "c.id")

	if filter.HierarchyID != nil {
		query = query.Where(squirrel.Eq{"c.hierarchy_id": *filter.HierarchyID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"c.kind": filter.Kind})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build card list query: %v", err)
		return nil, err
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := scanCard(rows, &c); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *cardRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	var n int
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		log.Error("failed to count cards: %v", err)
	}
	return n, err
}

func (r *cardRepository) Update(ctx context.Context, userID, cardID uuid.UUID, u models.CardUpdate, updatedAt time.Time) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%s", cardID)

	query := sqlBuilder.Update("cards").
		Set("updated_at", updatedAt.UTC()).
		Where(squirrel.Eq{"id": cardID, "user_id": userID})

	if u.Question != nil {
		query = query.Set("question", *u.Question)
	}
	if u.Answer != nil {
		query = query.Set("answer", *u.Answer)
	}
	if u.HierarchyID != nil {
		query = query.Set("hierarchy_id", *u.HierarchyID)
	}
	if u.MediaURL != nil {
		// An empty URL clears the media and turns the card back into a plain flashcard.
		if *u.MediaURL == "" {
			query = query.Set("media_url", nil).Set("kind", models.CardKindFlashcard)
		} else {
			query = query.Set("media_url", *u.MediaURL).Set("kind", models.CardKindVideo)
		}
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build card update: %v", err)
		return nil, err
	}

	res, err := conn(ctx, r.db).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Debug("card not found for update: id=%s", cardID)
		return nil, nil
	}
	return r.Get(ctx, userID, cardID)
}

func (r *cardRepository) Delete(ctx context.Context, userID, cardID uuid.UUID) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("deleting card: id=%s", cardID)

	res, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM cards WHERE id = ? AND user_id = ?`, cardID, userID)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *cardRepository) ListWithProgress(ctx context.Context, userID uuid.UUID) ([]models.CardWithProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards with progress: user_id=%s", userID)

	rows, err := conn(ctx, r.db).QueryContext(ctx, `
SELECT `+cardColumns+`,
    p.interval_days, p.ease_factor, p.due_at, p.last_reviewed
FROM cards c
LEFT JOIN card_progress p ON p.card_id = c.id AND p.user_id = c.user_id
WHERE c.user_id = ?
`, userID)
	if err != nil {
		log.Error("failed to query cards with progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.CardWithProgress
	for rows.Next() {
		var (
			cp       models.CardWithProgress
			interval sql.NullInt64
			ease     sql.NullFloat64
			dueAt    sql.NullTime
			reviewed sql.NullTime
		)
		if err := scanCard(rows, &cp.Card, &interval, &ease, &dueAt, &reviewed); err != nil {
			log.Error("failed to scan card with progress: %v", err)
			return nil, err
		}
		if interval.Valid {
			cp.Progress = &models.CardProgress{
				UserID:       cp.UserID,
				CardID:       cp.ID,
				IntervalDays: int(interval.Int64),
				EaseFactor:   ease.Float64,
				DueAt:        dueAt.Time,
				LastReviewed: reviewed.Time,
			}
		}
		out = append(out, cp)
	}
	log.Debug("found %d cards", len(out))
	return out, rows.Err()
}
