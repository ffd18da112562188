package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/models"
)

// Get methods return (nil, nil) when the row does not exist.

// CardRepository handles card data access
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) error
	Get(ctx context.Context, userID, cardID uuid.UUID) (*models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Update(ctx context.Context, userID, cardID uuid.UUID, update models.CardUpdate, updatedAt time.Time) (*models.Card, error)
	Delete(ctx context.Context, userID, cardID uuid.UUID) (bool, error)
	// ListWithProgress returns every card of the user joined with its progress row, if any.
	ListWithProgress(ctx context.Context, userID uuid.UUID) ([]models.CardWithProgress, error)
}

// HierarchyRepository handles hierarchy node data access
type HierarchyRepository interface {
	Insert(ctx context.Context, node models.Hierarchy) error
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Hierarchy, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Hierarchy, error)
	FindRootByName(ctx context.Context, userID uuid.UUID, name string, nodeType models.HierarchyType) (*models.Hierarchy, error)
}

// ProgressRepository handles per-(user, card) scheduling state
type ProgressRepository interface {
	Get(ctx context.Context, userID, cardID uuid.UUID) (*models.CardProgress, error)
	Upsert(ctx context.Context, progress models.CardProgress) error
	AverageEase(ctx context.Context, userID uuid.UUID) (float64, error)
}

// ReviewRepository handles the append-only review log
type ReviewRepository interface {
	// Append inserts the review unless a review with the same id exists.
	// It reports whether a row was inserted.
	Append(ctx context.Context, review models.Review) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.Review, error)
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

// StreakRepository handles per-user study streaks
type StreakRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserStreak, error)
	Upsert(ctx context.Context, streak models.UserStreak) error
}

// TxManager runs fn inside a transaction carried by the context passed to fn.
// Repositories called with that context join the transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
