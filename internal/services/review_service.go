package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
	"github.com/vytor/flashreel/internal/srs"
)

// ReviewInput is one rating action. A zero IdempotencyKey gets a fresh id; clients that
// may retry should send their own key so a retried submission is applied once.
type ReviewInput struct {
	UserID         uuid.UUID `validate:"required"`
	CardID         uuid.UUID `validate:"required"`
	Quality        int       `validate:"min=0,max=5"`
	IdempotencyKey uuid.UUID
}

// ReviewResult is the state after a review has been applied.
type ReviewResult struct {
	Review   models.Review       `json:"review"`
	Progress models.CardProgress `json:"progress"`
	Streak   models.UserStreak   `json:"streak"`
	// Replayed is set when the idempotency key was already recorded and nothing was written.
	Replayed bool `json:"replayed"`
}

// ReviewService records reviews and selects due cards
type ReviewService interface {
	SubmitReview(ctx context.Context, in ReviewInput) (*ReviewResult, error)
	DueCards(ctx context.Context, userID uuid.UUID, limit int) ([]models.CardWithProgress, error)
}

type reviewService struct {
	cards    repository.CardRepository
	progress repository.ProgressRepository
	reviews  repository.ReviewRepository
	streaks  repository.StreakRepository
	tx       repository.TxManager
	opts     Options
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	cards repository.CardRepository,
	progress repository.ProgressRepository,
	reviews repository.ReviewRepository,
	streaks repository.StreakRepository,
	tx repository.TxManager,
	opts Options,
) ReviewService {
	return &reviewService{
		cards:    cards,
		progress: progress,
		reviews:  reviews,
		streaks:  streaks,
		tx:       tx,
		opts:     opts.withDefaults(),
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, in ReviewInput) (*ReviewResult, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": in.UserID,
		"card_id": in.CardID,
	})
	log.Debug("submitting review: quality=%d", in.Quality)

	if err := validate.Struct(in); err != nil {
		return nil, errors.FromValidator(err)
	}

	card, err := s.loadCard(ctx, in.UserID, in.CardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", in.CardID)
	}

	key := in.IdempotencyKey
	if key == uuid.Nil {
		key = uuid.New()
	}
	now := s.opts.Clock.Now().UTC()
	today := s.opts.Calendar.Today(now)

	review := models.Review{
		ID:         key,
		UserID:     in.UserID,
		CardID:     in.CardID,
		Quality:    in.Quality,
		ReviewedAt: now,
	}

	var result ReviewResult
	txCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	err = s.tx.RunInTx(txCtx, func(ctx context.Context) error {
		inserted, err := s.reviews.Append(ctx, review)
		if err != nil {
			return err
		}
		if !inserted {
			return s.replay(ctx, key, in, &result)
		}

		prior, err := s.progress.Get(ctx, in.UserID, in.CardID)
		if err != nil {
			return err
		}
		priorInterval, priorEase := 0, srs.DefaultEaseFactor
		if prior != nil {
			priorInterval, priorEase = prior.IntervalDays, prior.EaseFactor
		}

		interval, ease := srs.ComputeNextSchedule(in.Quality, priorInterval, priorEase)
		progress := models.CardProgress{
			UserID:       in.UserID,
			CardID:       in.CardID,
			IntervalDays: interval,
			EaseFactor:   ease,
			DueAt:        s.opts.Calendar.DueAt(now, interval),
			LastReviewed: now,
		}
		if err := s.progress.Upsert(ctx, progress); err != nil {
			return err
		}

		existing, err := s.streaks.Get(ctx, in.UserID)
		if err != nil {
			return err
		}
		streak, changed := srs.NextStreak(existing, in.UserID, today, now)
		if changed {
			if err := s.streaks.Upsert(ctx, streak); err != nil {
				return err
			}
		}

		result = ReviewResult{Review: review, Progress: progress, Streak: streak}
		return nil
	})
	if err != nil {
		log.Error("failed to record review: %v", err)
		return nil, storeErr("submit review", err)
	}

	log.Info("review recorded: quality=%d, interval=%d, ease=%.2f, streak=%d, replayed=%t",
		in.Quality, result.Progress.IntervalDays, result.Progress.EaseFactor, result.Streak.CurrentStreak, result.Replayed)
	return &result, nil
}

// replay fills result with the state already recorded for key. A key reused for
// a different user or card is rejected.
func (s *reviewService) replay(ctx context.Context, key uuid.UUID, in ReviewInput, result *ReviewResult) error {
	logger.FromContext(ctx).Debug("review %s already recorded, returning current state", key)

	existing, err := s.reviews.Get(ctx, key)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != in.UserID || existing.CardID != in.CardID {
		return errors.NewBadRequestError("idempotency key already used for another review")
	}

	progress, err := s.progress.Get(ctx, in.UserID, in.CardID)
	if err != nil {
		return err
	}
	streak, err := s.streaks.Get(ctx, in.UserID)
	if err != nil {
		return err
	}

	*result = ReviewResult{Review: *existing, Replayed: true}
	if progress != nil {
		result.Progress = *progress
	}
	if streak != nil {
		result.Streak = *streak
	}
	return nil
}

func (s *reviewService) loadCard(ctx context.Context, userID, cardID uuid.UUID) (*models.Card, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	card, err := s.cards.Get(ctx, userID, cardID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to load card: %v", err)
		return nil, storeErr("load card", err)
	}
	return card, nil
}

func (s *reviewService) DueCards(ctx context.Context, userID uuid.UUID, limit int) ([]models.CardWithProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting due cards: user_id=%s, limit=%d", userID, limit)

	if userID == uuid.Nil {
		return nil, errors.NewInvalidInputError("user_id", "required")
	}
	if limit <= 0 {
		limit = s.opts.DueLimit
	}

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	cards, err := s.cards.ListWithProgress(storeCtx, userID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, storeErr("list due cards", err)
	}

	due := srs.SelectDue(cards, s.opts.Clock.Now())
	if len(due) > limit {
		due = due[:limit]
	}
	log.Debug("%d of %d cards due", len(due), len(cards))
	return due, nil
}
