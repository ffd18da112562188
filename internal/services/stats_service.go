package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
	"github.com/vytor/flashreel/internal/srs"
	"golang.org/x/sync/errgroup"
)

const maxHeatmapDays = 3660

// StatsService handles statistics-related business logic
type StatsService interface {
	Streak(ctx context.Context, userID uuid.UUID) (*models.StreakView, error)
	Heatmap(ctx context.Context, userID uuid.UUID, days int) ([]models.DailyReviewCount, error)
	Summary(ctx context.Context, userID uuid.UUID) (*models.StudySummary, error)
}

type statsService struct {
	cards    repository.CardRepository
	progress repository.ProgressRepository
	reviews  repository.ReviewRepository
	streaks  repository.StreakRepository
	opts     Options
}

// NewStatsService creates a new StatsService
func NewStatsService(
	cards repository.CardRepository,
	progress repository.ProgressRepository,
	reviews repository.ReviewRepository,
	streaks repository.StreakRepository,
	opts Options,
) StatsService {
	return &statsService{cards: cards, progress: progress, reviews: reviews, streaks: streaks, opts: opts.withDefaults()}
}

// HeatLevel maps a day's review count to a 0-4 intensity.
func HeatLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 5:
		return 1
	case count <= 10:
		return 2
	case count <= 20:
		return 3
	default:
		return 4
	}
}

func (s *statsService) Streak(ctx context.Context, userID uuid.UUID) (*models.StreakView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting streak: user_id=%s", userID)

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	streak, err := s.streaks.Get(storeCtx, userID)
	if err != nil {
		log.Error("failed to get streak: %v", err)
		return nil, storeErr("get streak", err)
	}

	today := s.opts.Calendar.Today(s.opts.Clock.Now())
	view := &models.StreakView{CurrentStreak: srs.ActiveStreak(streak, today)}
	if streak != nil {
		last := streak.LastStudyDate
		view.LastStudyDate = &last
		view.StudiedToday = clock.DaysBetween(last, today) == 0
	}
	return view, nil
}

func (s *statsService) Heatmap(ctx context.Context, userID uuid.UUID, days int) ([]models.DailyReviewCount, error) {
	log := logger.FromContext(ctx)
	if days <= 0 {
		days = s.opts.HeatmapDays
	}
	if days > maxHeatmapDays {
		return nil, errors.NewInvalidInputError("days", "too large")
	}
	log.Debug("building heatmap: user_id=%s, days=%d", userID, days)

	today := s.opts.Calendar.Today(s.opts.Clock.Now())
	first := clock.AddDays(today, -(days - 1))

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	reviews, err := s.reviews.ListSince(storeCtx, userID, s.opts.Calendar.StartOfDay(first))
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, storeErr("heatmap", err)
	}

	counts := make(map[string]int, days)
	for _, r := range reviews {
		counts[clock.FormatDate(s.opts.Calendar.Today(r.ReviewedAt))]++
	}

	out := make([]models.DailyReviewCount, 0, days)
	for d := first; !d.After(today); d = clock.AddDays(d, 1) {
		key := clock.FormatDate(d)
		out = append(out, models.DailyReviewCount{Date: key, Count: counts[key], Level: HeatLevel(counts[key])})
	}
	return out, nil
}

func (s *statsService) Summary(ctx context.Context, userID uuid.UUID) (*models.StudySummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("building study summary: user_id=%s", userID)

	now := s.opts.Clock.Now()
	today := s.opts.Calendar.Today(now)

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	var summary models.StudySummary
	g, gctx := errgroup.WithContext(storeCtx)

	g.Go(func() error {
		n, err := s.cards.Count(gctx, userID)
		summary.TotalCards = n
		return err
	})
	g.Go(func() error {
		cards, err := s.cards.ListWithProgress(gctx, userID)
		summary.DueNow = len(srs.SelectDue(cards, now))
		return err
	})
	g.Go(func() error {
		n, err := s.reviews.CountSince(gctx, userID, s.opts.Calendar.StartOfDay(today))
		summary.ReviewedToday = n
		return err
	})
	g.Go(func() error {
		avg, err := s.progress.AverageEase(gctx, userID)
		summary.AvgEaseFactor = avg
		return err
	})
	g.Go(func() error {
		streak, err := s.streaks.Get(gctx, userID)
		summary.CurrentStreak = srs.ActiveStreak(streak, today)
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("failed to build summary: %v", err)
		return nil, storeErr("summary", err)
	}
	return &summary, nil
}
