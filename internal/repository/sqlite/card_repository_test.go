package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
	"github.com/vytor/flashreel/internal/repository/sqlite"
	"github.com/vytor/flashreel/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite
	db      *sql.DB
	repo    repository.CardRepository
	userID  uuid.UUID
	topicID uuid.UUID
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCardRepository(s.db)
	s.userID = uuid.New()
	s.topicID = testutil.SeedTopic(s.T(), s.db, s.userID, "General")
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) newCard(question string, createdAt time.Time) models.Card {
	return models.Card{
		ID:          uuid.New(),
		UserID:      s.userID,
		HierarchyID: s.topicID,
		Question:    question,
		Answer:      "a",
		Kind:        models.CardKindFlashcard,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	url := "https://example.com/clip.mp4"
	card := s.newCard("What is a goroutine?", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	card.Kind = models.CardKindVideo
	card.MediaURL = &url

	s.Require().NoError(s.repo.Insert(ctx, card))

	got, err := s.repo.Get(ctx, s.userID, card.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(card.Question, got.Question)
	s.Equal(models.CardKindVideo, got.Kind)
	s.Require().NotNil(got.MediaURL)
	s.Equal(url, *got.MediaURL)
	s.True(card.CreatedAt.Equal(got.CreatedAt))
}

func (s *CardRepositorySuite) TestGetOtherUserReturnsNil() {
	ctx := context.Background()
	card := s.newCard("q", time.Now().UTC())
	s.Require().NoError(s.repo.Insert(ctx, card))

	got, err := s.repo.Get(ctx, uuid.New(), card.ID)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *CardRepositorySuite) TestListFiltersAndPaging() {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.Require().NoError(s.repo.Insert(ctx, s.newCard("q", base.Add(time.Duration(i)*time.Hour))))
	}
	other := testutil.SeedTopic(s.T(), s.db, s.userID, "Other")
	c := s.newCard("elsewhere", base)
	c.HierarchyID = other
	s.Require().NoError(s.repo.Insert(ctx, c))

	all, err := s.repo.List(ctx, models.CardFilter{UserID: s.userID})
	s.Require().NoError(err)
	s.Len(all, 6)

	page, err := s.repo.List(ctx, models.CardFilter{UserID: s.userID, HierarchyID: &s.topicID, Limit: 2, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.True(page[0].CreatedAt.After(page[1].CreatedAt))

	videos, err := s.repo.List(ctx, models.CardFilter{UserID: s.userID, Kind: models.CardKindVideo})
	s.Require().NoError(err)
	s.Empty(videos)

	n, err := s.repo.Count(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(6, n)
}

func (s *CardRepositorySuite) TestUpdate() {
	ctx := context.Background()
	card := s.newCard("old", time.Now().UTC())
	s.Require().NoError(s.repo.Insert(ctx, card))

	question := "new"
	url := "https://example.com/v"
	updated, err := s.repo.Update(ctx, s.userID, card.ID, models.CardUpdate{Question: &question, MediaURL: &url}, time.Now().UTC())
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	s.Equal("new", updated.Question)
	s.Equal(models.CardKindVideo, updated.Kind)

	empty := ""
	updated, err = s.repo.Update(ctx, s.userID, card.ID, models.CardUpdate{MediaURL: &empty}, time.Now().UTC())
	s.Require().NoError(err)
	s.Nil(updated.MediaURL)
	s.Equal(models.CardKindFlashcard, updated.Kind)

	missing, err := s.repo.Update(ctx, s.userID, uuid.New(), models.CardUpdate{Question: &question}, time.Now().UTC())
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *CardRepositorySuite) TestDeleteCascadesToReviewState() {
	ctx := context.Background()
	card := s.newCard("q", time.Now().UTC())
	s.Require().NoError(s.repo.Insert(ctx, card))

	now := time.Now().UTC()
	s.Require().NoError(sqlite.NewProgressRepository(s.db).Upsert(ctx, models.CardProgress{
		UserID: s.userID, CardID: card.ID, IntervalDays: 1, EaseFactor: 2.5, DueAt: now, LastReviewed: now,
	}))
	_, err := sqlite.NewReviewRepository(s.db).Append(ctx, models.Review{
		ID: uuid.New(), UserID: s.userID, CardID: card.ID, Quality: 4, ReviewedAt: now,
	})
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(ctx, s.userID, card.ID)
	s.Require().NoError(err)
	s.True(deleted)

	var n int
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM card_progress`).Scan(&n))
	s.Zero(n)
	s.Require().NoError(s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews`).Scan(&n))
	s.Zero(n)

	deleted, err = s.repo.Delete(ctx, s.userID, card.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *CardRepositorySuite) TestListWithProgress() {
	ctx := context.Background()
	fresh := s.newCard("fresh", time.Now().UTC())
	seen := s.newCard("seen", time.Now().UTC())
	s.Require().NoError(s.repo.Insert(ctx, fresh))
	s.Require().NoError(s.repo.Insert(ctx, seen))

	due := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(sqlite.NewProgressRepository(s.db).Upsert(ctx, models.CardProgress{
		UserID: s.userID, CardID: seen.ID, IntervalDays: 6, EaseFactor: 2.6, DueAt: due, LastReviewed: due.AddDate(0, 0, -6),
	}))

	cards, err := s.repo.ListWithProgress(ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(cards, 2)

	byID := map[uuid.UUID]models.CardWithProgress{}
	for _, c := range cards {
		byID[c.ID] = c
	}
	s.Nil(byID[fresh.ID].Progress)
	s.Require().NotNil(byID[seen.ID].Progress)
	s.Equal(6, byID[seen.ID].Progress.IntervalDays)
	s.InDelta(2.6, byID[seen.ID].Progress.EaseFactor, 1e-9)
	s.True(due.Equal(byID[seen.ID].Progress.DueAt))
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}
