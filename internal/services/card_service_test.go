package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashreel/internal/clock"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/testutil/mocks"
)

func newCardFixture() (*mocks.MockCardRepository, *mocks.MockHierarchyRepository, CardService) {
	cards := new(mocks.MockCardRepository)
	nodes := new(mocks.MockHierarchyRepository)
	opts := Options{Clock: clock.NewFixed(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}
	svc := NewCardService(cards, NewHierarchyService(nodes, mocks.PassthroughTx{}, opts), opts)
	return cards, nodes, svc
}

func TestCreateCard_VideoUnderGivenTopic(t *testing.T) {
	cards, nodes, svc := newCardFixture()
	userID := uuid.New()
	topic := &models.Hierarchy{ID: uuid.New(), UserID: userID, Name: "Go", Type: models.HierarchyTopic}
	url := "https://example.com/talk.mp4"

	nodes.On("Get", mock.Anything, userID, topic.ID).Return(topic, nil)
	cards.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Card) bool {
		return c.Kind == models.CardKindVideo && c.HierarchyID == topic.ID && c.Question == "What is a channel?"
	})).Return(nil)

	card, err := svc.CreateCard(context.Background(), CreateCardInput{
		UserID: userID, Question: "  What is a channel?  ", Answer: "a pipe", HierarchyID: &topic.ID, MediaURL: &url,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CardKindVideo, card.Kind)
	cards.AssertExpectations(t)
}

func TestCreateCard_CreatesDefaultTopic(t *testing.T) {
	cards, nodes, svc := newCardFixture()
	userID := uuid.New()

	nodes.On("FindRootByName", mock.Anything, userID, "General", models.HierarchyTopic).Return(nil, nil)
	nodes.On("Insert", mock.Anything, mock.MatchedBy(func(h models.Hierarchy) bool {
		return h.Name == "General" && h.ParentID == nil
	})).Return(nil)
	cards.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Card) bool {
		return c.Kind == models.CardKindFlashcard
	})).Return(nil)

	_, err := svc.CreateCard(context.Background(), CreateCardInput{UserID: userID, Question: "q", Answer: "a"})
	require.NoError(t, err)
	nodes.AssertExpectations(t)
	cards.AssertExpectations(t)
}

func TestCreateCard_Validation(t *testing.T) {
	_, _, svc := newCardFixture()
	bad := "not a url"
	for name, in := range map[string]CreateCardInput{
		"missing question": {UserID: uuid.New(), Answer: "a"},
		"missing answer":   {UserID: uuid.New(), Question: "q"},
		"missing user":     {Question: "q", Answer: "a"},
		"bad media url":    {UserID: uuid.New(), Question: "q", Answer: "a", MediaURL: &bad},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateCard(context.Background(), in)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}

func TestUpdateCard(t *testing.T) {
	cards, _, svc := newCardFixture()
	userID, cardID := uuid.New(), uuid.New()

	blank := "  "
	_, err := svc.UpdateCard(context.Background(), userID, cardID, UpdateCardInput{Question: &blank})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))

	answer := "new answer"
	cards.On("Update", mock.Anything, userID, cardID, mock.MatchedBy(func(u models.CardUpdate) bool {
		return u.Answer != nil && *u.Answer == answer && u.Question == nil
	}), mock.Anything).Return(nil, nil).Once()
	_, err = svc.UpdateCard(context.Background(), userID, cardID, UpdateCardInput{Answer: &answer})
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	cards.AssertExpectations(t)
}

func TestListCards_RejectsUnknownKind(t *testing.T) {
	_, _, svc := newCardFixture()
	_, err := svc.ListCards(context.Background(), models.CardFilter{UserID: uuid.New(), Kind: "audio"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInput))
}
