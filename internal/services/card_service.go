package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
)

const maxCardText = 4000

// CreateCardInput describes a new card. Without a HierarchyID the card is filed
// under the user's default topic.
type CreateCardInput struct {
	UserID      uuid.UUID `validate:"required"`
	Question    string    `validate:"required,max=4000"`
	Answer      string    `validate:"required,max=4000"`
	HierarchyID *uuid.UUID
	MediaURL    *string `validate:"omitempty,url"`
}

// UpdateCardInput holds the fields to change; nil fields are kept. An empty
// MediaURL removes the media.
type UpdateCardInput struct {
	Question    *string
	Answer      *string
	MediaURL    *string
	HierarchyID *uuid.UUID
}

// CardService handles card-related business logic
type CardService interface {
	CreateCard(ctx context.Context, in CreateCardInput) (*models.Card, error)
	CreateFromDraft(ctx context.Context, userID uuid.UUID, draft models.CardDraft) (*models.Card, error)
	GetCard(ctx context.Context, userID, cardID uuid.UUID) (*models.Card, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	UpdateCard(ctx context.Context, userID, cardID uuid.UUID, in UpdateCardInput) (*models.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type cardService struct {
	cards     repository.CardRepository
	hierarchy HierarchyService
	opts      Options
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository, hierarchy HierarchyService, opts Options) CardService {
	return &cardService{cards: cards, hierarchy: hierarchy, opts: opts.withDefaults()}
}

func (s *cardService) CreateCard(ctx context.Context, in CreateCardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if in.MediaURL != nil && strings.TrimSpace(*in.MediaURL) == "" {
		in.MediaURL = nil
	}
	log.Debug("creating card: user_id=%s", in.UserID)

	if err := validate.Struct(in); err != nil {
		return nil, errors.FromValidator(err)
	}

	var node *models.Hierarchy
	var err error
	if in.HierarchyID != nil {
		node, err = s.hierarchy.Get(ctx, in.UserID, *in.HierarchyID)
	} else {
		node, err = s.hierarchy.EnsureDefault(ctx, in.UserID, s.opts.DefaultHierarchy)
	}
	if err != nil {
		return nil, err
	}

	now := s.opts.Clock.Now().UTC()
	card := models.Card{
		ID:          uuid.New(),
		UserID:      in.UserID,
		HierarchyID: node.ID,
		Question:    in.Question,
		Answer:      in.Answer,
		Kind:        models.CardKindFlashcard,
		MediaURL:    in.MediaURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if card.MediaURL != nil {
		card.Kind = models.CardKindVideo
	}

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()
	if err := s.cards.Insert(storeCtx, card); err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, storeErr("create card", err)
	}
	log.Info("card created: id=%s, kind=%s, hierarchy=%s", card.ID, card.Kind, node.Name)
	return &card, nil
}

func (s *cardService) CreateFromDraft(ctx context.Context, userID uuid.UUID, draft models.CardDraft) (*models.Card, error) {
	return s.CreateCard(ctx, CreateCardInput{
		UserID:      userID,
		Question:    draft.Question,
		Answer:      draft.Answer,
		HierarchyID: draft.HierarchyID,
		MediaURL:    draft.MediaURL,
	})
}

func (s *cardService) GetCard(ctx context.Context, userID, cardID uuid.UUID) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting card: id=%s", cardID)

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	card, err := s.cards.Get(storeCtx, userID, cardID)
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, storeErr("get card", err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: user_id=%s, limit=%d, offset=%d", filter.UserID, filter.Limit, filter.Offset)

	if filter.Kind != "" && filter.Kind != models.CardKindFlashcard && filter.Kind != models.CardKindVideo {
		return nil, errors.NewInvalidInputError("kind", "must be flashcard or video")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewInvalidInputError("limit", "must not be negative")
	}

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	cards, err := s.cards.List(storeCtx, filter)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, storeErr("list cards", err)
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return cards, nil
}

func (s *cardService) UpdateCard(ctx context.Context, userID, cardID uuid.UUID, in UpdateCardInput) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%s", cardID)

	update := models.CardUpdate{HierarchyID: in.HierarchyID}
	for _, f := range []struct {
		name string
		in   *string
		out  **string
	}{
		{"question", in.Question, &update.Question},
		{"answer", in.Answer, &update.Answer},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return nil, errors.NewInvalidInputError(f.name, "must not be empty")
		}
		if len(v) > maxCardText {
			return nil, errors.NewInvalidInputError(f.name, "too long")
		}
		*f.out = &v
	}
	if in.MediaURL != nil {
		v := strings.TrimSpace(*in.MediaURL)
		if v != "" {
			if err := validate.Var(v, "url"); err != nil {
				return nil, errors.NewInvalidInputError("media_url", "must be a URL")
			}
		}
		update.MediaURL = &v
	}
	if in.HierarchyID != nil {
		if _, err := s.hierarchy.Get(ctx, userID, *in.HierarchyID); err != nil {
			return nil, err
		}
	}

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	card, err := s.cards.Update(storeCtx, userID, cardID, update, s.opts.Clock.Now().UTC())
	if err != nil {
		log.Error("failed to update card: %v", err)
		return nil, storeErr("update card", err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%s", cardID)

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	deleted, err := s.cards.Delete(storeCtx, userID, cardID)
	if err != nil {
		log.Error("failed to delete card: %v", err)
		return storeErr("delete card", err)
	}
	if !deleted {
		return errors.NewNotFoundError("card", cardID)
	}
	log.Info("card deleted: id=%s", cardID)
	return nil
}
