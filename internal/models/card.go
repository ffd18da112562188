package models

import (
	"time"

	"github.com/google/uuid"
)

// CardKind distinguishes plain question/answer cards from video cards.
type CardKind string

const (
	CardKindFlashcard CardKind = "flashcard"
	CardKindVideo     CardKind = "video"
)

type Card struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	HierarchyID uuid.UUID `json:"hierarchy_id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Kind        CardKind  `json:"kind"`
	MediaURL    *string   `json:"media_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CardProgress is the per-(user, card) scheduling state.
type CardProgress struct {
	UserID       uuid.UUID `json:"user_id"`
	CardID       uuid.UUID `json:"card_id"`
	IntervalDays int       `json:"interval_days"`
	EaseFactor   float64   `json:"ease_factor"`
	DueAt        time.Time `json:"due_at"`
	LastReviewed time.Time `json:"last_reviewed"`
}

// CardWithProgress pairs a card with its progress row; Progress is nil for a card
// that has never been reviewed.
type CardWithProgress struct {
	Card
	Progress *CardProgress `json:"progress"`
}

type CardFilter struct {
	UserID      uuid.UUID
	HierarchyID *uuid.UUID
	Kind        CardKind
	Limit       int
	Offset      int
}

// CardUpdate holds the editable fields of a card. Nil fields are left unchanged.
type CardUpdate struct {
	Question    *string
	Answer      *string
	MediaURL    *string
	HierarchyID *uuid.UUID
}

// CardDraft is a card as captured by a client before it is stored.
type CardDraft struct {
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	HierarchyID *uuid.UUID `json:"hierarchy_id,omitempty"`
	MediaURL    *string    `json:"media_url,omitempty"`
}
