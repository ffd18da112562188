package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is an append-only log entry for one rating action.
type Review struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CardID     uuid.UUID `json:"card_id"`
	Quality    int       `json:"quality"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// UserStreak tracks consecutive study days. LastStudyDate is a calendar date,
// held as midnight UTC.
type UserStreak struct {
	UserID        uuid.UUID `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	LastStudyDate time.Time `json:"last_study_date"`
	UpdatedAt     time.Time `json:"updated_at"`
}
