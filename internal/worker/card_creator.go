package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/models"
)

// CardCreator stores one captured card.
// Declared here so this package does not import services.
type CardCreator interface {
	CreateFromDraft(ctx context.Context, userID uuid.UUID, draft models.CardDraft) (*models.Card, error)
}
