package jobs

import (
	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/models"
)

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueImport(userID uuid.UUID, drafts []models.CardDraft) error
}
