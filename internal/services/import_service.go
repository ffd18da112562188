package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/jobs"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/worker"
)

// MaxImportBatch caps the number of cards accepted by one import call.
const MaxImportBatch = 500

// ImportService queues captured cards for background creation
type ImportService interface {
	// ImportCards checks the batch and queues it; it returns the number of cards queued.
	ImportCards(ctx context.Context, userID uuid.UUID, drafts []models.CardDraft) (int, error)
}

type importService struct {
	queue jobs.JobQueue
}

// NewImportService creates a new ImportService
func NewImportService(queue jobs.JobQueue) ImportService {
	return &importService{queue: queue}
}

func (s *importService) ImportCards(ctx context.Context, userID uuid.UUID, drafts []models.CardDraft) (int, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": userID,
		"cards":   len(drafts),
	})

	if userID == uuid.Nil {
		return 0, errors.NewInvalidInputError("user_id", "required")
	}
	if len(drafts) == 0 {
		return 0, errors.NewInvalidInputError("cards", "at least one card is required")
	}
	if len(drafts) > MaxImportBatch {
		return 0, errors.NewInvalidInputError("cards", fmt.Sprintf("at most %d cards per import", MaxImportBatch))
	}
	for i, d := range drafts {
		if strings.TrimSpace(d.Question) == "" || strings.TrimSpace(d.Answer) == "" {
			return 0, errors.NewInvalidInputError(fmt.Sprintf("cards[%d]", i), "question and answer are required")
		}
	}

	log.Info("queueing card import job")
	if err := s.queue.EnqueueImport(userID, drafts); err != nil {
		log.Error("failed to queue import: %v", err)
		if stderrors.Is(err, worker.ErrQueueFull) {
			return 0, errors.NewRateLimitedError()
		}
		return 0, errors.NewInternalError(err)
	}
	return len(drafts), nil
}
