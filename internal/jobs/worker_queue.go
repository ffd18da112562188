package jobs

import (
	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool    *worker.Pool
	creator       worker.CardCreator
	maxConcurrent int
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(importPool *worker.Pool, creator worker.CardCreator, maxConcurrent int) JobQueue {
	return &WorkerQueue{
		importPool:    importPool,
		creator:       creator,
		maxConcurrent: maxConcurrent,
	}
}

func (q *WorkerQueue) EnqueueImport(userID uuid.UUID, drafts []models.CardDraft) error {
	batch := make([]models.CardDraft, len(drafts))
	copy(batch, drafts)

	return q.importPool.Submit(&worker.ImportCardsJob{
		Creator:       q.creator,
		UserID:        userID,
		Drafts:        batch,
		MaxConcurrent: q.maxConcurrent,
	})
}
