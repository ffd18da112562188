package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/worker"
)

type recordingCreator struct {
	mu   sync.Mutex
	seen []models.CardDraft
	done chan struct{}
}

func (r *recordingCreator) CreateFromDraft(_ context.Context, _ uuid.UUID, d models.CardDraft) (*models.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, d)
	if len(r.seen) == 2 {
		close(r.done)
	}
	return &models.Card{}, nil
}

func TestWorkerQueueRunsImport(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	creator := &recordingCreator{done: make(chan struct{})}
	q := NewWorkerQueue(pool, creator, 1)

	drafts := []models.CardDraft{{Question: "a", Answer: "1"}, {Question: "b", Answer: "2"}}
	require.NoError(t, q.EnqueueImport(uuid.New(), drafts))
	drafts[0].Question = "mutated"

	select {
	case <-creator.done:
	case <-time.After(5 * time.Second):
		t.Fatal("import job did not run")
	}
	creator.mu.Lock()
	defer creator.mu.Unlock()
	assert.Len(t, creator.seen, 2)
	assert.Equal(t, "a", creator.seen[0].Question)
}

func TestWorkerQueueReportsStoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Stop()
	q := NewWorkerQueue(pool, &recordingCreator{done: make(chan struct{})}, 1)
	assert.ErrorIs(t, q.EnqueueImport(uuid.New(), nil), worker.ErrPoolStopped)
}
