package worker

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"golang.org/x/sync/errgroup"
)

// ImportCardsJob stores a batch of captured cards. A draft that fails is logged
// and skipped; the job fails only when no card could be stored.
type ImportCardsJob struct {
	Creator       CardCreator
	UserID        uuid.UUID
	Drafts        []models.CardDraft
	MaxConcurrent int
}

func (j *ImportCardsJob) Name() string { return "import_cards" }

func (j *ImportCardsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id": j.UserID,
		"cards":   len(j.Drafts),
	})
	log.Info("starting card import")

	maxConc := j.MaxConcurrent
	if maxConc <= 0 {
		maxConc = 4
	}

	var created, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConc)

	for i, draft := range j.Drafts {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if _, err := j.Creator.CreateFromDraft(gctx, j.UserID, draft); err != nil {
				log.Warn("skipping card %d: %v", i, err)
				failed.Add(1)
				return nil
			}
			created.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("import cancelled: %v", err)
		return err
	}

	log.Info("imported %d cards, %d skipped", created.Load(), failed.Load())
	if created.Load() == 0 && failed.Load() > 0 {
		return fmt.Errorf("import_cards: all %d cards failed", failed.Load())
	}
	return nil
}
