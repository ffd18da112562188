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

// CreateNodeInput describes a new field, topic or subtopic.
type CreateNodeInput struct {
	UserID   uuid.UUID            `validate:"required"`
	Name     string               `validate:"required,max=200"`
	Type     models.HierarchyType `validate:"required,oneof=field topic subtopic"`
	ParentID *uuid.UUID
}

// HierarchyService manages the field > topic > subtopic tree cards are filed under
type HierarchyService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Hierarchy, error)
	CreateNode(ctx context.Context, in CreateNodeInput) (*models.Hierarchy, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Hierarchy, error)
	// EnsureDefault returns the user's root topic called name, creating it on first use.
	EnsureDefault(ctx context.Context, userID uuid.UUID, name string) (*models.Hierarchy, error)
}

type hierarchyService struct {
	repo repository.HierarchyRepository
	tx   repository.TxManager
	opts Options
}

// NewHierarchyService creates a new HierarchyService
func NewHierarchyService(repo repository.HierarchyRepository, tx repository.TxManager, opts Options) HierarchyService {
	return &hierarchyService{repo: repo, tx: tx, opts: opts.withDefaults()}
}

func (s *hierarchyService) List(ctx context.Context, userID uuid.UUID) ([]models.Hierarchy, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing hierarchy: user_id=%s", userID)

	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	nodes, err := s.repo.List(ctx, userID)
	if err != nil {
		log.Error("failed to list hierarchy: %v", err)
		return nil, storeErr("list hierarchy", err)
	}
	if nodes == nil {
		nodes = []models.Hierarchy{}
	}
	return nodes, nil
}

func (s *hierarchyService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Hierarchy, error) {
	ctx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	node, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get hierarchy node: %v", err)
		return nil, storeErr("get hierarchy", err)
	}
	if node == nil {
		return nil, errors.NewNotFoundError("hierarchy", id)
	}
	return node, nil
}

func (s *hierarchyService) CreateNode(ctx context.Context, in CreateNodeInput) (*models.Hierarchy, error) {
	log := logger.FromContext(ctx)
	in.Name = strings.TrimSpace(in.Name)
	log.Debug("creating hierarchy node: type=%s, name=%s", in.Type, in.Name)

	if err := validate.Struct(in); err != nil {
		return nil, errors.FromValidator(err)
	}

	switch {
	case in.Type == models.HierarchyField && in.ParentID != nil:
		return nil, errors.NewInvalidInputError("parent_id", "a field cannot have a parent")
	case in.Type == models.HierarchySubtopic && in.ParentID == nil:
		return nil, errors.NewInvalidInputError("parent_id", "a subtopic needs a topic parent")
	}

	if in.ParentID != nil {
		parent, err := s.Get(ctx, in.UserID, *in.ParentID)
		if err != nil {
			return nil, err
		}
		want := models.HierarchyField
		if in.Type == models.HierarchySubtopic {
			want = models.HierarchyTopic
		}
		if parent.Type != want {
			return nil, errors.NewInvalidInputError("parent_id", "a "+string(in.Type)+" must be under a "+string(want))
		}
	}

	node := models.Hierarchy{
		ID:        uuid.New(),
		UserID:    in.UserID,
		ParentID:  in.ParentID,
		Name:      in.Name,
		Type:      in.Type,
		CreatedAt: s.opts.Clock.Now().UTC(),
	}

	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()
	if err := s.repo.Insert(storeCtx, node); err != nil {
		log.Error("failed to insert hierarchy node: %v", err)
		return nil, storeErr("create hierarchy", err)
	}
	log.Info("hierarchy node created: id=%s", node.ID)
	return &node, nil
}

func (s *hierarchyService) EnsureDefault(ctx context.Context, userID uuid.UUID, name string) (*models.Hierarchy, error) {
	log := logger.FromContext(ctx)
	if name == "" {
		name = s.opts.DefaultHierarchy
	}

	var node *models.Hierarchy
	storeCtx, cancel := s.opts.storeContext(ctx)
	defer cancel()

	err := s.tx.RunInTx(storeCtx, func(ctx context.Context) error {
		found, err := s.repo.FindRootByName(ctx, userID, name, models.HierarchyTopic)
		if err != nil {
			return err
		}
		if found != nil {
			node = found
			return nil
		}
		created := models.Hierarchy{
			ID:        uuid.New(),
			UserID:    userID,
			Name:      name,
			Type:      models.HierarchyTopic,
			CreatedAt: s.opts.Clock.Now().UTC(),
		}
		if err := s.repo.Insert(ctx, created); err != nil {
			return err
		}
		log.Info("created default topic %q: id=%s", name, created.ID)
		node = &created
		return nil
	})
	if err != nil {
		log.Error("failed to ensure default topic: %v", err)
		return nil, storeErr("ensure default hierarchy", err)
	}
	return node, nil
}
