package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/repository"
)

type hierarchyRepository struct {
	db *sql.DB
}

// NewHierarchyRepository creates a new HierarchyRepository implementation
func NewHierarchyRepository(db *sql.DB) repository.HierarchyRepository {
	return &hierarchyRepository{db: db}
}

func scanHierarchy(row rowScanner, h *models.Hierarchy) error {
	var parent uuid.NullUUID
	if err := row.Scan(&h.ID, &h.UserID, &parent, &h.Name, &h.Type, &h.CreatedAt); err != nil {
		return err
	}
	if parent.Valid {
		h.ParentID = &parent.UUID
	}
	return nil
}

func (r *hierarchyRepository) Insert(ctx context.Context, h models.Hierarchy) error {
	log := logger.FromContext(ctx).WithPrefix("hierarchy_repo")
	log.Debug("inserting hierarchy node: id=%s, type=%s, name=%s", h.ID, h.Type, h.Name)

	_, err := conn(ctx, r.db).ExecContext(ctx, `
INSERT INTO hierarchy (id, user_id, parent_id, name, type, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, h.ID, h.UserID, h.ParentID, h.Name, h.Type, h.CreatedAt.UTC())
	if err != nil {
		log.Error("failed to insert hierarchy node: %v", err)
	}
	return err
}

func (r *hierarchyRepository) Get(ctx context.Context, userID, id uuid.UUID) (*models.Hierarchy, error) {
	log := logger.FromContext(ctx).WithPrefix("hierarchy_repo")
	log.Debug("getting hierarchy node: id=%s", id)

	var h models.Hierarchy
	row := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT id, user_id, parent_id, name, type, created_at
FROM hierarchy
WHERE id = ? AND user_id = ?
`, id, userID)
	err := scanHierarchy(row, &h)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get hierarchy node: %v", err)
		return nil, err
	}
	return &h, nil
}

func (r *hierarchyRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Hierarchy, error) {
	log := logger.FromContext(ctx).WithPrefix("hierarchy_repo")
	log.Debug("listing hierarchy: user_id=%s", userID)

	sqlStr, args, err := sqlBuilder.
		Select("id", "user_id", "parent_id", "name", "type", "created_at").
		From("hierarchy").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query hierarchy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var nodes []models.Hierarchy
	for rows.Next() {
		var h models.Hierarchy
		if err := scanHierarchy(rows, &h); err != nil {
			log.Error("failed to scan hierarchy row: %v", err)
			return nil, err
		}
		nodes = append(nodes, h)
	}
	return nodes, rows.Err()
}

func (r *hierarchyRepository) FindRootByName(ctx context.Context, userID uuid.UUID, name string, nodeType models.HierarchyType) (*models.Hierarchy, error) {
	log := logger.FromContext(ctx).WithPrefix("hierarchy_repo")
	log.Debug("finding root node: name=%s, type=%s", name, nodeType)

	var h models.Hierarchy
	row := conn(ctx, r.db).QueryRowContext(ctx, `
SELECT id, user_id, parent_id, name, type, created_at
FROM hierarchy
WHERE user_id = ? AND name = ? AND type = ? AND parent_id IS NULL
ORDER BY created_at, id
LIMIT 1
`, userID, name, nodeType)
	err := scanHierarchy(row, &h)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to find root node: %v", err)
		return nil, err
	}
	return &h, nil
}
