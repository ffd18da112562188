package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/services"
)

type createNodeRequest struct {
	Name     string               `json:"name"`
	Type     models.HierarchyType `json:"type"`
	ParentID *uuid.UUID           `json:"parent_id"`
}

func (s *Server) handleListHierarchy(w http.ResponseWriter, r *http.Request) {
	nodes, err := s.Hierarchy.List(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"nodes": nodes})
}

func (s *Server) handleCreateHierarchy(w http.ResponseWriter, r *http.Request) {
	var req createNodeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	node, err := s.Hierarchy.CreateNode(r.Context(), services.CreateNodeInput{
		UserID:   userFromContext(r.Context()),
		Name:     req.Name,
		Type:     req.Type,
		ParentID: req.ParentID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, node)
}
