package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/logger"
	"github.com/vytor/flashreel/internal/models"
	"github.com/vytor/flashreel/internal/services"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type createCardRequest struct {
	Question    string     `json:"question"`
	Answer      string     `json:"answer"`
	HierarchyID *uuid.UUID `json:"hierarchy_id"`
	MediaURL    *string    `json:"media_url"`
}

type updateCardRequest struct {
	Question    *string    `json:"question"`
	Answer      *string    `json:"answer"`
	HierarchyID *uuid.UUID `json:"hierarchy_id"`
	MediaURL    *string    `json:"media_url"`
}

type importCardsRequest struct {
	Cards []models.CardDraft `json:"cards"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	filter := models.CardFilter{
		UserID: userFromContext(r.Context()),
		Kind:   models.CardKind(r.URL.Query().Get("kind")),
	}
	if raw := r.URL.Query().Get("hierarchy_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handleError(w, r, errors.NewInvalidInputError("hierarchy_id", "must be a UUID"))
			return
		}
		filter.HierarchyID = &id
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit", defaultPageSize); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = defaultPageSize
	}
	if filter.Offset, err = queryInt(r, "offset", 0); err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.Cards.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.CreateCard(r.Context(), services.CreateCardInput{
		UserID:      userFromContext(r.Context()),
		Question:    req.Question,
		Answer:      req.Answer,
		HierarchyID: req.HierarchyID,
		MediaURL:    req.MediaURL,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleImportCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req importCardsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	queued, err := s.Imports.ImportCards(r.Context(), userFromContext(r.Context()), req.Cards)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("queued %d cards for import", queued)
	writeJSON(w, r, http.StatusAccepted, map[string]int{"queued": queued})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.GetCard(r.Context(), userFromContext(r.Context()), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req updateCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Cards.UpdateCard(r.Context(), userFromContext(r.Context()), id, services.UpdateCardInput{
		Question:    req.Question,
		Answer:      req.Answer,
		MediaURL:    req.MediaURL,
		HierarchyID: req.HierarchyID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Cards.DeleteCard(r.Context(), userFromContext(r.Context()), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
