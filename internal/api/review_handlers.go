package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vytor/flashreel/internal/errors"
	"github.com/vytor/flashreel/internal/services"
)

type reviewRequest struct {
	Quality        *int       `json:"quality"`
	IdempotencyKey *uuid.UUID `json:"idempotency_key"`
}

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cards, err := s.Reviews.DueCards(r.Context(), userFromContext(r.Context()), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"cards": cards})
}

func (s *Server) handleReviewCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Quality == nil {
		handleError(w, r, errors.NewInvalidInputError("quality", "required"))
		return
	}

	in := services.ReviewInput{
		UserID:  userFromContext(r.Context()),
		CardID:  cardID,
		Quality: *req.Quality,
	}
	if req.IdempotencyKey != nil {
		in.IdempotencyKey = *req.IdempotencyKey
	} else if raw := r.Header.Get("Idempotency-Key"); raw != "" {
		key, err := uuid.Parse(raw)
		if err != nil {
			handleError(w, r, errors.NewInvalidInputError("idempotency_key", "must be a UUID"))
			return
		}
		in.IdempotencyKey = key
	}

	res, err := s.Reviews.SubmitReview(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
