package api

import (
	"net/http"

	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/go-chi/chi/v5"
	"github.com/jinzhu/copier"
)

type toggleLikeRequest struct {
	TargetType string `json:"targetType" validate:"required"`
	TargetId   string `json:"targetId" validate:"required"`
}

type likeResponse struct {
	LikeId     string `json:"likeId"`
	UserId     string `json:"userId"`
	TargetType string `json:"targetType"`
	TargetId   string `json:"targetId"`
	CreatedOn  int64  `json:"createdOn"`
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	var req toggleLikeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ref := models.TargetRef{TargetType: models.TargetType(req.TargetType), TargetId: req.TargetId}
	liked, likeCount, err := s.likes.ToggleLike(r.Context(), UserId(r.Context()), ref)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"liked":     liked,
		"likeCount": likeCount,
	})
}

func (s *Server) handleGetLikes(w http.ResponseWriter, r *http.Request) {
	ref := models.TargetRef{
		TargetType: models.TargetType(chi.URLParam(r, "targetType")),
		TargetId:   chi.URLParam(r, "targetId"),
	}
	limit := getIntParam(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	likes, likeCount, err := s.likes.GetTargetLikes(r.Context(), ref, int64(limit))
	if err != nil {
		respondError(w, err)
		return
	}

	responses := []likeResponse{}
	copier.Copy(&responses, &likes)
	respondJSON(w, http.StatusOK, map[string]any{
		"likes":     responses,
		"likeCount": likeCount,
	})
}
