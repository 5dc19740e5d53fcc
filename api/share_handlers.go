package api

import (
	"net/http"

	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/ReadCircle/bookgraphGo/service"
	"github.com/go-chi/chi/v5"
)

type createShareRequest struct {
	TargetType      string   `json:"targetType" validate:"required"`
	TargetId        string   `json:"targetId" validate:"required"`
	ShareType       string   `json:"shareType" validate:"required"`
	Platform        string   `json:"platform"`
	Message         string   `json:"message" validate:"max=500"`
	SharedWithUsers []string `json:"sharedWithUsers"`
}

func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	var req createShareRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := s.shares.CreateShare(r.Context(), UserId(r.Context()), service.CreateShareRequest{
		TargetRef: models.TargetRef{
			TargetType: models.TargetType(req.TargetType),
			TargetId:   req.TargetId,
		},
		ShareType:       models.ShareType(req.ShareType),
		Platform:        models.SharePlatform(req.Platform),
		Message:         req.Message,
		SharedWithUsers: req.SharedWithUsers,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (s *Server) handleTrackClick(w http.ResponseWriter, r *http.Request) {
	shareId := chi.URLParam(r, "shareId")
	clickCount, err := s.shares.TrackClick(r.Context(), shareId)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"clickCount": clickCount})
}

func (s *Server) handleGetShares(w http.ResponseWriter, r *http.Request) {
	ref := models.TargetRef{
		TargetType: models.TargetType(chi.URLParam(r, "targetType")),
		TargetId:   chi.URLParam(r, "targetId"),
	}
	page, limit := getPageParams(r, 20)

	shares, pagination, err := s.shares.GetTargetShares(r.Context(), ref, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"shares":     shares,
		"pagination": pagination,
	})
}

func (s *Server) handleReceivedShares(w http.ResponseWriter, r *http.Request) {
	page, limit := getPageParams(r, 20)

	shares, pagination, err := s.shares.GetReceivedShares(r.Context(), UserId(r.Context()), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"shares":     shares,
		"pagination": pagination,
	})
}

func (s *Server) handleTrendingShares(w http.ResponseWriter, r *http.Request) {
	timeframeDays := getIntParam(r, "timeframe", service.DefaultTrendingDays)
	limit := getIntParam(r, "limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}
	targetType := models.TargetType(r.URL.Query().Get("targetType"))

	trending, err := s.shares.GetTrendingShares(r.Context(), timeframeDays, limit, targetType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"trending": trending})
}
