package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jinzhu/copier"
)

type toggleFollowRequest struct {
	FollowingId string `json:"followingId" validate:"required"`
}

// userSummary is the public shape of a user in follow listings; email stays
// private.
type userSummary struct {
	UserId             string `json:"userId"`
	Name               string `json:"name"`
	Bio                string `json:"bio"`
	PhotoUrl           string `json:"photoUrl"`
	FollowersCount     int64  `json:"followersCount"`
	FollowingCount     int64  `json:"followingCount"`
	LikesReceivedCount int64  `json:"likesReceivedCount"`
}

func (s *Server) handleToggleFollow(w http.ResponseWriter, r *http.Request) {
	var req toggleFollowRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	following, followersCount, err := s.follows.ToggleFollow(r.Context(), UserId(r.Context()), req.FollowingId)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"following":      following,
		"followersCount": followersCount,
	})
}

func (s *Server) handleGetFollowers(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")
	page, limit := getPageParams(r, 20)

	users, pagination, err := s.follows.GetFollowers(r.Context(), userId, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	summaries := []userSummary{}
	copier.Copy(&summaries, &users)
	respondJSON(w, http.StatusOK, map[string]any{
		"followers":  summaries,
		"pagination": pagination,
	})
}

func (s *Server) handleGetFollowing(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")
	page, limit := getPageParams(r, 20)

	users, pagination, err := s.follows.GetFollowing(r.Context(), userId, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	summaries := []userSummary{}
	copier.Copy(&summaries, &users)
	respondJSON(w, http.StatusOK, map[string]any{
		"following":  summaries,
		"pagination": pagination,
	})
}

func (s *Server) handleSuggestedFollows(w http.ResponseWriter, r *http.Request) {
	limit := getIntParam(r, "limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}

	suggestions, err := s.follows.GetSuggestedFollows(r.Context(), UserId(r.Context()), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	type suggestionResponse struct {
		User              userSummary `json:"user"`
		MutualConnections int64       `json:"mutualConnections"`
	}
	responses := make([]suggestionResponse, 0, len(suggestions))
	for _, suggestion := range suggestions {
		summary := userSummary{}
		copier.Copy(&summary, &suggestion.User)
		responses = append(responses, suggestionResponse{
			User:              summary,
			MutualConnections: suggestion.MutualConnections,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"suggestions": responses})
}

func (s *Server) handleMutualFollowers(w http.ResponseWriter, r *http.Request) {
	otherUserId := chi.URLParam(r, "userId")

	users, err := s.follows.GetMutualFollowers(r.Context(), UserId(r.Context()), otherUserId)
	if err != nil {
		respondError(w, err)
		return
	}

	summaries := []userSummary{}
	copier.Copy(&summaries, &users)
	respondJSON(w, http.StatusOK, map[string]any{"mutualFollowers": summaries})
}
