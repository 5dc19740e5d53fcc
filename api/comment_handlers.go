package api

import (
	"net/http"

	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/ReadCircle/bookgraphGo/service"
	"github.com/go-chi/chi/v5"
	"github.com/jinzhu/copier"
)

type addCommentRequest struct {
	TargetType      string `json:"targetType" validate:"required"`
	TargetId        string `json:"targetId" validate:"required"`
	Text            string `json:"text" validate:"required"`
	ParentCommentId string `json:"parentCommentId"`
}

type reportCommentRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// commentResponse is the public shape of a comment; moderation internals
// stay server-side.
type commentResponse struct {
	CommentId       string `json:"commentId"`
	UserId          string `json:"userId"`
	TargetType      string `json:"targetType"`
	TargetId        string `json:"targetId"`
	Text            string `json:"text"`
	ParentCommentId string `json:"parentCommentId,omitempty"`
	ReplyCount      int64  `json:"replyCount"`
	LikeCount       int64  `json:"likeCount"`
	CreatedOn       int64  `json:"createdOn"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ref := models.TargetRef{TargetType: models.TargetType(req.TargetType), TargetId: req.TargetId}
	comment, err := s.comments.AddComment(r.Context(), UserId(r.Context()), ref, req.Text, req.ParentCommentId)
	if err != nil {
		respondError(w, err)
		return
	}

	response := commentResponse{}
	copier.Copy(&response, comment)
	respondJSON(w, http.StatusCreated, response)
}

func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	ref := models.TargetRef{
		TargetType: models.TargetType(chi.URLParam(r, "targetType")),
		TargetId:   chi.URLParam(r, "targetId"),
	}
	page, limit := getPageParams(r, 10)
	query := service.CommentListQuery{
		Page:           page,
		Limit:          limit,
		SortBy:         r.URL.Query().Get("sortBy"),
		SortAscending:  r.URL.Query().Get("sortOrder") == "asc",
		IncludeReplies: r.URL.Query().Get("includeReplies") == "true",
	}

	comments, pagination, err := s.comments.GetTargetComments(r.Context(), ref, query)
	if err != nil {
		respondError(w, err)
		return
	}

	responses := []commentResponse{}
	copier.Copy(&responses, &comments)
	respondJSON(w, http.StatusOK, map[string]any{
		"comments":   responses,
		"pagination": pagination,
	})
}

func (s *Server) handleGetReplies(w http.ResponseWriter, r *http.Request) {
	parentCommentId := chi.URLParam(r, "commentId")
	page, limit := getPageParams(r, 10)

	replies, pagination, err := s.comments.GetCommentReplies(r.Context(), parentCommentId, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	responses := []commentResponse{}
	copier.Copy(&responses, &replies)
	respondJSON(w, http.StatusOK, map[string]any{
		"replies":    responses,
		"pagination": pagination,
	})
}

func (s *Server) handleReportComment(w http.ResponseWriter, r *http.Request) {
	var req reportCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	commentId := chi.URLParam(r, "commentId")
	if err := s.comments.ReportComment(r.Context(), commentId, UserId(r.Context()), req.Reason); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reported"})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentId := chi.URLParam(r, "commentId")
	if err := s.comments.DeleteComment(r.Context(), commentId, UserId(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
