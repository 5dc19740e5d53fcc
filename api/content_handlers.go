package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type registerUserRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Bio   string `json:"bio" validate:"max=500"`
}

type createBookRequest struct {
	Title    string   `json:"title" validate:"required,max=300"`
	Authors  []string `json:"authors"`
	Isbn     string   `json:"isbn"`
	CoverUrl string   `json:"coverUrl"`
}

type createRecommendationRequest struct {
	BookId   string   `json:"bookId" validate:"required"`
	Headline string   `json:"headline" validate:"required,max=200"`
	Body     string   `json:"body" validate:"max=5000"`
	Tags     []string `json:"tags"`
}

type createReviewRequest struct {
	BookId string `json:"bookId" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"text" validate:"max=5000"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := s.content.RegisterUser(r.Context(), req.Name, req.Email, req.Bio)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	book, err := s.content.CreateBook(r.Context(), UserId(r.Context()), req.Title, req.Authors, req.Isbn, req.CoverUrl)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, book)
}

func (s *Server) handleCreateRecommendation(w http.ResponseWriter, r *http.Request) {
	var req createRecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	recommendation, err := s.content.CreateRecommendation(r.Context(), UserId(r.Context()), req.BookId, req.Headline, req.Body, req.Tags)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, recommendation)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	review, err := s.content.CreateReview(r.Context(), UserId(r.Context()), req.BookId, req.Rating, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userId := chi.URLParam(r, "userId")
	user, err := s.content.GetUserStats(r.Context(), userId)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
