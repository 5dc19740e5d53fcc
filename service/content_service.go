package service

import (
	"context"
	"strings"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/ReadCircle/bookgraphGo/models"
	"go.uber.org/zap"
)

// ContentService manages the owning entities engagements point at: users,
// books, recommendations and reviews. The engagement layer treats these as
// targets; everything here is ordinary CRUD.
type ContentService struct {
	db       db.SocialDbInterface
	counters *CounterMaintainer
}

func NewContentService(socialDb db.SocialDbInterface, counters *CounterMaintainer) *ContentService {
	return &ContentService{db: socialDb, counters: counters}
}

func (s *ContentService) RegisterUser(ctx context.Context, name, email, bio string) (*models.UserModel, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if len(name) == 0 {
		return nil, apperrors.Validation("name is required")
	}
	if len(email) == 0 || !strings.Contains(email, "@") {
		return nil, apperrors.Validation("a valid email is required")
	}
	exists, err := s.db.User().IsExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Validationf("email %s is already registered", email)
	}

	user := &models.UserModel{Name: name, Email: email, Bio: bio}
	if err := s.db.User().Save(ctx, user); err != nil {
		logger.Error("Failed saving user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *ContentService) CreateBook(ctx context.Context, userId, title string, authors []string, isbn, coverUrl string) (*models.BookModel, error) {
	if len(strings.TrimSpace(title)) == 0 {
		return nil, apperrors.Validation("title is required")
	}

	book := &models.BookModel{
		Title:    strings.TrimSpace(title),
		Authors:  authors,
		Isbn:     isbn,
		CoverUrl: coverUrl,
		AddedBy:  userId,
	}
	if err := s.db.Book().Insert(ctx, book); err != nil {
		logger.Error("Failed saving book", zap.Error(err))
		return nil, err
	}
	return book, nil
}

// CreateRecommendation stores a recommendation and recomputes the author's
// recommendationsCount.
func (s *ContentService) CreateRecommendation(ctx context.Context, userId, bookId, headline, body string, tags []string) (*models.BookRecommendationModel, error) {
	if len(strings.TrimSpace(headline)) == 0 {
		return nil, apperrors.Validation("headline is required")
	}
	if _, err := s.db.Book().FindOneById(ctx, bookId); err != nil {
		return nil, err
	}

	recommendation := &models.BookRecommendationModel{
		UserId:   userId,
		BookId:   bookId,
		Headline: strings.TrimSpace(headline),
		Body:     body,
		Tags:     tags,
	}
	if err := s.db.Recommendation().Insert(ctx, recommendation); err != nil {
		logger.Error("Failed saving recommendation", zap.Error(err))
		return nil, err
	}

	if _, err := s.counters.RefreshRecommendationCount(ctx, userId); err != nil {
		return nil, err
	}
	return recommendation, nil
}

func (s *ContentService) CreateReview(ctx context.Context, userId, bookId string, rating int, text string) (*models.ReviewModel, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if _, err := s.db.Book().FindOneById(ctx, bookId); err != nil {
		return nil, err
	}

	review := &models.ReviewModel{
		UserId: userId,
		BookId: bookId,
		Rating: rating,
		Text:   text,
	}
	if err := s.db.Review().Insert(ctx, review); err != nil {
		logger.Error("Failed saving review", zap.Error(err))
		return nil, err
	}
	return review, nil
}

// GetUserStats returns the user document, whose denormalized counters are
// the social stats surface.
func (s *ContentService) GetUserStats(ctx context.Context, userId string) (*models.UserModel, error) {
	return s.db.User().FindOneById(ctx, userId)
}
