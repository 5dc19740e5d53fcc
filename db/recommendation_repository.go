package db

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/models"
	"go.mongodb.org/mongo-driver/bson"
)

type RecommendationRepositoryInterface interface {
	Insert(ctx context.Context, recommendation *models.BookRecommendationModel) error
	FindOneById(ctx context.Context, id string) (*models.BookRecommendationModel, error)
	CountByUser(ctx context.Context, userId string) (int64, error)
}

type RecommendationRepository struct {
	Repository[models.BookRecommendationModel, *models.BookRecommendationModel]
}

func (r *RecommendationRepository) CountByUser(ctx context.Context, userId string) (int64, error) {
	return r.Count(ctx, bson.M{"userId": userId})
}
