package db

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/models"
)

type ReviewRepositoryInterface interface {
	Insert(ctx context.Context, review *models.ReviewModel) error
	FindOneById(ctx context.Context, id string) (*models.ReviewModel, error)
}

type ReviewRepository struct {
	Repository[models.ReviewModel, *models.ReviewModel]
}
