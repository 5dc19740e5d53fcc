package db

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/models"
)

type BookRepositoryInterface interface {
	Insert(ctx context.Context, book *models.BookModel) error
	FindOneById(ctx context.Context, id string) (*models.BookModel, error)
	IsExistsById(ctx context.Context, id string) (bool, error)
}

type BookRepository struct {
	Repository[models.BookModel, *models.BookModel]
}
