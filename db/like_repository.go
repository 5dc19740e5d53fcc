package db

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/models"
	"go.mongodb.org/mongo-driver/bson"
)

type LikeRepositoryInterface interface {
	Insert(ctx context.Context, like *models.LikeModel) error
	DeleteById(ctx context.Context, id string) error
	IsExistsById(ctx context.Context, id string) (bool, error)
	CountByTarget(ctx context.Context, ref models.TargetRef) (int64, error)
	CountByTargetOwner(ctx context.Context, ownerId string) (int64, error)
	FindByTarget(ctx context.Context, ref models.TargetRef, limit int64) ([]models.LikeModel, error)
}

type LikeRepository struct {
	Repository[models.LikeModel, *models.LikeModel]
}

func targetFilter(ref models.TargetRef) bson.M {
	return bson.M{"targetType": ref.TargetType, "targetId": ref.TargetId}
}

func (r *LikeRepository) CountByTarget(ctx context.Context, ref models.TargetRef) (int64, error) {
	return r.Count(ctx, targetFilter(ref))
}

func (r *LikeRepository) CountByTargetOwner(ctx context.Context, ownerId string) (int64, error) {
	return r.Count(ctx, bson.M{"targetOwnerId": ownerId})
}

func (r *LikeRepository) FindByTarget(ctx context.Context, ref models.TargetRef, limit int64) ([]models.LikeModel, error) {
	sort := bson.D{{Key: "createdOn", Value: -1}}
	return r.Find(ctx, targetFilter(ref), sort, limit, 0)
}
