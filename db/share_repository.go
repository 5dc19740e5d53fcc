package db

import (
	"context"
	"errors"
	"time"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Trending reads a bounded window of raw shares and scores them in memory.
const maxTrendingWindow = 5000

type ShareRepositoryInterface interface {
	Insert(ctx context.Context, share *models.ShareModel) error
	FindOneById(ctx context.Context, id string) (*models.ShareModel, error)
	CountByTarget(ctx context.Context, ref models.TargetRef) (int64, error)
	FindByTarget(ctx context.Context, ref models.TargetRef, limit, skip int64) ([]models.ShareModel, error)
	FindReceived(ctx context.Context, userId string, limit, skip int64) ([]models.ShareModel, error)
	CountReceived(ctx context.Context, userId string) (int64, error)
	FindSince(ctx context.Context, since int64, targetType models.TargetType) ([]models.ShareModel, error)
	IncrementClick(ctx context.Context, shareId string) (int64, error)
}

type ShareRepository struct {
	Repository[models.ShareModel, *models.ShareModel]
}

func (r *ShareRepository) CountByTarget(ctx context.Context, ref models.TargetRef) (int64, error) {
	return r.Count(ctx, targetFilter(ref))
}

func (r *ShareRepository) FindByTarget(ctx context.Context, ref models.TargetRef, limit, skip int64) ([]models.ShareModel, error) {
	return r.Find(ctx, targetFilter(ref), bson.D{{Key: "createdOn", Value: -1}}, limit, skip)
}

// FindReceived lists internal shares fanned out to userId.
func (r *ShareRepository) FindReceived(ctx context.Context, userId string, limit, skip int64) ([]models.ShareModel, error) {
	filter := bson.M{"sharedWithUsers": userId}
	return r.Find(ctx, filter, bson.D{{Key: "createdOn", Value: -1}}, limit, skip)
}

func (r *ShareRepository) CountReceived(ctx context.Context, userId string) (int64, error) {
	return r.Count(ctx, bson.M{"sharedWithUsers": userId})
}

// FindSince returns shares created after the cutoff, optionally narrowed to
// one target type. Empty targetType means all types.
func (r *ShareRepository) FindSince(ctx context.Context, since int64, targetType models.TargetType) ([]models.ShareModel, error) {
	filter := bson.M{"createdOn": bson.M{"$gte": since}}
	if len(targetType) > 0 {
		filter["targetType"] = targetType
	}
	return r.Find(ctx, filter, bson.D{{Key: "createdOn", Value: -1}}, maxTrendingWindow, 0)
}

// IncrementClick bumps the click counter atomically and returns the new
// value. Clicks are source data, not a denormalized count, so a blind $inc
// is correct here.
func (r *ShareRepository) IncrementClick(ctx context.Context, shareId string) (int64, error) {
	update := bson.M{
		"$inc": bson.M{"clickCount": 1},
		"$set": bson.M{"updatedOn": time.Now().Unix()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var share models.ShareModel
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": shareId}, update, opts).Decode(&share)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, apperrors.NotFoundf("share %s not found", shareId)
	}
	if err != nil {
		return 0, err
	}
	return share.ClickCount, nil
}
