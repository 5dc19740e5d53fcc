package db

import (
	"context"
	"time"

	"github.com/ReadCircle/bookgraphGo/models"
	"go.mongodb.org/mongo-driver/bson"
)

// UserCounterField names the denormalized counters on the user document.
type UserCounterField string

const (
	UserFieldFollowers       UserCounterField = "followersCount"
	UserFieldFollowing       UserCounterField = "followingCount"
	UserFieldRecommendations UserCounterField = "recommendationsCount"
	UserFieldLikesReceived   UserCounterField = "likesReceivedCount"
)

type UserRepositoryInterface interface {
	Save(ctx context.Context, user *models.UserModel) error
	FindOneById(ctx context.Context, id string) (*models.UserModel, error)
	IsExistsById(ctx context.Context, id string) (bool, error)
	IsExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByIds(ctx context.Context, ids []string) ([]models.UserModel, error)
	SetCounter(ctx context.Context, userId string, field UserCounterField, value int64) error
}

type UserRepository struct {
	Repository[models.UserModel, *models.UserModel]
}

func (r *UserRepository) IsExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.Count(ctx, bson.M{"email": email})
	return count > 0, err
}

func (r *UserRepository) FindByIds(ctx context.Context, ids []string) ([]models.UserModel, error) {
	if len(ids) == 0 {
		return []models.UserModel{}, nil
	}
	return r.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil, int64(len(ids)), 0)
}

func (r *UserRepository) SetCounter(ctx context.Context, userId string, field UserCounterField, value int64) error {
	update := bson.M{"$set": bson.M{string(field): value, "updatedOn": time.Now().Unix()}}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userId}, update)
	return err
}
