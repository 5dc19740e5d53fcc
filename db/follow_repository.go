package db

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/thoas/go-funk"
	"go.mongodb.org/mongo-driver/bson"
)

// Suggestion traversal reads entire follow lists; cap them so one pathological
// account cannot drag the whole query down.
const maxGraphFanout = 1000

type FollowRepositoryInterface interface {
	Insert(ctx context.Context, follow *models.FollowModel) error
	DeleteById(ctx context.Context, id string) error
	IsExistsById(ctx context.Context, id string) (bool, error)
	CountFollowers(ctx context.Context, userId string) (int64, error)
	CountFollowing(ctx context.Context, userId string) (int64, error)
	GetFollowerIds(ctx context.Context, userId string, limit, skip int64) ([]string, error)
	GetFollowingIds(ctx context.Context, userId string, limit, skip int64) ([]string, error)
}

type FollowRepository struct {
	Repository[models.FollowModel, *models.FollowModel]
}

func acceptedFollowers(userId string) bson.M {
	return bson.M{"followingId": userId, "status": models.FollowAccepted}
}

func acceptedFollowing(userId string) bson.M {
	return bson.M{"followerId": userId, "status": models.FollowAccepted}
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userId string) (int64, error) {
	return r.Count(ctx, acceptedFollowers(userId))
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userId string) (int64, error) {
	return r.Count(ctx, acceptedFollowing(userId))
}

// GetFollowerIds returns ids of users following userId, newest edge first.
// limit <= 0 returns the full (capped) list for graph traversal.
func (r *FollowRepository) GetFollowerIds(ctx context.Context, userId string, limit, skip int64) ([]string, error) {
	if limit <= 0 {
		limit = maxGraphFanout
	}
	followers, err := r.Find(ctx, acceptedFollowers(userId), bson.D{{Key: "createdOn", Value: -1}}, limit, skip)
	if err != nil {
		return nil, err
	}
	return funk.Map(followers, func(follow models.FollowModel) string {
		return follow.FollowerId
	}).([]string), nil
}

func (r *FollowRepository) GetFollowingIds(ctx context.Context, userId string, limit, skip int64) ([]string, error) {
	if limit <= 0 {
		limit = maxGraphFanout
	}
	following, err := r.Find(ctx, acceptedFollowing(userId), bson.D{{Key: "createdOn", Value: -1}}, limit, skip)
	if err != nil {
		return nil, err
	}
	return funk.Map(following, func(follow models.FollowModel) string {
		return follow.FollowingId
	}).([]string), nil
}
