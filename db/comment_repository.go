package db

import (
	"context"
	"time"

	"github.com/ReadCircle/bookgraphGo/models"
	"go.mongodb.org/mongo-driver/bson"
)

// CommentListFilter narrows public comment listings. Sort fields are limited
// to the denormalized ones the collection is indexed for.
type CommentListFilter struct {
	SortBy         string // createdOn | likeCount | replyCount
	SortAscending  bool
	IncludeReplies bool
}

type CommentRepositoryInterface interface {
	Insert(ctx context.Context, comment *models.CommentModel) error
	Save(ctx context.Context, comment *models.CommentModel) error
	FindOneById(ctx context.Context, id string) (*models.CommentModel, error)
	DeleteById(ctx context.Context, id string) error
	CountByTarget(ctx context.Context, ref models.TargetRef) (int64, error)
	CountReplies(ctx context.Context, parentId string) (int64, error)
	SetReplyCount(ctx context.Context, id string, count int64) error
	FindPublicByTarget(ctx context.Context, ref models.TargetRef, filter CommentListFilter, limit, skip int64) ([]models.CommentModel, error)
	CountPublicByTarget(ctx context.Context, ref models.TargetRef, includeReplies bool) (int64, error)
	FindReplies(ctx context.Context, parentId string, limit, skip int64) ([]models.CommentModel, error)
	CountPublicReplies(ctx context.Context, parentId string) (int64, error)
}

type CommentRepository struct {
	Repository[models.CommentModel, *models.CommentModel]
}

// CountByTarget counts every live comment on the target, replies and flagged
// comments included, so the cached commentCount always equals the live
// document count.
func (r *CommentRepository) CountByTarget(ctx context.Context, ref models.TargetRef) (int64, error) {
	return r.Count(ctx, targetFilter(ref))
}

func (r *CommentRepository) CountReplies(ctx context.Context, parentId string) (int64, error) {
	return r.Count(ctx, bson.M{"parentCommentId": parentId})
}

func (r *CommentRepository) SetReplyCount(ctx context.Context, id string, count int64) error {
	update := bson.M{"$set": bson.M{"replyCount": count, "updatedOn": time.Now().Unix()}}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func publicFilter(ref models.TargetRef, includeReplies bool) bson.M {
	filter := targetFilter(ref)
	filter["isPublic"] = true
	filter["isModerated"] = false
	if !includeReplies {
		filter["parentCommentId"] = ""
	}
	return filter
}

func (r *CommentRepository) FindPublicByTarget(ctx context.Context, ref models.TargetRef, filter CommentListFilter, limit, skip int64) ([]models.CommentModel, error) {
	sortBy := filter.SortBy
	switch sortBy {
	case "likeCount", "replyCount", "createdOn":
	default:
		sortBy = "createdOn"
	}
	order := -1
	if filter.SortAscending {
		order = 1
	}
	sort := bson.D{{Key: sortBy, Value: order}}
	return r.Find(ctx, publicFilter(ref, filter.IncludeReplies), sort, limit, skip)
}

func (r *CommentRepository) CountPublicByTarget(ctx context.Context, ref models.TargetRef, includeReplies bool) (int64, error) {
	return r.Count(ctx, publicFilter(ref, includeReplies))
}

// FindReplies lists a parent's replies oldest first, the natural order of a
// conversation thread.
func (r *CommentRepository) FindReplies(ctx context.Context, parentId string, limit, skip int64) ([]models.CommentModel, error) {
	filter := bson.M{"parentCommentId": parentId, "isPublic": true, "isModerated": false}
	sort := bson.D{{Key: "createdOn", Value: 1}}
	return r.Find(ctx, filter, sort, limit, skip)
}

func (r *CommentRepository) CountPublicReplies(ctx context.Context, parentId string) (int64, error) {
	return r.Count(ctx, bson.M{"parentCommentId": parentId, "isPublic": true, "isModerated": false})
}
