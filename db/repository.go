package db

import (
	"context"
	"errors"
	"time"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Document is implemented by every persisted model. Id() assigns the
// document id on first call; composite ids double as uniqueness constraints.
type Document interface {
	Id() string
	SetTimestamps(createdOn, updatedOn int64)
}

// Repository is a thin generic layer over a mongo collection shared by all
// collection repositories.
type Repository[T any, PT interface {
	*T
	Document
}] struct {
	col *mongo.Collection
}

// Insert creates the document and fails on a duplicate id. Callers that need
// toggle semantics check IsDuplicate on the returned error.
func (r *Repository[T, PT]) Insert(ctx context.Context, doc PT) error {
	now := time.Now().Unix()
	doc.SetTimestamps(now, now)
	doc.Id()
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// Save upserts the document by id.
func (r *Repository[T, PT]) Save(ctx context.Context, doc PT) error {
	doc.SetTimestamps(time.Now().Unix(), time.Now().Unix())
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.Id()}, doc, opts)
	return err
}

func (r *Repository[T, PT]) FindOneById(ctx context.Context, id string) (PT, error) {
	var doc T
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFoundf("document %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return PT(&doc), nil
}

func (r *Repository[T, PT]) IsExistsById(ctx context.Context, id string) (bool, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	return count > 0, err
}

func (r *Repository[T, PT]) DeleteById(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFoundf("document %s not found", id)
	}
	return nil
}

func (r *Repository[T, PT]) Find(ctx context.Context, filter bson.M, sort bson.D, limit, skip int64) ([]T, error) {
	opts := options.Find().SetSkip(skip)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Repository[T, PT]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.col.CountDocuments(ctx, filter)
}

// IsDuplicate reports whether err is a unique-key violation. Toggle
// operations resolve it as idempotent success.
func IsDuplicate(err error) bool {
	return err != nil && mongo.IsDuplicateKeyError(err)
}
