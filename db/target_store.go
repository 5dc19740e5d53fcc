package db

import (
	"context"
	"errors"
	"time"

	"github.com/ReadCircle/bookgraphGo/apperrors"
	"github.com/ReadCircle/bookgraphGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TargetInfo is the slice of a target document the engagement layer needs:
// its id and the user who owns it.
type TargetInfo struct {
	Id      string
	OwnerId string
}

// TargetStoreInterface resolves a polymorphic target reference to its
// backing collection and writes denormalized counters back to it.
type TargetStoreInterface interface {
	FindTarget(ctx context.Context, ref models.TargetRef) (*TargetInfo, error)
	SetCounter(ctx context.Context, ref models.TargetRef, field models.CounterField, value int64) error
}

type TargetStore struct {
	database *mongo.Database
}

// targetDoc covers the owner field of every target collection. Books carry
// the owner under addedBy, everything else under userId.
type targetDoc struct {
	Id      string `bson:"_id"`
	UserId  string `bson:"userId"`
	AddedBy string `bson:"addedBy"`
}

func (t *TargetStore) collectionFor(targetType models.TargetType) (*mongo.Collection, error) {
	switch targetType {
	case models.TargetRecommendation:
		return t.database.Collection(recommendationsCollection), nil
	case models.TargetReview:
		return t.database.Collection(reviewsCollection), nil
	case models.TargetComment:
		return t.database.Collection(commentsCollection), nil
	case models.TargetBook:
		return t.database.Collection(booksCollection), nil
	default:
		return nil, apperrors.Validationf("unknown target type %q", targetType)
	}
}

func (t *TargetStore) FindTarget(ctx context.Context, ref models.TargetRef) (*TargetInfo, error) {
	col, err := t.collectionFor(ref.TargetType)
	if err != nil {
		return nil, err
	}

	var doc targetDoc
	err = col.FindOne(ctx, bson.M{"_id": ref.TargetId}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFoundf("%s %s not found", ref.TargetType, ref.TargetId)
	}
	if err != nil {
		return nil, err
	}

	owner := doc.UserId
	if len(owner) == 0 {
		owner = doc.AddedBy
	}
	return &TargetInfo{Id: doc.Id, OwnerId: owner}, nil
}

func (t *TargetStore) SetCounter(ctx context.Context, ref models.TargetRef, field models.CounterField, value int64) error {
	col, err := t.collectionFor(ref.TargetType)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{string(field): value, "updatedOn": time.Now().Unix()}}
	res, err := col.UpdateOne(ctx, bson.M{"_id": ref.TargetId}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFoundf("%s %s not found", ref.TargetType, ref.TargetId)
	}
	return nil
}
