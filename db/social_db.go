package db

import (
	"context"
	"time"

	"github.com/ReadCircle/bookgraphGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection           = "users"
	booksCollection           = "books"
	recommendationsCollection = "recommendations"
	reviewsCollection         = "reviews"
	likesCollection           = "likes"
	commentsCollection        = "comments"
	followsCollection         = "follows"
	sharesCollection          = "shares"
)

// SocialDbInterface is the storage facade handed to services. Tests swap in
// in-memory fakes.
type SocialDbInterface interface {
	User() UserRepositoryInterface
	Book() BookRepositoryInterface
	Recommendation() RecommendationRepositoryInterface
	Review() ReviewRepositoryInterface
	Like() LikeRepositoryInterface
	Comment() CommentRepositoryInterface
	Follow() FollowRepositoryInterface
	Share() ShareRepositoryInterface
	Target() TargetStoreInterface
}

type SocialDb struct {
	database *mongo.Database
}

func NewSocialDb(ctx context.Context, uri, dbName string) (*SocialDb, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, err
	}
	return &SocialDb{database: client.Database(dbName)}, nil
}

func (db *SocialDb) Close(ctx context.Context) error {
	return db.database.Client().Disconnect(ctx)
}

func (db *SocialDb) User() UserRepositoryInterface {
	return &UserRepository{Repository[models.UserModel, *models.UserModel]{col: db.database.Collection(usersCollection)}}
}

func (db *SocialDb) Book() BookRepositoryInterface {
	return &BookRepository{Repository[models.BookModel, *models.BookModel]{col: db.database.Collection(booksCollection)}}
}

func (db *SocialDb) Recommendation() RecommendationRepositoryInterface {
	return &RecommendationRepository{Repository[models.BookRecommendationModel, *models.BookRecommendationModel]{col: db.database.Collection(recommendationsCollection)}}
}

func (db *SocialDb) Review() ReviewRepositoryInterface {
	return &ReviewRepository{Repository[models.ReviewModel, *models.ReviewModel]{col: db.database.Collection(reviewsCollection)}}
}

func (db *SocialDb) Like() LikeRepositoryInterface {
	return &LikeRepository{Repository[models.LikeModel, *models.LikeModel]{col: db.database.Collection(likesCollection)}}
}

func (db *SocialDb) Comment() CommentRepositoryInterface {
	return &CommentRepository{Repository[models.CommentModel, *models.CommentModel]{col: db.database.Collection(commentsCollection)}}
}

func (db *SocialDb) Follow() FollowRepositoryInterface {
	return &FollowRepository{Repository[models.FollowModel, *models.FollowModel]{col: db.database.Collection(followsCollection)}}
}

func (db *SocialDb) Share() ShareRepositoryInterface {
	return &ShareRepository{Repository[models.ShareModel, *models.ShareModel]{col: db.database.Collection(sharesCollection)}}
}

func (db *SocialDb) Target() TargetStoreInterface {
	return &TargetStore{database: db.database}
}

// EnsureIndexes creates the secondary indexes the listing and count queries
// rely on. Like/follow uniqueness rides on the composite _id and needs no
// extra index.
func (db *SocialDb) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		likesCollection: {
			{Keys: bson.D{{Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}}},
			{Keys: bson.D{{Key: "targetOwnerId", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}, {Key: "createdOn", Value: -1}}},
			{Keys: bson.D{{Key: "parentCommentId", Value: 1}, {Key: "createdOn", Value: 1}}},
		},
		followsCollection: {
			{Keys: bson.D{{Key: "followerId", Value: 1}}},
			{Keys: bson.D{{Key: "followingId", Value: 1}}},
		},
		sharesCollection: {
			{Keys: bson.D{{Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}}},
			{Keys: bson.D{{Key: "sharedWithUsers", Value: 1}}},
			{Keys: bson.D{{Key: "createdOn", Value: -1}}},
		},
		recommendationsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for collection, collectionIndexes := range indexes {
		if _, err := db.database.Collection(collection).Indexes().CreateMany(ctx, collectionIndexes); err != nil {
			return err
		}
	}
	return nil
}
