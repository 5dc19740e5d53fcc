package models

import "github.com/google/uuid"

// BookRecommendationModel is a user's public recommendation of a book and
// the primary engagement target.
type BookRecommendationModel struct {
	RecommendationId string   `bson:"_id" json:"recommendationId"`
	UserId           string   `bson:"userId" json:"userId"`
	BookId           string   `bson:"bookId" json:"bookId"`
	Headline         string   `bson:"headline" json:"headline"`
	Body             string   `bson:"body" json:"body"`
	Tags             []string `bson:"tags" json:"tags"`

	LikeCount    int64 `bson:"likeCount" json:"likeCount"`
	CommentCount int64 `bson:"commentCount" json:"commentCount"`
	ShareCount   int64 `bson:"shareCount" json:"shareCount"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (r *BookRecommendationModel) Id() string {
	if len(r.RecommendationId) == 0 {
		r.RecommendationId = uuid.NewString()
	}
	return r.RecommendationId
}

func (r *BookRecommendationModel) SetTimestamps(createdOn, updatedOn int64) {
	if r.CreatedOn == 0 {
		r.CreatedOn = createdOn
	}
	r.UpdatedOn = updatedOn
}
