package models

import "github.com/google/uuid"

type ReviewModel struct {
	ReviewId string `bson:"_id" json:"reviewId"`
	UserId   string `bson:"userId" json:"userId"`
	BookId   string `bson:"bookId" json:"bookId"`
	Rating   int    `bson:"rating" json:"rating"`
	Text     string `bson:"text" json:"text"`

	LikeCount    int64 `bson:"likeCount" json:"likeCount"`
	CommentCount int64 `bson:"commentCount" json:"commentCount"`
	ShareCount   int64 `bson:"shareCount" json:"shareCount"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (r *ReviewModel) Id() string {
	if len(r.ReviewId) == 0 {
		r.ReviewId = uuid.NewString()
	}
	return r.ReviewId
}

func (r *ReviewModel) SetTimestamps(createdOn, updatedOn int64) {
	if r.CreatedOn == 0 {
		r.CreatedOn = createdOn
	}
	r.UpdatedOn = updatedOn
}
