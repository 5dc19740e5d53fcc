package models

import "github.com/google/uuid"

type BookModel struct {
	BookId   string   `bson:"_id" json:"bookId"`
	Title    string   `bson:"title" json:"title"`
	Authors  []string `bson:"authors" json:"authors"`
	Isbn     string   `bson:"isbn" json:"isbn"`
	CoverUrl string   `bson:"coverUrl" json:"coverUrl"`
	AddedBy  string   `bson:"addedBy" json:"addedBy"`

	LikeCount    int64 `bson:"likeCount" json:"likeCount"`
	CommentCount int64 `bson:"commentCount" json:"commentCount"`
	ShareCount   int64 `bson:"shareCount" json:"shareCount"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (b *BookModel) Id() string {
	if len(b.BookId) == 0 {
		b.BookId = uuid.NewString()
	}
	return b.BookId
}

func (b *BookModel) SetTimestamps(createdOn, updatedOn int64) {
	if b.CreatedOn == 0 {
		b.CreatedOn = createdOn
	}
	b.UpdatedOn = updatedOn
}
