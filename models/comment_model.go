package models

import "github.com/google/uuid"

type CommentModel struct {
	CommentId string `bson:"_id" json:"commentId"`
	UserId    string `bson:"userId" json:"userId"`
	TargetRef `bson:",inline"`
	Text      string `bson:"text" json:"text"`

	// Empty for top-level comments. Replies are flat: a reply never has
	// replies of its own.
	ParentCommentId string `bson:"parentCommentId" json:"parentCommentId,omitempty"`

	ReplyCount int64 `bson:"replyCount" json:"replyCount"`
	LikeCount  int64 `bson:"likeCount" json:"likeCount"`

	IsPublic    bool  `bson:"isPublic" json:"isPublic"`
	IsModerated bool  `bson:"isModerated" json:"isModerated"`
	ReportCount int64 `bson:"reportCount" json:"reportCount"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (c *CommentModel) Id() string {
	if len(c.CommentId) == 0 {
		c.CommentId = uuid.NewString()
	}
	return c.CommentId
}

func (c *CommentModel) SetTimestamps(createdOn, updatedOn int64) {
	if c.CreatedOn == 0 {
		c.CreatedOn = createdOn
	}
	c.UpdatedOn = updatedOn
}

func (c *CommentModel) IsReply() bool {
	return len(c.ParentCommentId) > 0
}
