package models

import "github.com/google/uuid"

type UserModel struct {
	UserId   string `bson:"_id" json:"userId"`
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Bio      string `bson:"bio" json:"bio"`
	PhotoUrl string `bson:"photoUrl" json:"photoUrl"`

	// Denormalized counters, written only by counter maintenance.
	FollowersCount       int64 `bson:"followersCount" json:"followersCount"`
	FollowingCount       int64 `bson:"followingCount" json:"followingCount"`
	RecommendationsCount int64 `bson:"recommendationsCount" json:"recommendationsCount"`
	LikesReceivedCount   int64 `bson:"likesReceivedCount" json:"likesReceivedCount"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (u *UserModel) Id() string {
	if len(u.UserId) == 0 {
		u.UserId = uuid.NewString()
	}
	return u.UserId
}

func (u *UserModel) SetTimestamps(createdOn, updatedOn int64) {
	if u.CreatedOn == 0 {
		u.CreatedOn = createdOn
	}
	u.UpdatedOn = updatedOn
}
