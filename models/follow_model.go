package models

type FollowStatus string

const (
	FollowAccepted FollowStatus = "accepted"
	FollowPending  FollowStatus = "pending"
	FollowBlocked  FollowStatus = "blocked"
)

// FollowModel is a directed edge from follower to followed user. The
// composite id enforces one edge per pair.
type FollowModel struct {
	FollowId    string       `bson:"_id" json:"followId"`
	FollowerId  string       `bson:"followerId" json:"followerId"`
	FollowingId string       `bson:"followingId" json:"followingId"`
	Status      FollowStatus `bson:"status" json:"status"`

	NotificationsEnabled bool `bson:"notificationsEnabled" json:"notificationsEnabled"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (f *FollowModel) Id() string {
	if len(f.FollowId) == 0 {
		f.FollowId = GetFollowId(f.FollowerId, f.FollowingId)
	}
	return f.FollowId
}

func (f *FollowModel) SetTimestamps(createdOn, updatedOn int64) {
	if f.CreatedOn == 0 {
		f.CreatedOn = createdOn
	}
	f.UpdatedOn = updatedOn
}

// returns the follow edge id for the given follower and followed user
func GetFollowId(followerId, followingId string) string {
	return followerId + "/" + followingId
}
