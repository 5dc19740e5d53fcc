package models

// LikeModel is one user's like on one target. The composite document id is
// the uniqueness constraint: a second insert for the same tuple is a
// duplicate-key error, which the toggle resolves as already-liked.
type LikeModel struct {
	LikeId    string `bson:"_id" json:"likeId"`
	UserId    string `bson:"userId" json:"userId"`
	TargetRef `bson:",inline"`

	// Owner of the target, stamped at insert so likesReceivedCount can be
	// recomputed with a single count query.
	TargetOwnerId string `bson:"targetOwnerId" json:"targetOwnerId"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (l *LikeModel) Id() string {
	if len(l.LikeId) == 0 {
		l.LikeId = GetLikeId(l.UserId, l.TargetType, l.TargetId)
	}
	return l.LikeId
}

func (l *LikeModel) SetTimestamps(createdOn, updatedOn int64) {
	if l.CreatedOn == 0 {
		l.CreatedOn = createdOn
	}
	l.UpdatedOn = updatedOn
}

// returns the like id for the given user and target
func GetLikeId(userId string, targetType TargetType, targetId string) string {
	return userId + "/" + string(targetType) + "/" + targetId
}
