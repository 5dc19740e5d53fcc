package models

import "github.com/google/uuid"

type ShareType string

const (
	ShareInternal ShareType = "internal"
	ShareExternal ShareType = "external"
	ShareSocial   ShareType = "social"
)

type SharePlatform string

const (
	PlatformTwitter  SharePlatform = "twitter"
	PlatformFacebook SharePlatform = "facebook"
	PlatformLinkedin SharePlatform = "linkedin"
	PlatformEmail    SharePlatform = "email"
	PlatformCopyLink SharePlatform = "copy_link"
)

var externalPlatforms = map[SharePlatform]bool{
	PlatformTwitter:  true,
	PlatformFacebook: true,
	PlatformLinkedin: true,
	PlatformEmail:    true,
	PlatformCopyLink: true,
}

func (p SharePlatform) ValidForExternal() bool { return externalPlatforms[p] }

func (s ShareType) Valid() bool {
	return s == ShareInternal || s == ShareExternal || s == ShareSocial
}

// ShareModel records one share action. Shares are never toggled; repeat
// shares of the same target each get their own document.
type ShareModel struct {
	ShareId   string `bson:"_id" json:"shareId"`
	UserId    string `bson:"userId" json:"userId"`
	TargetRef `bson:",inline"`

	ShareType       ShareType     `bson:"shareType" json:"shareType"`
	Platform        SharePlatform `bson:"platform" json:"platform,omitempty"`
	Message         string        `bson:"message" json:"message,omitempty"`
	SharedWithUsers []string      `bson:"sharedWithUsers" json:"sharedWithUsers,omitempty"`
	ClickCount      int64         `bson:"clickCount" json:"clickCount"`

	CreatedOn int64 `bson:"createdOn" json:"createdOn"`
	UpdatedOn int64 `bson:"updatedOn" json:"updatedOn"`
}

func (s *ShareModel) Id() string {
	if len(s.ShareId) == 0 {
		s.ShareId = uuid.NewString()
	}
	return s.ShareId
}

func (s *ShareModel) SetTimestamps(createdOn, updatedOn int64) {
	if s.CreatedOn == 0 {
		s.CreatedOn = createdOn
	}
	s.UpdatedOn = updatedOn
}
