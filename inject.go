package main

import (
	"context"

	"github.com/ReadCircle/bookgraphGo/api"
	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/service"
)

type Inject struct {
	SocialDb *db.SocialDb

	Counters       *service.CounterMaintainer
	LikeService    *service.LikeService
	CommentService *service.CommentService
	FollowService  *service.FollowService
	ShareService   *service.ShareService
	ContentService *service.ContentService

	Server *api.Server
}

func NewInject(ctx context.Context, cfg Config) (*Inject, error) {
	socialDb, err := db.NewSocialDb(ctx, cfg.MongoUri, cfg.MongoDb)
	if err != nil {
		return nil, err
	}

	inj := &Inject{SocialDb: socialDb}
	inj.Counters = service.NewCounterMaintainer(socialDb)
	inj.LikeService = service.NewLikeService(socialDb, inj.Counters)
	inj.CommentService = service.NewCommentService(socialDb, inj.Counters, cfg.ModerationDenylist)
	inj.FollowService = service.NewFollowService(socialDb, inj.Counters)
	inj.ShareService = service.NewShareService(socialDb, inj.Counters, cfg.ShareBaseUrl)
	inj.ContentService = service.NewContentService(socialDb, inj.Counters)

	inj.Server = api.NewServer(api.ServerConfig{
		JwtSecret:      cfg.JwtSecret,
		RateLimitRps:   cfg.RateLimitRps,
		RateLimitBurst: cfg.RateLimitBurst,
	}, inj.LikeService, inj.CommentService, inj.FollowService, inj.ShareService, inj.ContentService)

	return inj, nil
}
