package api

import (
	"net/http"

	"github.com/ReadCircle/bookgraphGo/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ServerConfig is the HTTP-layer slice of the app configuration.
type ServerConfig struct {
	JwtSecret      string
	RateLimitRps   float64
	RateLimitBurst int
}

// Server translates HTTP requests into service calls. All social routes
// require a resolved user identity.
type Server struct {
	likes    *service.LikeService
	comments *service.CommentService
	follows  *service.FollowService
	shares   *service.ShareService
	content  *service.ContentService

	jwtSecret []byte
	limiter   *keyedLimiter
}

func NewServer(
	cfg ServerConfig,
	likes *service.LikeService,
	comments *service.CommentService,
	follows *service.FollowService,
	shares *service.ShareService,
	content *service.ContentService,
) *Server {
	return &Server{
		likes:     likes,
		comments:  comments,
		follows:   follows,
		shares:    shares,
		content:   content,
		jwtSecret: []byte(cfg.JwtSecret),
		limiter:   newKeyedLimiter(cfg.RateLimitRps, cfg.RateLimitBurst),
	}
}

// Router builds the full route table.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger)
	router.Use(s.rateLimitMiddleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/health", s.handleHealth)
	router.Post("/auth/register", s.handleRegisterUser)

	router.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/social", func(r chi.Router) {
			r.Post("/like", s.handleToggleLike)
			r.Get("/likes/{targetType}/{targetId}", s.handleGetLikes)

			r.Post("/comment", s.handleAddComment)
			r.Get("/comments/{targetType}/{targetId}", s.handleGetComments)
			r.Get("/comments/{commentId}/replies", s.handleGetReplies)
			r.Post("/comments/{commentId}/report", s.handleReportComment)
			r.Delete("/comments/{commentId}", s.handleDeleteComment)

			r.Post("/follow", s.handleToggleFollow)
			r.Get("/followers/{userId}", s.handleGetFollowers)
			r.Get("/following/{userId}", s.handleGetFollowing)
			r.Get("/suggested-follows", s.handleSuggestedFollows)
			r.Get("/mutual-followers/{userId}", s.handleMutualFollowers)

			r.Post("/share", s.handleCreateShare)
			r.Post("/shares/{shareId}/click", s.handleTrackClick)
			r.Get("/shares/received", s.handleReceivedShares)
			r.Get("/shares/{targetType}/{targetId}", s.handleGetShares)
			r.Get("/trending", s.handleTrendingShares)
		})

		r.Post("/books", s.handleCreateBook)
		r.Post("/recommendations", s.handleCreateRecommendation)
		r.Post("/reviews", s.handleCreateReview)
		r.Get("/users/{userId}/stats", s.handleUserStats)
	})

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
