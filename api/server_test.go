package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ReadCircle/bookgraphGo/db"
	"github.com/ReadCircle/bookgraphGo/logger"
	"github.com/ReadCircle/bookgraphGo/models"
	"github.com/ReadCircle/bookgraphGo/service"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJwtSecret = "test-secret"

func TestMain(m *testing.M) {
	logger.SetLogger(zap.NewNop())
	os.Exit(m.Run())
}

func newTestServer(cfg ServerConfig) (http.Handler, *db.InMemDb) {
	memDb := db.NewInMemDb()
	counters := service.NewCounterMaintainer(memDb)
	server := NewServer(cfg,
		service.NewLikeService(memDb, counters),
		service.NewCommentService(memDb, counters, nil),
		service.NewFollowService(memDb, counters),
		service.NewShareService(memDb, counters, "https://readcircle.app"),
		service.NewContentService(memDb, counters),
	)
	return server.Router(), memDb
}

func defaultTestServer() (http.Handler, *db.InMemDb) {
	return newTestServer(ServerConfig{JwtSecret: testJwtSecret, RateLimitRps: 1000, RateLimitBurst: 1000})
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject}).
		SignedString([]byte(testJwtSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, handler http.Handler, method, path, userId string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if len(userId) > 0 {
		req.Header.Set("Authorization", "Bearer "+signToken(t, userId))
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, recorder)
	errField, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", recorder.Body.String())
	code, _ := errField["code"].(string)
	return code
}

func TestHealthIsPublic(t *testing.T) {
	handler, _ := defaultTestServer()
	recorder := doRequest(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", decodeBody(t, recorder)["status"])
}

func TestAuthMiddleware(t *testing.T) {
	handler, memDb := defaultTestServer()
	memDb.Users["alice"] = models.UserModel{UserId: "alice", Name: "Alice"}

	recorder := doRequest(t, handler, http.MethodGet, "/social/suggested-follows", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, recorder))

	req := httptest.NewRequest(http.MethodGet, "/social/suggested-follows", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/social/suggested-follows", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	recorder = doRequest(t, handler, http.MethodGet, "/social/suggested-follows", "alice", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthRejectsTokenSignedWithWrongKey(t *testing.T) {
	handler, _ := defaultTestServer()

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).
		SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/social/suggested-follows", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestToggleLikeEndpoint(t *testing.T) {
	handler, memDb := defaultTestServer()
	memDb.Users["alice"] = models.UserModel{UserId: "alice"}
	memDb.Users["bob"] = models.UserModel{UserId: "bob"}
	memDb.Recommendations["rec-1"] = models.BookRecommendationModel{
		RecommendationId: "rec-1", UserId: "bob", Headline: "Read it",
	}

	payload := map[string]string{"targetType": "recommendation", "targetId": "rec-1"}
	recorder := doRequest(t, handler, http.MethodPost, "/social/like", "alice", payload)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, float64(1), body["likeCount"])

	recorder = doRequest(t, handler, http.MethodPost, "/social/like", "alice", payload)
	require.Equal(t, http.StatusOK, recorder.Code)
	body = decodeBody(t, recorder)
	assert.Equal(t, false, body["liked"])
	assert.Equal(t, float64(0), body["likeCount"])
}

func TestToggleLikeEndpointValidation(t *testing.T) {
	handler, _ := defaultTestServer()

	recorder := doRequest(t, handler, http.MethodPost, "/social/like", "alice", map[string]string{"targetId": "rec-1"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION", errorCode(t, recorder))

	recorder = doRequest(t, handler, http.MethodPost, "/social/like", "alice",
		map[string]string{"targetType": "recommendation", "targetId": "missing"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, recorder))
}

func TestCommentEndpoints(t *testing.T) {
	handler, memDb := defaultTestServer()
	memDb.Users["alice"] = models.UserModel{UserId: "alice"}
	memDb.Users["bob"] = models.UserModel{UserId: "bob"}
	memDb.Recommendations["rec-1"] = models.BookRecommendationModel{
		RecommendationId: "rec-1", UserId: "bob", Headline: "Read it",
	}

	payload := map[string]string{"targetType": "recommendation", "targetId": "rec-1", "text": "Lovely"}
	recorder := doRequest(t, handler, http.MethodPost, "/social/comment", "alice", payload)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	created := decodeBody(t, recorder)
	commentId, _ := created["commentId"].(string)
	require.NotEmpty(t, commentId)
	// Moderation internals never leave the server.
	assert.NotContains(t, created, "isModerated")
	assert.NotContains(t, created, "reportCount")

	recorder = doRequest(t, handler, http.MethodGet, "/social/comments/recommendation/rec-1", "alice", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	comments, ok := body["comments"].([]any)
	require.True(t, ok)
	assert.Len(t, comments, 1)

	// Only the author may delete.
	recorder = doRequest(t, handler, http.MethodDelete, "/social/comments/"+commentId, "bob", nil)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, recorder))

	recorder = doRequest(t, handler, http.MethodDelete, "/social/comments/"+commentId, "alice", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, memDb.Comments)
}

func TestFollowEndpoints(t *testing.T) {
	handler, memDb := defaultTestServer()
	memDb.Users["alice"] = models.UserModel{UserId: "alice", Name: "Alice", Email: "alice@example.com"}
	memDb.Users["bob"] = models.UserModel{UserId: "bob", Name: "Bob", Email: "bob@example.com"}

	recorder := doRequest(t, handler, http.MethodPost, "/social/follow", "alice", map[string]string{"followingId": "bob"})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["following"])
	assert.Equal(t, float64(1), body["followersCount"])

	recorder = doRequest(t, handler, http.MethodGet, "/social/followers/bob", "alice", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	body = decodeBody(t, recorder)
	followers, ok := body["followers"].([]any)
	require.True(t, ok)
	require.Len(t, followers, 1)
	first, ok := followers[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", first["userId"])
	// The listing DTO never exposes emails.
	assert.NotContains(t, first, "email")
}

func TestShareEndpoints(t *testing.T) {
	handler, memDb := defaultTestServer()
	memDb.Users["alice"] = models.UserModel{UserId: "alice"}
	memDb.Users["bob"] = models.UserModel{UserId: "bob"}
	memDb.Recommendations["rec-1"] = models.BookRecommendationModel{
		RecommendationId: "rec-1", UserId: "bob", Headline: "Read it",
	}

	payload := map[string]any{
		"targetType": "recommendation",
		"targetId":   "rec-1",
		"shareType":  "external",
		"platform":   "twitter",
	}
	recorder := doRequest(t, handler, http.MethodPost, "/social/share", "alice", payload)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	body := decodeBody(t, recorder)
	assert.Equal(t, "https://readcircle.app/recommendation/rec-1", body["shareUrl"])

	share, ok := body["share"].(map[string]any)
	require.True(t, ok)
	shareId, _ := share["shareId"].(string)
	require.NotEmpty(t, shareId)

	recorder = doRequest(t, handler, http.MethodPost, "/social/shares/"+shareId+"/click", "alice", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(1), decodeBody(t, recorder)["clickCount"])

	recorder = doRequest(t, handler, http.MethodGet, "/social/trending", "alice", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	trending, ok := decodeBody(t, recorder)["trending"].([]any)
	require.True(t, ok)
	assert.Len(t, trending, 1)
}

func TestRegisterEndpoint(t *testing.T) {
	handler, memDb := defaultTestServer()

	recorder := doRequest(t, handler, http.MethodPost, "/auth/register", "",
		map[string]string{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Len(t, memDb.Users, 1)

	recorder = doRequest(t, handler, http.MethodPost, "/auth/register", "",
		map[string]string{"name": "Alice", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION", errorCode(t, recorder))
}

func TestRateLimit(t *testing.T) {
	handler, _ := newTestServer(ServerConfig{JwtSecret: testJwtSecret, RateLimitRps: 0.001, RateLimitBurst: 2})

	for i := 0; i < 2; i++ {
		recorder := doRequest(t, handler, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
	}
	recorder := doRequest(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, recorder))
}
