package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/our-area/api-go/config"
	"github.com/our-area/api-go/models"
	"github.com/our-area/api-go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Provision(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Create(&models.Area{
		ID: "area1", Name: "Downtown", CenterLat: 40.7128, CenterLng: -74.0060, RadiusM: 2000,
	}).Error)

	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: 30 * time.Minute}
	r := gin.New()
	SetupRoutes(r, storage.NewSQLDB(sqlDB, "sqlite3"), cfg)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/signup", "", gin.H{
		"display_name": username,
		"username":     username,
		"password":     "secret1",
		"area_id":      "area1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bearer", resp.TokenType)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupLoginFlow(t *testing.T) {
	r, _ := setupTestServer(t)
	signupAndLogin(t, r, "alice")

	// Duplicate username is rejected.
	w := doJSON(t, r, http.MethodPost, "/signup", "", gin.H{
		"display_name": "Alice Again",
		"username":     "alice",
		"password":     "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong password is a 401 with the generic message.
	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")

	// Unknown username gets the same message, not a 404.
	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "nobody",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupTestServer(t)

	for _, tc := range []struct{ method, url string }{
		{http.MethodGet, "/users/me"},
		{http.MethodGet, "/posts/feed?area_id=area1"},
		{http.MethodPost, "/posts"},
	} {
		w := doJSON(t, r, tc.method, tc.url, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.url)
	}

	w := doJSON(t, r, http.MethodGet, "/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostFeedLikeFlow(t *testing.T) {
	r, _ := setupTestServer(t)
	token := signupAndLogin(t, r, "alice")

	// Profile reflects the signup payload.
	w := doJSON(t, r, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"display_name":"alice"`)

	// Create a post in the seeded area.
	w = doJSON(t, r, http.MethodPost, "/posts", token, gin.H{
		"area_id":  "area1",
		"text":     "hello",
		"category": "event",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data struct {
			PostID string `json:"post_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created.Data.PostID
	require.NotEmpty(t, postID)

	feed := func() []map[string]any {
		w := doJSON(t, r, http.MethodGet, "/posts/feed?area_id=area1", token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var posts []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		return posts
	}

	posts := feed()
	require.Len(t, posts, 1)
	assert.Equal(t, postID, posts[0]["id"])
	assert.Equal(t, false, posts[0]["is_liked"])
	assert.Equal(t, float64(0), posts[0]["likes_count"])

	// Like, observe, unlike.
	w = doJSON(t, r, http.MethodPost, "/posts/"+postID+"/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"action":"liked"`)

	posts = feed()
	require.Len(t, posts, 1)
	assert.Equal(t, true, posts[0]["is_liked"])
	assert.Equal(t, float64(1), posts[0]["likes_count"])

	w = doJSON(t, r, http.MethodPost, "/posts/"+postID+"/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"action":"unliked"`)

	posts = feed()
	require.Len(t, posts, 1)
	assert.Equal(t, false, posts[0]["is_liked"])
	assert.Equal(t, float64(0), posts[0]["likes_count"])
}

func TestProfileUpdateAndLocation(t *testing.T) {
	r, _ := setupTestServer(t)
	token := signupAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPut, "/users/me", token, gin.H{
		"display_name":  "Alice B",
		"bio":           "hello",
		"password_hash": "ignored",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/users/me/location", token, gin.H{
		"city":    "New York",
		"country": "US",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_name":"Alice B"`)
	assert.Contains(t, w.Body.String(), `"city":"New York"`)

	// Login still works with the original password.
	w = doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": "alice",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFeedQueryValidation(t *testing.T) {
	r, _ := setupTestServer(t)
	token := signupAndLogin(t, r, "alice")

	for _, url := range []string{
		"/posts/feed",
		"/posts/feed?area_id=area1&page=0",
		"/posts/feed?area_id=area1&limit=0",
		"/posts/feed?area_id=area1&limit=101",
	} {
		w := doJSON(t, r, http.MethodGet, url, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}

func TestPublicPostAndComments(t *testing.T) {
	r, _ := setupTestServer(t)
	token := signupAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/posts", token, gin.H{
		"area_id":  "area1",
		"text":     "open to all",
		"category": "news",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			PostID string `json:"post_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created.Data.PostID

	// Anonymous read works; flags stay off.
	w = doJSON(t, r, http.MethodGet, "/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"is_liked":false`)

	// Commenting requires auth.
	w = doJSON(t, r, http.MethodPost, "/posts/"+postID+"/comments", "", gin.H{"text": "anon"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/posts/"+postID+"/comments", token, gin.H{"text": "first!"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Anyone can list the comments.
	w = doJSON(t, r, http.MethodGet, "/posts/"+postID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"text":"first!"`)

	// Comments on a missing post 404.
	w = doJSON(t, r, http.MethodPost, "/posts/no-such-post/comments", token, gin.H{"text": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOwnPostOnly(t *testing.T) {
	r, _ := setupTestServer(t)
	alice := signupAndLogin(t, r, "alice")
	bob := signupAndLogin(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/posts", alice, gin.H{
		"area_id":  "area1",
		"text":     "original",
		"category": "other",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			PostID string `json:"post_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created.Data.PostID

	// The author can edit allow-listed fields.
	w = doJSON(t, r, http.MethodPut, "/posts/"+postID, alice, gin.H{"text": "edited"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/posts/"+postID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"text":"edited"`)

	// Another user cannot.
	w = doJSON(t, r, http.MethodPut, "/posts/"+postID, bob, gin.H{"text": "hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing post is a 404, not a 403.
	w = doJSON(t, r, http.MethodPut, "/posts/no-such-post", alice, gin.H{"text": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportsRequireExactlyOneTarget(t *testing.T) {
	r, _ := setupTestServer(t)
	alice := signupAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/posts", alice, gin.H{
		"area_id":  "area1",
		"text":     "sketchy",
		"category": "other",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data struct {
			PostID string `json:"post_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	postID := created.Data.PostID

	// No target.
	w = doJSON(t, r, http.MethodPost, "/reports", alice, gin.H{"reason": "spam"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid post report.
	w = doJSON(t, r, http.MethodPost, "/reports", alice, gin.H{
		"reason":  "spam",
		"post_id": postID,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Missing target entity.
	w = doJSON(t, r, http.MethodPost, "/reports", alice, gin.H{
		"reason":  "spam",
		"post_id": "no-such-post",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
