package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/quillhub/quillhub-be/app"
	"github.com/quillhub/quillhub-be/cache"
	"github.com/quillhub/quillhub-be/config"
	"github.com/quillhub/quillhub-be/db/memory"
	"github.com/quillhub/quillhub-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier maps bearer tokens straight to uids, standing in for the
// firebase client.
type stubVerifier struct {
	uids map[string]string
}

func (sv *stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	uid, ok := sv.uids[idToken]
	if !ok {
		return nil, fmt.Errorf("invalid token %q", idToken)
	}
	return &auth.Token{UID: uid}, nil
}

type routesEnv struct {
	store  *memory.Store
	router *gin.Engine
}

func newRoutesEnv(t *testing.T) *routesEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	pageCache := cache.NewMemory(config.FeedCacheTTL)
	content := app.NewContentService(store, pageCache)
	verifier := &stubVerifier{uids: map[string]string{
		"alice-token": "alice",
		"bob-token":   "bob",
	}}

	router := gin.New()
	AddPostRoutes(&router.RouterGroup, store, content, verifier, nil)
	return &routesEnv{store: store, router: router}
}

func (env *routesEnv) addUser(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, env.store.CreateUser(context.Background(), &model.User{Id: id, Name: name}))
}

func (env *routesEnv) request(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res := httptest.NewRecorder()
	env.router.ServeHTTP(res, req)
	return res
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func parseEnvelope(t *testing.T, res *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	return body
}

func TestCreatePostRequiresAuth(t *testing.T) {
	env := newRoutesEnv(t)

	res := env.request("PUT", "/posts", "", `{"text":"hello"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = env.request("PUT", "/posts", "forged-token", `{"text":"hello"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestCreatePostRequiresProfile(t *testing.T) {
	env := newRoutesEnv(t)

	// The token is valid but no profile was ever created for alice.
	res := env.request("PUT", "/posts", "alice-token", `{"text":"hello"}`)
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	env := newRoutesEnv(t)
	env.addUser(t, "alice", "alice")
	env.addUser(t, "bob", "bob")

	res := env.request("PUT", "/posts", "alice-token", `{"text":"hello from alice"}`)
	require.Equal(t, http.StatusOK, res.Code)
	body := parseEnvelope(t, res)
	require.True(t, body.Success)
	var post model.Post
	require.NoError(t, json.Unmarshal(body.Data, &post))
	assert.Equal(t, "hello from alice", post.Text)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Name)

	// Someone else cannot edit it.
	res = env.request("POST", fmt.Sprintf("/posts/%d", post.Id), "bob-token", `{"text":"hijacked"}`)
	assert.Equal(t, http.StatusForbidden, res.Code)

	// The author can.
	res = env.request("POST", fmt.Sprintf("/posts/%d", post.Id), "alice-token", `{"text":"edited"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var edited model.Post
	require.NoError(t, json.Unmarshal(parseEnvelope(t, res).Data, &edited))
	assert.Equal(t, "edited", edited.Text)

	res = env.request("DELETE", fmt.Sprintf("/posts/%d", post.Id), "bob-token", "")
	assert.Equal(t, http.StatusForbidden, res.Code)
	res = env.request("DELETE", fmt.Sprintf("/posts/%d", post.Id), "alice-token", "")
	assert.Equal(t, http.StatusOK, res.Code)

	res = env.request("GET", fmt.Sprintf("/posts/%d", post.Id), "alice-token", "")
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestCommentsOverHTTP(t *testing.T) {
	env := newRoutesEnv(t)
	env.addUser(t, "alice", "alice")
	env.addUser(t, "bob", "bob")

	res := env.request("PUT", "/posts", "alice-token", `{"text":"discuss"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var post model.Post
	require.NoError(t, json.Unmarshal(parseEnvelope(t, res).Data, &post))

	// Anonymous callers cannot comment.
	res = env.request("PUT", fmt.Sprintf("/posts/%d/comments", post.Id), "", `{"text":"anon"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = env.request("PUT", fmt.Sprintf("/posts/%d/comments", post.Id), "bob-token", `{"text":"nice one"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var comment model.Comment
	require.NoError(t, json.Unmarshal(parseEnvelope(t, res).Data, &comment))
	assert.Equal(t, "nice one", comment.Text)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "bob", comment.Author.Name)

	res = env.request("GET", fmt.Sprintf("/posts/%d/comments", post.Id), "alice-token", "")
	require.Equal(t, http.StatusOK, res.Code)
	var comments []*model.Comment
	require.NoError(t, json.Unmarshal(parseEnvelope(t, res).Data, &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, comment.Id, comments[0].Id)

	// Commenting on a missing post is a 404, and empty text a 400.
	res = env.request("PUT", "/posts/424242/comments", "bob-token", `{"text":"hi"}`)
	assert.Equal(t, http.StatusNotFound, res.Code)
	res = env.request("PUT", fmt.Sprintf("/posts/%d/comments", post.Id), "bob-token", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUploadWithoutBucketConfigured(t *testing.T) {
	env := newRoutesEnv(t)
	env.addUser(t, "alice", "alice")

	res := env.request("POST", "/images", "alice-token", "not-json-binary")
	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestBadPostIdIsRejected(t *testing.T) {
	env := newRoutesEnv(t)
	env.addUser(t, "alice", "alice")

	res := env.request("GET", "/posts/not-a-number", "alice-token", "")
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
