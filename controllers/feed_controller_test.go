package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weatherfit/backend/feed"
	"github.com/weatherfit/backend/middleware"
	"github.com/weatherfit/backend/store"
	"github.com/weatherfit/backend/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects an authenticated identity the way the JWT middleware
// would.
func asUser(id uint, username string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if id != 0 {
			ctx.Set(middleware.ContextUserIDKey, id)
			ctx.Set(middleware.ContextUsernameKey, username)
		}
		ctx.Next()
	}
}

func newFeedRouter(t *testing.T, userID uint, username string) (*gin.Engine, *feed.Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	notifier := feed.NewNotifier(nil, nil)
	t.Cleanup(func() { notifier.Close() })
	svc := feed.NewService(st, feed.NewCache(), notifier, nil)

	fc := NewFeedController(svc)
	r := gin.New()
	r.Use(asUser(userID, username))
	r.GET("/posts", fc.ListPosts)
	r.GET("/posts/:id", fc.GetPost)
	r.POST("/posts", fc.CreatePost)
	r.PUT("/posts/:id", fc.UpdatePost)
	r.DELETE("/posts/:id", fc.DeletePost)
	r.POST("/posts/:id/like", fc.ToggleLike)
	r.POST("/posts/:id/comments", fc.CreateComment)
	r.GET("/sidebar/top", fc.TopPosts)
	return r, svc, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, utils.JSONResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestCreateAndListPosts(t *testing.T) {
	r, _, _ := newFeedRouter(t, 1, "alice")

	w, resp := doJSON(t, r, http.MethodPost, "/posts",
		`{"title":"rainy day look","content":"layers work"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, resp.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/posts", "")
	require.Equal(t, http.StatusOK, w.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var page struct {
		Items []struct {
			Title     string `json:"title"`
			Author    string `json:"author"`
			LikeCount int    `json:"like_count"`
			Liked     bool   `json:"liked"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "rainy day look", page.Items[0].Title)
	assert.Equal(t, "alice", page.Items[0].Author)
	assert.Equal(t, 0, page.Items[0].LikeCount)
	assert.False(t, page.Items[0].Liked)
}

func TestToggleLikeEndpoint(t *testing.T) {
	r, svc, _ := newFeedRouter(t, 1, "alice")
	post, err := svc.CreatePost(context.Background(), feed.PostInput{
		Title: "t", Content: "c", Author: "alice", AuthorID: 1,
	})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodPost, "/posts/1/like", "")
	require.Equal(t, http.StatusOK, w.Code)

	data, _ := json.Marshal(resp.Data)
	var like feed.LikeResult
	require.NoError(t, json.Unmarshal(data, &like))
	assert.True(t, like.Liked)
	assert.Equal(t, 1, like.LikeCount)

	_, resp = doJSON(t, r, http.MethodPost, "/posts/1/like", "")
	data, _ = json.Marshal(resp.Data)
	require.NoError(t, json.Unmarshal(data, &like))
	assert.False(t, like.Liked)
	assert.Equal(t, 0, like.LikeCount)

	cached, ok := svc.Post(post.ID)
	require.True(t, ok)
	assert.Empty(t, cached.LikedBy)
}

func TestDeleteRequiresConfirm(t *testing.T) {
	r, svc, st := newFeedRouter(t, 1, "alice")
	_, err := svc.CreatePost(context.Background(), feed.PostInput{
		Title: "t", Content: "c", Author: "alice", AuthorID: 1,
	})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodDelete, "/posts/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 40910, resp.Code)

	_, err = st.Get(context.Background(), 1)
	assert.NoError(t, err)

	w, _ = doJSON(t, r, http.MethodDelete, "/posts/1?confirm=true", "")
	assert.Equal(t, http.StatusOK, w.Code)

	_, err = st.Get(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteForeignPostForbidden(t *testing.T) {
	r, svc, st := newFeedRouter(t, 2, "mallory")
	_, err := svc.CreatePost(context.Background(), feed.PostInput{
		Title: "t", Content: "c", Author: "alice", AuthorID: 1,
	})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodDelete, "/posts/1?confirm=true", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 40301, resp.Code)

	_, err = st.Get(context.Background(), 1)
	assert.NoError(t, err)
}

func TestCommentRenderedInDetail(t *testing.T) {
	r, svc, _ := newFeedRouter(t, 1, "alice")
	_, err := svc.CreatePost(context.Background(), feed.PostInput{
		Title: "t", Content: "c", Author: "alice", AuthorID: 1,
	})
	require.NoError(t, err)

	w, _ := doJSON(t, r, http.MethodPost, "/posts/1/comments",
		`{"text":"**love** it <script>alert(1)</script>"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/posts/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	data, _ := json.Marshal(resp.Data)
	var detail struct {
		Comments []struct {
			Text string `json:"text"`
			HTML string `json:"html"`
		} `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(data, &detail))
	require.Len(t, detail.Comments, 1)
	assert.Contains(t, detail.Comments[0].HTML, "<strong>love</strong>")
	assert.Contains(t, detail.Comments[0].HTML, "&lt;script&gt;")
	assert.NotContains(t, detail.Comments[0].HTML, "<script>")
}

func TestMutationsRequireAuth(t *testing.T) {
	r, svc, _ := newFeedRouter(t, 0, "")
	_, err := svc.CreatePost(context.Background(), feed.PostInput{
		Title: "t", Content: "c", Author: "alice", AuthorID: 1,
	})
	require.NoError(t, err)

	w, resp := doJSON(t, r, http.MethodPost, "/posts/1/like", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 40110, resp.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/posts/1/comments", `{"text":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetPostNotFound(t *testing.T) {
	r, _, _ := newFeedRouter(t, 1, "alice")

	w, resp := doJSON(t, r, http.MethodGet, "/posts/77", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 40401, resp.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/posts/zero", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40010, resp.Code)
}
