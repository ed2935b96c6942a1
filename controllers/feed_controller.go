package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/weatherfit/backend/feed"
	"github.com/weatherfit/backend/models"
	"github.com/weatherfit/backend/utils"
)

// FeedController exposes the feed reconciler over HTTP. Reads are served
// from the cache mirror; every mutation goes through the reconciler so the
// response reflects store-confirmed state.
type FeedController struct {
	svc *feed.Service
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(svc *feed.Service) *FeedController {
	return &FeedController{svc: svc}
}

type commentView struct {
	models.Comment
	HTML string `json:"html"`
}

func commentViews(comments []models.Comment) []commentView {
	out := make([]commentView, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentView{Comment: c, HTML: feed.RenderCommentText(c.Text)})
	}
	return out
}

type postView struct {
	models.Post
	LikeCount    int  `json:"like_count"`
	CommentCount int  `json:"comment_count"`
	Liked        bool `json:"liked"`
}

func newPostView(p models.Post, viewerID uint) postView {
	return postView{
		Post:         p,
		LikeCount:    p.LikeCount(),
		CommentCount: len(p.Comments),
		Liked:        viewerID != 0 && p.LikedByUser(viewerID),
	}
}

// ListPosts returns the cached feed, newest first. With refresh=true (and on
// the first request after boot) the cache is re-derived from the store
// first; when that fails and stale entries exist, the stale feed is served
// rather than an empty page.
func (f *FeedController) ListPosts(ctx *gin.Context) {
	if ctx.Query("refresh") == "true" || len(f.svc.Posts()) == 0 {
		if err := f.svc.LoadAll(ctx.Request.Context()); err != nil && len(f.svc.Posts()) == 0 {
			utils.Error(ctx, http.StatusBadGateway, 50220, "failed to load posts")
			return
		}
	}

	viewerID, _ := getUserID(ctx)
	posts := f.svc.Posts()
	items := make([]postView, 0, len(posts))
	for _, p := range posts {
		items = append(items, newPostView(p, viewerID))
	}
	utils.Success(ctx, gin.H{"items": items})
}

// GetPost returns a single post with rendered comments for the detail view.
func (f *FeedController) GetPost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	post, found := f.svc.Post(id)
	if !found {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}

	viewerID, _ := getUserID(ctx)
	utils.Success(ctx, gin.H{
		"post":     newPostView(post, viewerID),
		"comments": commentViews(post.Comments),
	})
}

// CreatePost allows authenticated users to create new posts.
func (f *FeedController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title    string  `json:"title" binding:"required,min=1"`
		Content  string  `json:"content" binding:"required"`
		ImageURL *string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	userID, _ := getUserID(ctx)
	in := feed.PostInput{
		Title:    utils.Sanitize(req.Title),
		Content:  utils.Sanitize(req.Content),
		ImageURL: req.ImageURL,
		Author:   getUsername(ctx),
		AuthorID: userID,
	}

	post, err := f.svc.CreatePost(ctx.Request.Context(), in)
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"post": newPostView(post, userID)})
}

// UpdatePost allows the author to update their post.
func (f *FeedController) UpdatePost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req struct {
		Title    string  `json:"title" binding:"required,min=1"`
		Content  string  `json:"content" binding:"required"`
		ImageURL *string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	userID, _ := getUserID(ctx)
	edit := feed.PostEdit{
		Title:    utils.Sanitize(req.Title),
		Content:  utils.Sanitize(req.Content),
		ImageURL: req.ImageURL,
	}
	if err := f.svc.UpdatePost(ctx.Request.Context(), id, edit, userID); err != nil {
		writeFeedError(ctx, err)
		return
	}

	post, _ := f.svc.Post(id)
	utils.Success(ctx, gin.H{"post": newPostView(post, userID)})
}

// DeletePost allows the author to delete their post. The destructive call
// requires confirm=true; without it nothing happens.
func (f *FeedController) DeletePost(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	userID, _ := getUserID(ctx)
	confirmed := ctx.Query("confirm") == "true"
	if err := f.svc.DeletePost(ctx.Request.Context(), id, userID, confirmed); err != nil {
		writeFeedError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// ToggleLike flips the caller's like on a post and returns the confirmed
// membership state and count.
func (f *FeedController) ToggleLike(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	userID, _ := getUserID(ctx)
	result, err := f.svc.ToggleLike(ctx.Request.Context(), id, userID)
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	utils.Success(ctx, result)
}

// CreateComment appends a comment to a post.
func (f *FeedController) CreateComment(ctx *gin.Context) {
	id, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	userID, _ := getUserID(ctx)
	post, err := f.svc.AddComment(ctx.Request.Context(), id, req.Text, getUsername(ctx), userID)
	if err != nil {
		writeFeedError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{
		"post":     newPostView(post, userID),
		"comments": commentViews(post.Comments),
	})
}

// TopPosts returns the sidebar sample: two random picks from the five
// highest-liked posts, re-rolled per request.
func (f *FeedController) TopPosts(ctx *gin.Context) {
	viewerID, _ := getUserID(ctx)
	posts := f.svc.TopPosts()
	items := make([]postView, 0, len(posts))
	for _, p := range posts {
		items = append(items, newPostView(p, viewerID))
	}
	utils.Success(ctx, gin.H{"items": items})
}

func parsePostID(ctx *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid post id")
		return 0, false
	}
	return uint(id), true
}

func writeFeedError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, feed.ErrUnauthenticated):
		utils.Error(ctx, http.StatusUnauthorized, 40110, "please log in first")
	case errors.Is(err, feed.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40301, "you can only modify your own posts")
	case errors.Is(err, feed.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
	case errors.Is(err, feed.ErrInvalidInput):
		utils.Error(ctx, http.StatusBadRequest, 40021, err.Error())
	case errors.Is(err, feed.ErrConfirmationRequired):
		utils.Error(ctx, http.StatusConflict, 40910, "confirmation required")
	default:
		utils.Error(ctx, http.StatusBadGateway, 50221, "temporary failure, please try again")
	}
}
