package handlers

import (
	"errors"
	"log"
	"net/http"

	"campushub/middleware"
	"campushub/models"
	"campushub/store"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	store store.Store
}

func NewPostHandler(s store.Store) *PostHandler {
	return &PostHandler{store: s}
}

// UserIDRequest is the body of the like/save toggles. The acting user id is
// taken from the body, not from the token.
type UserIDRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// List returns all posts with commentsCount merged in from a single grouped
// aggregate over the comments collection.
func (h *PostHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	posts, err := h.store.Posts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID.Hex()
	}

	counts, err := h.store.CommentCounts(ctx, ids)
	if err != nil {
		log.Printf("List posts comment counts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count comments"})
		return
	}

	for i := range posts {
		posts[i].CommentsCount = counts[posts[i].ID.Hex()]
		posts[i].Normalize()
	}
	c.JSON(http.StatusOK, posts)
}

// Create inserts the post exactly as supplied: the caller provides author and
// createdAt, and absent optional fields stay out of the document. The caller
// must be authenticated but author._id is not forced to match.
func (h *PostHandler) Create(c *gin.Context) {
	var post models.Post
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.CreatePost(c.Request.Context(), &post); err != nil {
		log.Printf("CreatePost insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	post.Normalize()
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	post, err := h.store.PostByID(ctx, c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	count, err := h.store.CommentCount(ctx, post.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count comments"})
		return
	}

	post.CommentsCount = count
	post.Normalize()
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	var upd models.PostUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.CurrentUser(c)
	post, err := h.store.UpdatePost(c.Request.Context(), c.Param("id"), caller.ID.Hex(), &upd)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if errors.Is(err, store.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to update this post"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	post.Normalize()
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	err := h.store.DeletePost(c.Request.Context(), c.Param("id"), caller.ID.Hex())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if errors.Is(err, store.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this post"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ToggleLike flips the body-supplied user id in the post's like set and
// returns the full resulting set.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	likes, err := h.store.TogglePostLike(c.Request.Context(), c.Param("id"), req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update likes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// ToggleSave works exactly like ToggleLike on the saves set.
func (h *PostHandler) ToggleSave(c *gin.Context) {
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saves, err := h.store.TogglePostSave(c.Request.Context(), c.Param("id"), req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update saves"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saves": saves})
}
