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

type CommentHandler struct {
	store store.Store
}

func NewCommentHandler(s store.Store) *CommentHandler {
	return &CommentHandler{store: s}
}

func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.store.CommentsByPost(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, normalizeComments(comments))
}

func (h *CommentHandler) ListByUser(c *gin.Context) {
	comments, err := h.store.CommentsByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, normalizeComments(comments))
}

// Create stores the comment as submitted. post_id must be present in the
// body; the referenced post is not verified to exist.
func (h *CommentHandler) Create(c *gin.Context) {
	var comment models.Comment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if comment.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post_id is required in the comment body"})
		return
	}

	if err := h.store.CreateComment(c.Request.Context(), &comment); err != nil {
		log.Printf("CreateComment insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	comment.Normalize()
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var upd models.CommentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := middleware.CurrentUser(c)
	comment, err := h.store.UpdateComment(c.Request.Context(), c.Param("id"), caller.ID.Hex(), &upd)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if errors.Is(err, store.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to update this comment"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	comment.Normalize()
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	err := h.store.DeleteComment(c.Request.Context(), c.Param("id"), caller.ID.Hex())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if errors.Is(err, store.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to delete this comment"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	var req UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	likes, err := h.store.ToggleCommentLike(c.Request.Context(), c.Param("id"), req.UserID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update likes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func normalizeComments(comments []models.Comment) []models.Comment {
	if comments == nil {
		comments = []models.Comment{}
	}
	for i := range comments {
		comments[i].Normalize()
	}
	return comments
}
