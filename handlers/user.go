package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"campushub/auth"
	"campushub/models"
	"campushub/store"

	"github.com/gin-gonic/gin"
)

// searchLimit caps user search results.
const searchLimit = 10

type UserHandler struct {
	store store.Store
}

func NewUserHandler(s store.Store) *UserHandler {
	return &UserHandler{store: s}
}

// List returns every user as a short summary. No pagination.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.Users(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	summaries := make([]models.UserSummary, len(users))
	for i := range users {
		summaries[i] = users[i].Summary()
	}
	c.JSON(http.StatusOK, summaries)
}

type searchResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Search matches the query as a case-insensitive substring of username or
// full name. Queries shorter than 2 characters after trimming return an
// empty list without touching the store.
func (h *UserHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		c.JSON(http.StatusOK, []searchResult{})
		return
	}

	users, err := h.store.SearchUsers(c.Request.Context(), query, searchLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	results := make([]searchResult, len(users))
	for i := range users {
		results[i] = searchResult{
			ID:       users[i].ID.Hex(),
			Name:     users[i].DisplayName(),
			Username: users[i].Username,
		}
	}
	c.JSON(http.StatusOK, results)
}

// Create is the admin-style user creation path: same uniqueness rules as
// registration but no token is issued.
func (h *UserHandler) Create(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	taken, err := h.store.UsernameExists(ctx, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
		return
	}

	taken, err = h.store.EmailExists(ctx, req.Email, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	joined := req.Joined
	if joined == nil || *joined == "" {
		now := time.Now().In(ist).Format(time.RFC3339)
		joined = &now
	}

	user := models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   hash,
		FullName:   req.FullName,
		Bio:        req.Bio,
		Department: req.Department,
		Linkedin:   req.Linkedin,
		Github:     req.Github,
		College:    req.College,
		Joined:     joined,
	}
	if err := h.store.CreateUser(ctx, &user); err != nil {
		log.Printf("CreateUser insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.store.UserByID(c.Request.Context(), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user.Summary())
}

// Update applies only explicitly-set fields. Deliberately unauthenticated:
// any caller may update any user by id.
func (h *UserHandler) Update(c *gin.Context) {
	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		upd.Password = &hash
	}

	user, err := h.store.UpdateUser(c.Request.Context(), c.Param("id"), &upd)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, user.Summary())
}

// Delete hard-deletes the user. Posts and comments keep their stale author
// snapshots; there is no cascade.
func (h *UserHandler) Delete(c *gin.Context) {
	err := h.store.DeleteUser(c.Request.Context(), c.Param("id"))
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
