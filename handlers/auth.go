package handlers

import (
	"log"
	"net/http"
	"time"

	"campushub/auth"
	"campushub/middleware"
	"campushub/models"
	"campushub/store"

	"github.com/gin-gonic/gin"
)

// ist is the fixed UTC+5:30 offset stamped on the joined field when the
// caller omits it.
var ist = time.FixedZone("IST", 5*3600+30*60)

type AuthHandler struct {
	store  store.Store
	secret string
}

func NewAuthHandler(s store.Store, secret string) *AuthHandler {
	return &AuthHandler{store: s, secret: secret}
}

type RegisterRequest struct {
	Username   string  `json:"username" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required"`
	FullName   *string `json:"full_name"`
	Bio        *string `json:"bio"`
	Department *string `json:"department"`
	Linkedin   *string `json:"linkedin"`
	Github     *string `json:"github"`
	College    *string `json:"college"`
	Joined     *string `json:"joined"`
}

// Register creates a user and returns the public profile. It does not log the
// caller in; login is a separate call.
func (h *AuthHandler) Register(c *gin.Context) {
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
		log.Printf("Register insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login takes form-encoded credentials and returns a bearer token. Unknown
// user and wrong password produce the same error on purpose.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UserByUsername(c.Request.Context(), req.Username)
	if err == store.ErrNotFound {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect username or password"})
		return
	}

	token, err := auth.CreateAccessToken(h.secret, user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the authenticated caller's public profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, user.Public())
}

type ProfileUpdateRequest struct {
	FullName   *string `json:"full_name"`
	Email      *string `json:"email"`
	Bio        *string `json:"bio"`
	Department *string `json:"department"`
	Linkedin   *string `json:"linkedin"`
	Github     *string `json:"github"`
	College    *string `json:"college"`
	Joined     *string `json:"joined"`
}

func (r *ProfileUpdateRequest) empty() bool {
	return r.FullName == nil && r.Email == nil && r.Bio == nil &&
		r.Department == nil && r.Linkedin == nil && r.Github == nil &&
		r.College == nil && r.Joined == nil
}

// UpdateMe applies only the fields the caller supplied.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data to update"})
		return
	}

	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	if req.Email != nil {
		taken, err := h.store.EmailExists(ctx, *req.Email, user.ID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
	}

	updated, err := h.store.UpdateUser(ctx, user.ID.Hex(), &models.UserUpdate{
		FullName:   req.FullName,
		Email:      req.Email,
		Bio:        req.Bio,
		Department: req.Department,
		Linkedin:   req.Linkedin,
		Github:     req.Github,
		College:    req.College,
		Joined:     req.Joined,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, updated.Public())
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	if !auth.CheckPassword(req.OldPassword, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Old password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := h.store.SetPassword(c.Request.Context(), user.ID.Hex(), hash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
