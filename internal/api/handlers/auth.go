package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marroking/internal/api/middleware"
	"marroking/internal/auth"
	"marroking/internal/logger"
	"marroking/internal/models"
	"marroking/internal/store"
)

type AuthHandler struct {
	users     *store.UserStore
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthHandler(users *store.UserStore, jwtSecret string, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:     users,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Login verifies a username/password pair and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("Failed to look up user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	if err := auth.CheckPassword(user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.Username, user.Role)
	if err != nil {
		h.logger.Error("Failed to sign token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// CreateUser registers an account. The very first account may be created
// without a token so a fresh deployment can bootstrap itself; after that a
// valid bearer token is required.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	count, err := h.users.Count()
	if err != nil {
		h.logger.Error("Failed to count users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	if count > 0 {
		if _, err := middleware.ClaimsFromRequest(c, h.jwtSecret); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}
	}

	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = "user"
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		h.logger.Error("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := &models.User{
		Username: input.Username,
		Password: hashed,
		Role:     input.Role,
	}
	if err := h.users.Create(user); err != nil {
		if errors.Is(err, store.ErrDuplicateUser) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		h.logger.Error("Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "user created"})
}
