package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"marroking/internal/logger"
	"marroking/internal/services/meli"
	"marroking/internal/store"
	"marroking/internal/sync"
)

type MeliHandler struct {
	oauth       *meli.OAuthService
	credentials *store.CredentialStore
	engine      *sync.Engine
	logger      *logger.Logger
}

func NewMeliHandler(oauth *meli.OAuthService, credentials *store.CredentialStore, engine *sync.Engine, logger *logger.Logger) *MeliHandler {
	return &MeliHandler{
		oauth:       oauth,
		credentials: credentials,
		engine:      engine,
		logger:      logger,
	}
}

// Callback is the OAuth redirect target: exchanges the code and stores the
// session, replacing whatever account was linked before.
func (h *MeliHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "detail": "missing code parameter"})
		return
	}

	tokenResp, err := h.oauth.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		h.logger.Error("Failed to exchange authorization code: %v", err)
		if errors.Is(err, meli.ErrAuthExchange) {
			c.JSON(http.StatusBadGateway, gin.H{"status": "error", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "detail": "token exchange failed"})
		return
	}

	userID := fmt.Sprintf("%d", tokenResp.UserID)
	if err := h.credentials.SaveLink(tokenResp.AccessToken, userID); err != nil {
		h.logger.Error("Failed to store credentials: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "detail": "failed to store credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "mercadolibre account linked",
	})
}

// Sync triggers one reconciliation run and reports its counters.
func (h *MeliHandler) Sync(c *gin.Context) {
	report, err := h.engine.Run(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, sync.ErrNotLinked):
			c.JSON(http.StatusBadRequest, gin.H{"error": "no mercadolibre account linked"})
		case errors.Is(err, sync.ErrInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "sync already in progress"})
		case errors.Is(err, sync.ErrUpstream):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Sync failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                "sincronizado",
		"items_en_meli":         report.Items,
		"variaciones_guardadas": report.Saved,
	})
}
