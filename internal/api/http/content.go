package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/webdesk/internal/api/middleware"
	"github.com/GriffinCanCode/webdesk/internal/apps/portfolio"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/storage"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
)

// ContentRequest is the body of a content edit
type ContentRequest struct {
	Value string `json:"value"`
}

// editable lists the keys the edit endpoint accepts, with their validators
var editable = map[string]func(string) error{
	storage.KeyPortfolio: func(v string) error {
		_, err := portfolio.Parse(v)
		return err
	},
	storage.KeyBrightness: func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			return fmt.Errorf("brightness must be an integer between 0 and 100")
		}
		return nil
	},
}

// GetContent returns a stored value
func (h *Handlers) GetContent(c *gin.Context) {
	key := c.Param("key")
	if err := utils.ValidateID(key, "key", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	value, ok, err := h.content.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("key not found: %s", key)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// PutContent stores a value and broadcasts the change to every desktop.
// Requires the admin password in the X-Admin-Password header.
func (h *Handlers) PutContent(c *gin.Context) {
	if len(h.adminHash) == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "content editing is disabled"})
		return
	}
	password := c.GetHeader(middleware.HeaderAdminPassword)
	if password == "" || bcrypt.CompareHashAndPassword(h.adminHash, []byte(password)) != nil {
		h.logger.Warn("Rejected content edit",
			zap.String("key", c.Param("key")),
			zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin password"})
		return
	}

	key := c.Param("key")
	validate, ok := editable[key]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("key is not editable: %s", key)})
		return
	}

	var req ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateContent(req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate(req.Value); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.content.Set(c.Request.Context(), key, req.Value); err != nil {
		respondError(c, err)
		return
	}
	h.logger.Info("Content updated", zap.String("key", key), zap.Int("bytes", len(req.Value)))
	c.JSON(http.StatusOK, gin.H{"success": true, "key": key})
}
