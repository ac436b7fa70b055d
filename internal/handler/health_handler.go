package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	database Pinger
}

// NewHealthHandler accepts a nil database when the user store is disabled.
func NewHealthHandler(database Pinger) *HealthHandler {
	return &HealthHandler{database: database}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	if h.database == nil {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		return
	}

	if err := h.database.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
