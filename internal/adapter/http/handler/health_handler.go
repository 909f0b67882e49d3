package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"accountsapi/internal/core/model/response"
	"accountsapi/internal/core/port"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	pinger port.Pinger
}

func NewHealthHandler(pinger port.Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Check pings the database pool, opening it if no request has yet.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, response.HealthResponse{
			Status: "unavailable",
			Error:  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
