package v1

import (
	"net/http"
	"time"

	"github.com/clinickart/backend/internal/domain"
	"github.com/clinickart/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) initHealthRoutes(api *gin.RouterGroup) {
	api.GET("/health", h.health)
}

type healthResponse struct {
	Version          string              `json:"version"`
	Timestamp        time.Time           `json:"timestamp"`
	Pending          domain.PendingStats `json:"pending"`
	PendingUpdatedAt *time.Time          `json:"pending_updated_at,omitempty"`
} // @name HealthResponse

// @Summary Health check
// @Description Pending counts are those of the last sweep.
// @Tags Health
// @ModuleID health
// @Produce  json
// @Success 200 {object} Response{data=healthResponse}
// @Failure 503 {object} ErrorResponse
// @Router /health [get]
func (h *Handler) health(c *gin.Context) {
	health, err := h.services.Vendors.Health(c.Request.Context())
	if err != nil {
		logger.Warn("health check failed", zap.Error(err))
		errorResponse(c, http.StatusServiceUnavailable, UnknownErrorCode, "pending store unavailable")
		return
	}

	successResponse(c, http.StatusOK, "api is healthy", healthResponse{
		Version:          apiVersion,
		Timestamp:        time.Now().UTC(),
		Pending:          health.Pending,
		PendingUpdatedAt: health.PendingAt,
	})
}
