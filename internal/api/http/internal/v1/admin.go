package v1

import (
	"net/http"

	"github.com/clinickart/backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.authenticate, h.authorize(domain.KindAdmin))
	{
		admin.GET("/stats", h.adminStats)
		admin.GET("/dashboard", h.notImplemented("admin"))
		admin.GET("/users", h.notImplemented("admin"))
		admin.GET("/vendors", h.notImplemented("admin"))
		admin.GET("/orders", h.notImplemented("admin"))
	}
}

type adminStatsResponse struct {
	Vendors       int64                             `json:"vendors"`
	VendorsByStep map[domain.RegistrationStep]int64 `json:"vendors_by_step"`
	Pending       domain.PendingStats               `json:"pending"`
} // @name AdminStatsResponse

// @Summary Registration statistics
// @Security BearerAuth
// @Tags Admin
// @Description Vendor counts per registration step and pending registrations
// @ModuleID adminStats
// @Produce  json
// @Success 200 {object} Response{data=adminStatsResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/stats [get]
func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.services.Vendors.Stats(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "stats retrieved", adminStatsResponse{
		Vendors:       stats.Vendors,
		VendorsByStep: stats.VendorsByStep,
		Pending:       stats.Pending,
	})
}
