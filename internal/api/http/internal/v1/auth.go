package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/refresh-token", h.authRefreshToken)
		auth.POST("/login", h.notImplemented("auth"))
		auth.POST("/register", h.notImplemented("auth"))
		auth.POST("/logout", h.notImplemented("auth"))
		auth.POST("/forgot-password", h.notImplemented("auth"))
		auth.POST("/reset-password", h.notImplemented("auth"))
	}
}

// @Summary Refresh tokens
// @Tags Auth
// @Description Exchanges a refresh token for a new token pair. The presented token stops working.
// @ModuleID authRefreshToken
// @Accept  json
// @Produce  json
// @Param input body refreshTokenRequest true "refresh token"
// @Success 200 {object} Response{data=authResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/refresh-token [post]
func (h *Handler) authRefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	res, err := h.services.Vendors.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, "tokens refreshed successfully", newAuthResponse(res))
}
