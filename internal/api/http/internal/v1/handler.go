package v1

import (
	"github.com/clinickart/backend/internal/config"
	"github.com/clinickart/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title ClinicKart API
// @version 1.0
// @description Vendor registration and authentication for the ClinicKart marketplace.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const apiVersion = "1.0.0"

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(services *service.Services, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initHealthRoutes(v1)
	h.initVendorsRoutes(v1)
	h.initAuthRoutes(v1)
	h.initAdminRoutes(v1)
	h.initStubRoutes(v1)
}
