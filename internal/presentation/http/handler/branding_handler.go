package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
)

// BrandingHandler exposes the effective temple branding
type BrandingHandler struct {
	brandingService *service.BrandingService
}

// NewBrandingHandler creates a new branding handler
func NewBrandingHandler(brandingService *service.BrandingService) *BrandingHandler {
	return &BrandingHandler{brandingService: brandingService}
}

// GetBranding returns the branding documents are printed with and its source
func (h *BrandingHandler) GetBranding(c *gin.Context) {
	response.OK(c, "Branding retrieved successfully", h.brandingService.Current(c.Request.Context()))
}
