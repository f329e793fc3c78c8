package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/temple-api/internal/application/service"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/request"
	"github.com/sangkips/temple-api/internal/presentation/http/dto/response"
)

// OfferingTypeHandler handles offering type master data requests
type OfferingTypeHandler struct {
	offeringTypeService *service.OfferingTypeService
}

// NewOfferingTypeHandler creates a new offering type handler
func NewOfferingTypeHandler(offeringTypeService *service.OfferingTypeService) *OfferingTypeHandler {
	return &OfferingTypeHandler{offeringTypeService: offeringTypeService}
}

// List returns offering types; ?active=true keeps only active ones
func (h *OfferingTypeHandler) List(c *gin.Context) {
	types, err := h.offeringTypeService.ListOfferingTypes(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offering types retrieved successfully", types)
}

// Get returns one offering type
func (h *OfferingTypeHandler) Get(c *gin.Context) {
	ot, err := h.offeringTypeService.GetOfferingType(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offering type retrieved successfully", ot)
}

// Create creates an offering type
func (h *OfferingTypeHandler) Create(c *gin.Context) {
	var req request.OfferingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ot, err := h.offeringTypeService.CreateOfferingType(c.Request.Context(), req.ToForm())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Offering type created successfully", ot)
}

// Update updates an offering type
func (h *OfferingTypeHandler) Update(c *gin.Context) {
	var req request.OfferingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ot, err := h.offeringTypeService.UpdateOfferingType(c.Request.Context(), c.Param("id"), req.ToForm())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offering type updated successfully", ot)
}

// Delete deletes an offering type
func (h *OfferingTypeHandler) Delete(c *gin.Context) {
	if err := h.offeringTypeService.DeleteOfferingType(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Offering type deleted successfully", nil)
}
