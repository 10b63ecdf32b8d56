package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	labelingapp "github.com/showroom/backend/internal/application/labeling"
)

// MagentoHandler looks products up on the Magento storefront
type MagentoHandler struct {
	BaseHandler
	labelService *labelingapp.LabelService
}

// NewMagentoHandler creates a new MagentoHandler
func NewMagentoHandler(labelService *labelingapp.LabelService) *MagentoHandler {
	return &MagentoHandler{labelService: labelService}
}

// GetProduct godoc
//
//	@ID				getMagentoProduct
//
//	@Summary		Look up a storefront product
//	@Description	Fetch a product from Magento by SKU, with its brand label and the URL its QR code would encode
//	@Tags			magento
//	@Produce		json
//	@Param			sku	path		string	true	"Product SKU"
//	@Success		200	{object}	APIResponse[labelingapp.RemoteProductResponse]
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Failure		502	{object}	dto.ErrorResponse
//	@Failure		503	{object}	dto.ErrorResponse
//	@Router			/magento/products/{sku} [get]
func (h *MagentoHandler) GetProduct(c *gin.Context) {
	sku := strings.TrimSpace(c.Param("sku"))
	if sku == "" {
		h.BadRequest(c, "sku is required")
		return
	}

	product, err := h.labelService.LookupRemoteProduct(c.Request.Context(), sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}
