package handler

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	labelingapp "github.com/showroom/backend/internal/application/labeling"
	"github.com/showroom/backend/internal/interfaces/http/dto"
	"github.com/showroom/backend/internal/interfaces/http/middleware"
)

// Sheet response headers
const (
	HeaderLabelCount = "X-Label-Count"
	HeaderLabelGrid  = "X-Label-Grid"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// LabelHandler serves the QR label endpoints
type LabelHandler struct {
	BaseHandler
	labelService *labelingapp.LabelService
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelService *labelingapp.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// PreviewLabel godoc
//
//	@ID				previewLabel
//
//	@Summary		Preview a label
//	@Description	Render a label as PNG without storing it. Give a product_id or the explicit fields.
//	@Tags			labels
//	@Accept			json
//	@Produce		png
//	@Param			request	body		labelingapp.PreviewLabelRequest	true	"Label content"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		422		{object}	dto.ErrorResponse
//	@Router			/labels/preview [post]
func (h *LabelHandler) PreviewLabel(c *gin.Context) {
	var req labelingapp.PreviewLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	label, err := h.labelService.PreviewLabel(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	name := "preview"
	if label.SKU != "" {
		name = unsafeFilenameChars.ReplaceAllString(label.SKU, "_")
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", `inline; filename="qr-`+name+`.png"`)
	c.Data(http.StatusOK, "image/png", label.PNG)
}

// GenerateLabel godoc
//
//	@ID				generateLabel
//
//	@Summary		Generate a product label
//	@Description	Render the label of a product, upload it and record it in the history
//	@Tags			labels
//	@Accept			json
//	@Produce		json
//	@Param			request	body		labelingapp.GenerateLabelRequest	true	"Product"
//	@Success		201		{object}	APIResponse[labelingapp.LabelResponse]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		404		{object}	dto.ErrorResponse
//	@Failure		502		{object}	dto.ErrorResponse
//	@Router			/labels/generate [post]
func (h *LabelHandler) GenerateLabel(c *gin.Context) {
	var req labelingapp.GenerateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	label, err := h.labelService.GenerateLabel(c.Request.Context(), req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, label)
}

// GenerateLabels godoc
//
//	@ID				generateLabels
//
//	@Summary		Generate labels for several products
//	@Description	Generate and store labels for a small batch. Items fail independently and are reported in request order.
//	@Tags			labels
//	@Accept			json
//	@Produce		json
//	@Param			request	body		labelingapp.GenerateLabelsRequest	true	"Products"
//	@Success		200		{object}	APIResponse[labelingapp.BatchGenerateResponse]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/labels/generate-multiple [post]
func (h *LabelHandler) GenerateLabels(c *gin.Context) {
	var req labelingapp.GenerateLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.labelService.GenerateLabels(c.Request.Context(), req.ProductIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PrintSheet godoc
//
//	@ID				printLabelSheet
//
//	@Summary		Build a printable label sheet
//	@Description	Lay out the labels of the given products on one page, as HTML or PDF.
//	@Description	Products whose label cannot be rendered are skipped and listed in the X-Label-Failures header.
//	@Tags			labels
//	@Accept			json
//	@Produce		html
//	@Produce		application/pdf
//	@Param			request	body		labelingapp.PrintSheetRequest	true	"Products and format"
//	@Success		200		{file}		binary
//	@Header			200		{string}	X-Label-Failures	"Comma separated product IDs left off the sheet"
//	@Header			200		{integer}	X-Label-Count		"Labels on the sheet"
//	@Header			200		{string}	X-Label-Grid		"Grid as columnsxrows"
//	@Failure		400		{object}	dto.ErrorResponse
//	@Failure		422		{object}	dto.ErrorResponse
//	@Failure		503		{object}	dto.ErrorResponse
//	@Router			/labels/print-sheet [post]
func (h *LabelHandler) PrintSheet(c *gin.Context) {
	var req labelingapp.PrintSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	doc, err := h.labelService.PrintSheet(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if len(doc.Failed) > 0 {
		failed := make([]string, len(doc.Failed))
		for i, item := range doc.Failed {
			failed[i] = item.ProductID.String()
		}
		c.Header(middleware.HeaderLabelFailures, strings.Join(failed, ","))
	}
	c.Header(HeaderLabelCount, strconv.Itoa(doc.Labels))
	c.Header(HeaderLabelGrid, strconv.Itoa(doc.Grid.Columns)+"x"+strconv.Itoa(doc.Grid.Rows))
	c.Header("Content-Disposition", `inline; filename="`+doc.Filename+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// ListHistory godoc
//
//	@ID				listLabelHistory
//
//	@Summary		List generated labels
//	@Description	Page through the label history, newest first. search matches the SKU case-insensitively.
//	@Tags			labels
//	@Produce		json
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Items per page"	default(10)	maximum(100)
//	@Param			search		query		string	false	"SKU substring"
//	@Param			product_id	query		string	false	"Product ID"		format(uuid)
//	@Success		200			{object}	APIResponse[[]labelingapp.HistoryResponse]
//	@Failure		400			{object}	dto.ErrorResponse
//	@Router			/labels/history [get]
func (h *LabelHandler) ListHistory(c *gin.Context) {
	var req labelingapp.ListHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.labelService.ListHistory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetHistory godoc
//
//	@ID				getLabelHistory
//
//	@Summary		Get a generated label
//	@Tags			labels
//	@Produce		json
//	@Param			id	path		string	true	"History entry ID"	format(uuid)
//	@Success		200	{object}	APIResponse[labelingapp.HistoryResponse]
//	@Failure		400	{object}	dto.ErrorResponse
//	@Failure		404	{object}	dto.ErrorResponse
//	@Router			/labels/history/{id} [get]
func (h *LabelHandler) GetHistory(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	record, err := h.labelService.GetHistory(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// DeleteLabels godoc
//
//	@ID				deleteLabels
//
//	@Summary		Delete the labels of several products
//	@Description	Remove stored label images (best effort) and their history entries
//	@Tags			labels
//	@Accept			json
//	@Produce		json
//	@Param			request	body		labelingapp.DeleteLabelsRequest	true	"Products"
//	@Success		200		{object}	APIResponse[labelingapp.DeleteLabelsResponse]
//	@Failure		400		{object}	dto.ErrorResponse
//	@Router			/labels/delete-multiple [post]
func (h *LabelHandler) DeleteLabels(c *gin.Context) {
	var req labelingapp.DeleteLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.labelService.DeleteLabels(c.Request.Context(), req.ProductIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
