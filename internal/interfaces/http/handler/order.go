package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/orderimport"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// OrderImporter is the part of the import service the handler uses
type OrderImporter interface {
	ImportJSON(ctx context.Context, caller orderimport.Caller, raw []byte) (*order.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
}

// OrderHandler serves order import and retrieval
type OrderHandler struct {
	BaseHandler
	service OrderImporter
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(service OrderImporter) *OrderHandler {
	return &OrderHandler{service: service}
}

// ImportOrder handles POST /orders/import.
// The body is the import document; the response is the reloaded order.
func (h *OrderHandler) ImportOrder(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size")
			return
		}
		h.BadRequest(c, dto.ErrCodeBadRequest, "Failed to read request body")
		return
	}
	if len(raw) == 0 || !json.Valid(raw) {
		h.BadRequest(c, dto.ErrCodeInvalidJSON, "Request body is not valid JSON")
		return
	}

	imported, err := h.service.ImportJSON(c.Request.Context(), caller, raw)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, dto.ToOrderResponse(imported))
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, dto.ErrCodeBadRequest, "Order id must be a UUID")
		return
	}

	o, err := h.service.GetOrder(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ToOrderResponse(o))
}
