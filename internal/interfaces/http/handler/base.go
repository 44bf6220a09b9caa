package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/orderimport"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, code, message string) {
	h.Error(c, http.StatusBadRequest, code, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts import, domain and unexpected errors to responses.
// Import errors are 422 with an ERR_IMPORT_<KIND> code, even when the cause
// is a missing record.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var importErr *orderimport.Error
	if errors.As(err, &importErr) {
		code := dto.ImportErrorCode(importErr.Kind)
		resp := dto.NewErrorResponseWithRequestID(code, err.Error(), middleware.GetRequestID(c))
		resp.Error.Criteria = lookupCriteria(err)
		c.JSON(dto.GetHTTPStatus(code), resp)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			h.NotFound(c, domainErr.Message)
		case errors.Is(err, shared.ErrInvalidInput):
			h.BadRequest(c, dto.ErrCodeBadRequest, domainErr.Message)
		default:
			h.Error(c, http.StatusUnprocessableEntity, "ERR_"+domainErr.Code, domainErr.Message)
		}
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled request error", zap.Error(err))
	_ = c.Error(err)
	h.InternalError(c, "An unexpected error occurred")
}

// lookupCriteria returns the search criteria of the first import error in the
// chain that has one
func lookupCriteria(err error) string {
	for err != nil {
		var importErr *orderimport.Error
		if !errors.As(err, &importErr) {
			return ""
		}
		if importErr.Criteria != "" {
			return importErr.Criteria
		}
		err = importErr.Err
	}
	return ""
}
