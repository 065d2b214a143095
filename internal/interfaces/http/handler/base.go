package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/logger"
	"github.com/iletigo/mutabakat/internal/interfaces/http/dto"
	"github.com/iletigo/mutabakat/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error sends {"error": message} with the given status
func (h *BaseHandler) Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context) {
	h.Error(c, http.StatusUnauthorized, shared.ErrUnauthorized.Message)
}

// HandleError converts an error into a response. Domain errors keep their
// message; anything else is logged and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Message)
		return
	}

	if middleware.IsBodyTooLarge(err) {
		h.Error(c, http.StatusRequestEntityTooLarge, middleware.ErrBodyTooLarge)
		return
	}

	h.requestLogger(c).Error("Request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("user_id", middleware.GetJWTUserID(c)),
		zap.Error(err),
	)
	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.InternalErrorMessage)
}

// actor returns the authenticated caller or answers 401
func (h *BaseHandler) actor(c *gin.Context) (identity.Actor, bool) {
	a := middleware.GetActor(c)
	if a.IsZero() {
		h.Unauthorized(c)
		return identity.Actor{}, false
	}
	return a, true
}

// uuidParam parses a path parameter, answering 400 for a malformed id
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) requestLogger(c *gin.Context) *zap.Logger {
	return logger.GetGinLogger(c)
}
