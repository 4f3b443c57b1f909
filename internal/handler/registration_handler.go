package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sis-reg-api/internal/models"
	"github.com/noah-isme/sis-reg-api/internal/service"
	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
	"github.com/noah-isme/sis-reg-api/pkg/response"
)

// RegistrationHandler exposes the registration session endpoints.
type RegistrationHandler struct {
	registration *service.RegistrationService
	audit        *service.AuditService
}

// NewRegistrationHandler constructs RegistrationHandler.
func NewRegistrationHandler(registration *service.RegistrationService, audit *service.AuditService) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, audit: audit}
}

// Describe godoc
// @Summary Current registration session
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration/session [get]
func (h *RegistrationHandler) Describe(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.registration.Describe(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Refresh godoc
// @Summary Re-fetch the catalog snapshot
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration/session/refresh [post]
func (h *RegistrationHandler) Refresh(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.registration.Refresh(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SelectSubject godoc
// @Summary Attach a delegated registration subject
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body service.SelectSubjectRequest true "Subject payload"
// @Success 200 {object} response.Envelope
// @Router /registration/session/subject [post]
func (h *RegistrationHandler) SelectSubject(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.SelectSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.registration.SelectSubject(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// ClearSubject godoc
// @Summary Detach the delegated registration subject
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration/session/subject [delete]
func (h *RegistrationHandler) ClearSubject(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.registration.ClearSubject(claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// AddToCart godoc
// @Summary Queue a course for registration
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body service.AddToCartRequest true "Cart payload"
// @Success 200 {object} response.Envelope
// @Router /registration/session/cart/items [post]
func (h *RegistrationHandler) AddToCart(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.registration.AddToCart(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// RemoveFromCart godoc
// @Summary Remove a course from the cart
// @Tags Registration
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /registration/session/cart/items/{courseId} [delete]
func (h *RegistrationHandler) RemoveFromCart(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view := h.registration.RemoveFromCart(claims, c.Param("courseId"))
	response.JSON(c, http.StatusOK, view, nil)
}

// Commit godoc
// @Summary Submit the cart for registration
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /registration/session/commit [post]
func (h *RegistrationHandler) Commit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.registration.Commit(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Drop godoc
// @Summary Drop an enrollment
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body service.DropRequest true "Drop payload"
// @Success 200 {object} response.Envelope
// @Router /registration/session/drop [post]
func (h *RegistrationHandler) Drop(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.registration.Drop(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Actions godoc
// @Summary List audited registration actions
// @Tags Registration
// @Produce json
// @Param actorId query string false "Filter by actor"
// @Param subjectId query string false "Filter by subject"
// @Param action query string false "Filter by action type"
// @Param outcome query string false "Filter by outcome"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /registration/actions [get]
func (h *RegistrationHandler) Actions(c *gin.Context) {
	var filter models.RegistrationActionFilter
	filter.ActorID = c.Query("actorId")
	filter.SubjectID = c.Query("subjectId")
	filter.Action = models.RegistrationActionType(strings.ToUpper(c.Query("action")))
	filter.Outcome = models.RegistrationOutcome(strings.ToUpper(c.Query("outcome")))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	actions, pagination, err := h.audit.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, actions, pagination)
}
