package subscription

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the follow graph endpoints (RequireAuth group
// expected).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/subscriptions", h.List)
	rg.POST("/users/:id/subscribe", h.Subscribe)
	rg.DELETE("/users/:id/subscribe", h.Unsubscribe)
}

// Subscribe follows an author
//
// @Summary Subscribe to an author
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Param id path int64 true "Author id"
// @Success 201 {object} map[string]any
// @Failure 409 {object} map[string]any "Already subscribed"
// @Router /users/{id}/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid author id")
		return
	}

	userID := c.GetInt64("user_id")
	if err := h.service.Subscribe(c.Request.Context(), userID, authorID); err != nil {
		switch {
		case errors.Is(err, ErrSelfSubscribe):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrAlreadySubscribed):
			response.Error(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
		case errors.Is(err, ErrAuthorNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"detail": "subscription created"})
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid author id")
		return
	}

	userID := c.GetInt64("user_id")
	if err := h.service.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		switch {
		case errors.Is(err, ErrNotSubscribed), errors.Is(err, ErrAuthorNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"detail": "subscription removed"})
}

// List returns the caller's followed authors with recipe previews
//
// @Summary List subscriptions
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Param recipes_limit query int false "Cap on nested recipes per author"
// @Success 200 {array} SubscribedUserResponse
// @Router /users/subscriptions [get]
func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	subs, err := h.service.List(c.Request.Context(), userID, c.Query("recipes_limit"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list subscriptions")
		return
	}

	response.Success(c, http.StatusOK, subs)
}
