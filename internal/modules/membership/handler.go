package membership

import (
	"context"
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

// RegisterRoutes wires the membership toggles (RequireAuth group expected).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recipes/:id/favorite", h.AddFavorite)
	rg.DELETE("/recipes/:id/favorite", h.RemoveFavorite)
	rg.POST("/recipes/:id/shopping_cart", h.AddToCart)
	rg.DELETE("/recipes/:id/shopping_cart", h.RemoveFromCart)
}

// AddFavorite marks a recipe as the caller's favorite
//
// @Summary Add recipe to favorites
// @Tags Membership
// @Produce json
// @Security BearerAuth
// @Param id path int64 true "Recipe id"
// @Success 201 {object} map[string]any
// @Failure 409 {object} map[string]any "Already favorited"
// @Router /recipes/{id}/favorite [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	h.mutate(c, h.service.AddFavorite, http.StatusCreated, "recipe added to favorites")
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.mutate(c, h.service.RemoveFavorite, http.StatusOK, "recipe removed from favorites")
}

func (h *Handler) AddToCart(c *gin.Context) {
	h.mutate(c, h.service.AddToCart, http.StatusCreated, "recipe added to shopping cart")
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	h.mutate(c, h.service.RemoveFromCart, http.StatusOK, "recipe removed from shopping cart")
}

func (h *Handler) mutate(c *gin.Context, op func(ctx context.Context, userID, recipeID int64) error, okStatus int, okMessage string) {
	recipeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	userID := c.GetInt64("user_id")
	if err := op(c.Request.Context(), userID, recipeID); err != nil {
		switch {
		case errors.Is(err, ErrRecipeNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "recipe not found")
		case errors.Is(err, ErrAlreadyExists):
			response.Error(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
		case errors.Is(err, ErrMembershipGone):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
		}
		return
	}

	response.Success(c, okStatus, gin.H{"detail": okMessage})
}
