package shoppinglist

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the download endpoint (RequireAuth group expected).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recipes/download_shopping_cart", h.Download)
}

// Download streams the aggregated shopping list as a text attachment
//
// @Summary Download shopping list
// @Tags ShoppingList
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "shopping_cart.txt"
// @Router /recipes/download_shopping_cart [get]
func (h *Handler) Download(c *gin.Context) {
	userID := c.GetInt64("user_id")

	report, err := h.service.Generate(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to build shopping list")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", report)
}
