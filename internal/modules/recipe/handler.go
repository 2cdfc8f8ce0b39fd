package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the read endpoints (OptionalAuth group expected, so
// anonymous listing works but membership annotations light up when a token
// is present).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.GET("", h.List)
		recipes.GET("/:id", h.Get)
	}
}

// RegisterAuthRoutes wires the mutating endpoints (RequireAuth group).
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	recipes := rg.Group("/recipes")
	{
		recipes.POST("", h.Create)
		recipes.PATCH("/:id", h.Update)
		recipes.DELETE("/:id", h.Delete)
	}
}

// List returns recipes, newest first
//
// @Summary List recipes
// @Tags Recipe
// @Produce json
// @Param tags query []string false "Tag slugs (OR semantics)"
// @Param author query int false "Author id"
// @Param is_favorited query bool false "Only the viewer's favorites"
// @Param is_in_shopping_cart query bool false "Only the viewer's cart"
// @Success 200 {object} RecipeListResponse
// @Router /recipes [get]
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	q := ListQuery{
		TagSlugs:      c.QueryArray("tags"),
		OnlyFavorited: parseBoolParam(c.Query("is_favorited")),
		OnlyInCart:    parseBoolParam(c.Query("is_in_shopping_cart")),
		Limit:         perPage,
		Offset:        (page - 1) * perPage,
	}
	if author := c.Query("author"); author != "" {
		id, err := strconv.ParseInt(author, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid author id")
			return
		}
		q.AuthorID = id
	}

	recipes, total, err := h.service.List(c.Request.Context(), middleware.Viewer(c), q)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list recipes")
		return
	}

	response.Success(c, http.StatusOK, RecipeListResponse{Recipes: recipes, Total: total, Page: page})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	rec, err := h.service.Get(c.Request.Context(), middleware.Viewer(c), id)
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "recipe not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load recipe")
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// Create makes a new recipe owned by the caller
//
// @Summary Create recipe
// @Tags Recipe
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe payload"
// @Success 201 {object} RecipeResponse
// @Router /recipes [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rec, err := h.service.Create(c.Request.Context(), middleware.Viewer(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	rec, err := h.service.Update(c.Request.Context(), middleware.Viewer(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid recipe id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.Viewer(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyIngredients),
		errors.Is(err, ErrDuplicateIngredient),
		errors.Is(err, ErrAmountOutOfRange),
		errors.Is(err, ErrCookingTimeOutOfRange),
		errors.Is(err, ErrTagsRequired),
		errors.Is(err, ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrDuplicateRecipe):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ErrRecipeNotFound),
		errors.Is(err, ErrIngredientNotFound),
		errors.Is(err, ErrTagNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "request failed")
	}
}

func parseBoolParam(v string) bool {
	return v == "1" || v == "true"
}
