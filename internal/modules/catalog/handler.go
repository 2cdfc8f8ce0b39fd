package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the public read endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	ingredients := rg.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}

	tags := rg.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}
}

// RegisterAdminRoutes wires catalog mutations (AdminOnly group expected).
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	ingredients := rg.Group("/ingredients")
	{
		ingredients.POST("", h.CreateIngredient)
		ingredients.PATCH("/:id", h.UpdateIngredient)
		ingredients.DELETE("/:id", h.DeleteIngredient)
	}

	tags := rg.Group("/tags")
	{
		tags.POST("", h.CreateTag)
		tags.PATCH("/:id", h.UpdateTag)
		tags.DELETE("/:id", h.DeleteTag)
	}
}

// ListIngredients returns the catalog, optionally filtered by name prefix
//
// @Summary List ingredients
// @Tags Catalog
// @Produce json
// @Param name query string false "Case-insensitive name prefix"
// @Success 200 {array} domain.Ingredient
// @Router /ingredients [get]
func (h *Handler) ListIngredients(c *gin.Context) {
	items, err := h.service.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list ingredients")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid ingredient id")
		return
	}

	ing, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrIngredientNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "ingredient not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load ingredient")
		return
	}
	response.Success(c, http.StatusOK, ing)
}

func (h *Handler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ing, err := h.service.CreateIngredient(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create ingredient")
		return
	}
	response.Success(c, http.StatusCreated, ing)
}

func (h *Handler) UpdateIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid ingredient id")
		return
	}

	var req UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	ing, err := h.service.UpdateIngredient(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrIngredientNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "ingredient not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update ingredient")
		return
	}
	response.Success(c, http.StatusOK, ing)
}

func (h *Handler) DeleteIngredient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid ingredient id")
		return
	}

	if err := h.service.DeleteIngredient(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrIngredientNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "ingredient not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete ingredient")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTags returns every tag
//
// @Summary List tags
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.Tag
// @Router /tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list tags")
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (h *Handler) GetTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid tag id")
		return
	}

	tag, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTagNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "tag not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load tag")
		return
	}
	response.Success(c, http.StatusOK, tag)
}

func (h *Handler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid tag payload", errs)
		return
	}

	tag, err := h.service.CreateTag(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrTagConflict) {
			response.Error(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create tag")
		return
	}
	response.Success(c, http.StatusCreated, tag)
}

func (h *Handler) UpdateTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid tag id")
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid tag payload", errs)
		return
	}

	tag, err := h.service.UpdateTag(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTagNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "tag not found")
		case errors.Is(err, ErrTagConflict):
			response.Error(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to update tag")
		}
		return
	}
	response.Success(c, http.StatusOK, tag)
}

func (h *Handler) DeleteTag(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid tag id")
		return
	}

	if err := h.service.DeleteTag(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrTagNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "tag not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to delete tag")
		return
	}
	c.Status(http.StatusNoContent)
}
