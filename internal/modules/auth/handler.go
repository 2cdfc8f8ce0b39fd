package auth

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

// RegisterRoutes wires the public auth endpoints. User profile reads are
// registered separately so they can sit behind OptionalAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	{
		a.POST("/register", h.Register)
		a.POST("/login", h.Login)
	}
}

// RegisterUserRoutes wires user profile reads (OptionalAuth group expected).
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
	}
}

// RegisterMeRoutes wires endpoints that require authentication.
func (h *Handler) RegisterMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.Me)
}

// Register creates a new user account
//
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} map[string]any
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidUsername), errors.Is(err, ErrReservedUsername):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUsernameTaken):
			response.Error(c, http.StatusConflict, "ALREADY_EXISTS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to register user")
		}
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login exchanges email+password for a JWT
//
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to log in")
		return
	}

	response.Success(c, http.StatusOK, TokenResponse{AuthToken: token})
}

func (h *Handler) Me(c *gin.Context) {
	viewer := middleware.Viewer(c)
	user, err := h.service.Me(c.Request.Context(), viewer.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "invalid user id")
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), middleware.Viewer(c), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "user not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load user")
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	users, total, err := h.service.ListUsers(c.Request.Context(), middleware.Viewer(c), perPage, (page-1)*perPage)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list users")
		return
	}

	response.Success(c, http.StatusOK, UserListResponse{Users: users, Total: total, Page: page})
}
