package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rentwheels/car-rental-backend/internal/auth"
	carHttp "github.com/rentwheels/car-rental-backend/internal/car/http"
	"github.com/rentwheels/car-rental-backend/internal/pkg/response"
	"github.com/rentwheels/car-rental-backend/internal/user"
)

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// Register handles POST /api/user/register.
func (h *Handler) Register(c *gin.Context) {
	var body RegisterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "fill all the fields")
		return
	}

	u, err := h.service.Register(c.Request.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, response.Body{
		"token": token,
		"user":  NewUserResponse(u),
	})
}

// Login handles POST /api/user/login.
func (h *Handler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	u, err := h.service.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, string(u.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{
		"token": token,
		"user":  NewUserResponse(u),
	})
}

// Me handles GET /api/user/data.
func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{"user": NewUserResponse(u)})
}

// ChangeRole handles POST /api/owner/change-role: the requester becomes an
// owner and can start listing cars.
func (h *Handler) ChangeRole(c *gin.Context) {
	if err := h.service.PromoteToOwner(c.Request.Context(), auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{"message": "now you can list cars"})
}

// AddFavorite handles POST /api/favorite/add.
func (h *Handler) AddFavorite(c *gin.Context) {
	var body FavoriteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, user.ErrCarIDRequired)
		return
	}

	if err := h.service.AddFavorite(c.Request.Context(), auth.GetUserID(c), body.CarID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{})
}

// RemoveFavorite handles POST /api/favorite/remove.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	var body FavoriteBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, user.ErrCarIDRequired)
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), auth.GetUserID(c), body.CarID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{})
}

// ListFavorites handles GET /api/favorite/list.
func (h *Handler) ListFavorites(c *gin.Context) {
	cars, err := h.service.ListFavorites(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]carHttp.CarResponse, len(cars))
	for i, item := range cars {
		items[i] = carHttp.NewCarResponse(item)
	}

	response.OK(c, response.Body{"favorites": items})
}
