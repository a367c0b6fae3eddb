package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	jwtsvc "banwatch/internal/pkg/jwt"
	"banwatch/internal/pkg/response"
)

type Handler struct {
	service *Service
	jwt     *jwtsvc.Service
}

func NewHandler(service *Service, jwt *jwtsvc.Service) *Handler {
	return &Handler{service: service, jwt: jwt}
}

func (h *Handler) RegisterRoutes(v *gin.RouterGroup) {
	v.POST("/api/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	ident, err := h.service.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := h.jwt.GenerateToken(ident.Username, ident.IsAdmin, ident.Backing, ident.StaffID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Login failed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"username": ident.Username,
			"is_admin": ident.IsAdmin,
			"backing":  ident.Backing,
		},
	})
}
