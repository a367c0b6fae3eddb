package ban

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"banwatch/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the ban API and the form-backed console
// endpoints. The group is expected to carry the auth middleware.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/", h.Dashboard)
	g.GET("/api/bans", h.ListBans)
	g.POST("/api/bans", h.AddBan)
	g.DELETE("/api/bans/:id", h.RemoveBan)
	g.GET("/api/bans/check/:player_id", h.CheckBan)

	g.POST("/add_ban", h.AddBan)
	g.POST("/remove_ban/:id", h.RemoveBan)
}

func (h *Handler) Dashboard(c *gin.Context) {
	total, active, err := h.service.Summary(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"total_bans":  total,
		"active_bans": active,
	})
}

func (h *Handler) ListBans(c *gin.Context) {
	bans, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to list bans")
		return
	}
	views := Views(bans)
	response.Success(c, http.StatusOK, gin.H{
		"bans":  views,
		"total": len(views),
	})
}

func (h *Handler) AddBan(c *gin.Context) {
	var req CreateBanRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	actor := Actor{
		Username: c.GetString("username"),
		StaffID:  c.GetInt64("staff_id"),
	}
	b, err := h.service.Create(c.Request.Context(), CreateBanInput{
		PlayerID:       req.PlayerID,
		PlayerName:     req.PlayerName,
		Reason:         req.Reason,
		BanType:        req.BanType,
		ExpiresInHours: string(req.ExpiresInHours),
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "Player ID is required")
		case errors.Is(err, ErrInvalidExpiration):
			response.Error(c, http.StatusBadRequest, "Invalid expiration time")
		case errors.Is(err, ErrDuplicateBan):
			response.Error(c, http.StatusConflict, "Player is already banned")
		default:
			c.Error(err)
			response.Error(c, http.StatusInternalServerError, "Failed to create ban")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Player %s has been banned", b.PlayerID),
		"ban_id":  b.ID,
		"ban":     View(b),
	})
}

func (h *Handler) RemoveBan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid ban ID")
		return
	}

	b, err := h.service.Revoke(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Ban not found")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to remove ban")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Ban for player %s has been removed", b.PlayerID),
	})
}

func (h *Handler) CheckBan(c *gin.Context) {
	playerID := c.Param("player_id")

	b, err := h.service.Check(c.Request.Context(), playerID)
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to check ban")
		return
	}

	body := gin.H{
		"player_id": playerID,
		"is_banned": b != nil,
	}
	if b != nil {
		body["ban_info"] = View(b)
	}
	response.Success(c, http.StatusOK, body)
}
