package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"banwatch/internal/credstore"
	"banwatch/internal/pkg/response"
	"banwatch/internal/repository"
)

const recentLogCount = 20

// sourceWeb tags audit entries written from the console so they can be
// told apart from bot-driven mutations.
const sourceWeb = "Web"

type Handler struct {
	admins *credstore.Store
	staff  *repository.StaffRepository
}

func NewHandler(admins *credstore.Store, staff *repository.StaffRepository) *Handler {
	return &Handler{admins: admins, staff: staff}
}

// RegisterRoutes expects a group already gated by auth + admin middleware.
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/admin_panel", h.AdminPanel)
	g.POST("/add_json_admin", h.AddJSONAdmin)
	g.POST("/delete_json_admin/:username", h.DeleteJSONAdmin)

	// Legacy alias kept from the old console.
	g.GET("/staff", h.AdminPanel)
}

func (h *Handler) AdminPanel(c *gin.Context) {
	staff, err := h.staff.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to load admin panel")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"json_admins": h.admins.ListAdmins(),
		"staff":       staff,
		"recent_logs": h.admins.Logs(recentLogCount),
	})
}

type addAdminRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *Handler) AddJSONAdmin(c *gin.Context) {
	var req addAdminRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	author := c.GetString("username")
	if !h.admins.AddAdmin(req.Username, req.Password, author, sourceWeb) {
		response.Error(c, http.StatusConflict, fmt.Sprintf("Admin %s already exists", req.Username))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Admin %s added", req.Username),
	})
}

func (h *Handler) DeleteJSONAdmin(c *gin.Context) {
	username := c.Param("username")
	author := c.GetString("username")

	if username == author {
		response.Error(c, http.StatusBadRequest, "You cannot delete yourself")
		return
	}

	if !h.admins.DeleteAdmin(username, author, sourceWeb) {
		response.Error(c, http.StatusNotFound, fmt.Sprintf("Admin %s not found", username))
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("Admin %s removed", username),
	})
}
