package handlers

import (
	"net/http"

	"noticeboard/internal/content"
	"noticeboard/internal/session"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	dir   *session.Directory
	posts *content.Store
}

func NewAdminHandler(dir *session.Directory, posts *content.Store) *AdminHandler {
	return &AdminHandler{dir: dir, posts: posts}
}

// Dashboard shows collection totals, every post and every registered account.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title": "Admin dashboard",
		"Stats": h.posts.Stats(),
		"Users": h.dir.Users(),
		"Posts": h.posts.Posts(),
	})
}
