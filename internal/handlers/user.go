package handlers

import (
	"net/http"

	"noticeboard/internal/content"
	"noticeboard/internal/middleware"
	"noticeboard/internal/models"
	"noticeboard/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	posts *content.Store
}

func NewUserHandler(posts *content.Store) *UserHandler {
	return &UserHandler{posts: posts}
}

// Profile shows the logged-in user's own posts and comments. /profile?tab=posts|comments
func (h *UserHandler) Profile(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	tab := c.DefaultQuery("tab", "posts")
	if tab != "posts" && tab != "comments" {
		tab = "posts"
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":    user.Name,
		"User":     user,
		"Initials": utils.Initials(user.Name),
		"Activity": h.posts.UserActivity(user.ID),
		"Tab":      tab,
	})
}
