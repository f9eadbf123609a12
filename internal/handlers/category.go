package handlers

import (
	"net/http"

	"noticeboard/internal/content"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	posts *content.Store
}

func NewCategoryHandler(posts *content.Store) *CategoryHandler {
	return &CategoryHandler{posts: posts}
}

// List shows every category with its post count.
func (h *CategoryHandler) List(c *gin.Context) {
	Render(c, http.StatusOK, "category/list.html", gin.H{
		"Title":  "Categories",
		"Counts": h.posts.CategoryCounts(),
	})
}
