package handlers

import (
	"net/http"
	"strconv"

	"noticeboard/internal/apperr"
	"noticeboard/internal/content"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	posts *content.Store
}

func NewLikeHandler(posts *content.Store) *LikeHandler {
	return &LikeHandler{posts: posts}
}

// Toggle flips the visitor's like and answers with the new like count for HTMX to swap in.
func (h *LikeHandler) Toggle(c *gin.Context) {
	post, err := h.posts.ToggleLike(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperr.StatusCode(err) == http.StatusUnauthorized {
			c.Header("HX-Redirect", "/login")
		}
		c.String(apperr.StatusCode(err), apperr.Message(err))
		return
	}
	c.String(http.StatusOK, strconv.Itoa(len(post.Likes)))
}
