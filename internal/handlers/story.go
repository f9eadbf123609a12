package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"noticeboard/internal/apperr"
	"noticeboard/internal/content"
	"noticeboard/internal/middleware"
	"noticeboard/internal/models"
	"noticeboard/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const featuredCount = 3

type StoryHandler struct {
	posts *content.Store
	log   *zap.Logger
}

func NewStoryHandler(posts *content.Store, log *zap.Logger) *StoryHandler {
	return &StoryHandler{posts: posts, log: log}
}

// Index lists notices, optionally filtered by ?category=, with the newest ones featured.
func (h *StoryHandler) Index(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	if category != "all" && !models.IsCategory(category) {
		category = "all"
	}

	Render(c, http.StatusOK, "story/list.html", gin.H{
		"Title":          "Notice Board",
		"Posts":          h.posts.PostsByCategory(category),
		"Featured":       h.posts.Featured(featuredCount),
		"ActiveCategory": category,
		"Loading":        !h.posts.Ready(),
	})
}

func (h *StoryHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))

	Render(c, http.StatusOK, "story/search.html", gin.H{
		"Title": "Search",
		"Query": query,
		"Posts": h.posts.SearchPosts(query),
	})
}

type commentView struct {
	models.Comment
	HTML      template.HTML
	CanDelete bool
}

func (h *StoryHandler) Detail(c *gin.Context) {
	post, ok := h.posts.GetPostByID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	user, loggedIn := middleware.CurrentUser(c)
	comments := make([]commentView, 0, len(post.Comments))
	for _, com := range post.Comments {
		comments = append(comments, commentView{
			Comment:   com,
			HTML:      utils.RenderMarkdown(com.Content),
			CanDelete: loggedIn && com.CanDelete(*user),
		})
	}

	Render(c, http.StatusOK, "story/detail.html", gin.H{
		"Title":     post.Title,
		"Post":      post,
		"PostHTML":  utils.RenderMarkdown(post.Description),
		"Comments":  comments,
		"Edited":    post.UpdatedAt.After(post.CreatedAt),
		"CanManage": loggedIn && post.CanManage(*user),
		"Liked":     loggedIn && post.LikedBy(user.ID),
	})
}

func (h *StoryHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "story/create.html", gin.H{
		"Title": "New notice",
		"Input": models.PostInput{Category: models.Categories()[0]},
	})
}

func postInput(c *gin.Context) models.PostInput {
	return models.PostInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
	}
}

func (h *StoryHandler) Create(c *gin.Context) {
	in := postInput(c)
	post, err := h.posts.CreatePost(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, apperr.ErrForbidden) || errors.Is(err, apperr.ErrAuthentication) {
			renderErr(c, err)
			return
		}
		Render(c, apperr.StatusCode(err), "story/create.html", gin.H{
			"Title": "New notice",
			"Input": in,
		})
		return
	}

	c.Redirect(http.StatusFound, "/p/"+post.ID)
}

func (h *StoryHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	post, ok := h.posts.GetPostByID(c.Param("id"))
	if !ok {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	if !post.CanManage(*user) {
		RenderError(c, http.StatusForbidden, "You cannot edit this post")
		return
	}

	Render(c, http.StatusOK, "story/edit.html", gin.H{
		"Title": "Edit notice",
		"Post":  post,
		"Input": models.PostInput{Title: post.Title, Description: post.Description, Category: post.Category},
	})
}

func (h *StoryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	in := postInput(c)
	post, err := h.posts.UpdatePost(c.Request.Context(), id, in)
	if err != nil {
		if !errors.Is(err, apperr.ErrInvalidInput) {
			renderErr(c, err)
			return
		}
		existing, _ := h.posts.GetPostByID(id)
		Render(c, http.StatusBadRequest, "story/edit.html", gin.H{
			"Title": "Edit notice",
			"Post":  existing,
			"Input": in,
		})
		return
	}

	c.Redirect(http.StatusFound, "/p/"+post.ID)
}

// Delete is called via HTMX from the list and the detail page.
func (h *StoryHandler) Delete(c *gin.Context) {
	if err := h.posts.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		c.String(apperr.StatusCode(err), apperr.Message(err))
		return
	}

	redirect := c.GetHeader("HX-Current-URL")
	if strings.Contains(redirect, "/p/") {
		// We are on detail page
		c.Header("HX-Redirect", "/")
	}
	c.Status(http.StatusOK) // empty body removes the target
}

func (h *StoryHandler) CreateComment(c *gin.Context) {
	id := c.Param("id")
	_, err := h.posts.AddComment(c.Request.Context(), models.CommentInput{
		PostID:  id,
		Content: c.PostForm("content"),
	})
	if errors.Is(err, apperr.ErrNotFound) {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	// validation failures come back as a flash on the detail page
	c.Redirect(http.StatusFound, "/p/"+id+"#comments")
}

func (h *StoryHandler) DeleteComment(c *gin.Context) {
	if err := h.posts.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("cid")); err != nil {
		c.String(apperr.StatusCode(err), apperr.Message(err))
		return
	}
	c.Status(http.StatusOK)
}
