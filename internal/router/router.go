package router

import (
	"net/http"

	"noticeboard/internal/content"
	"noticeboard/internal/handlers"
	"noticeboard/internal/metrics"
	"noticeboard/internal/middleware"
	"noticeboard/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionName = "noticeboard_session"

// Deps are the long-lived objects the routes share.
type Deps struct {
	Directory      *session.Directory
	Posts          *content.Store
	SessionOptions session.Options
	Metrics        *metrics.Metrics
	Logger         *zap.Logger

	SessionSecret string
	SecureCookie  bool
	TemplatesDir  string
}

// NewEngine builds the gin engine with sessions, templates, middleware and routes.
func NewEngine(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(d.Logger))
	r.Use(d.Metrics.Middleware())

	// Setup Sessions
	store := cookie.NewStore([]byte(d.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 3600,
		HttpOnly: true,
		Secure:   d.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	renderer, err := LoadTemplates(d.TemplatesDir)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		if !d.Posts.Ready() {
			c.String(http.StatusServiceUnavailable, "loading")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	site := r.Group("/")
	site.Use(middleware.LoadUser(d.Directory, d.SessionOptions, d.Logger))
	RegisterRoutes(site, d)

	r.NoRoute(middleware.LoadUser(d.Directory, d.SessionOptions, d.Logger), func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "Page not found")
	})
	return r, nil
}

func RegisterRoutes(r *gin.RouterGroup, d Deps) {
	// Handlers
	authHandler := handlers.NewAuthHandler(d.Logger)
	storyHandler := handlers.NewStoryHandler(d.Posts, d.Logger)
	likeHandler := handlers.NewLikeHandler(d.Posts)
	userHandler := handlers.NewUserHandler(d.Posts)
	categoryHandler := handlers.NewCategoryHandler(d.Posts)
	adminHandler := handlers.NewAdminHandler(d.Directory, d.Posts)

	// Public Routes
	r.GET("/", storyHandler.Index)
	r.GET("/search", storyHandler.Search)
	r.GET("/categories", categoryHandler.List)
	r.GET("/p/:id", storyHandler.Detail)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/p/:id/comment", storyHandler.CreateComment)
		authorized.POST("/like/:id", likeHandler.Toggle)
		authorized.GET("/p/:id/edit", storyHandler.ShowEdit)
		authorized.POST("/p/:id/edit", storyHandler.Update)
		authorized.GET("/profile", userHandler.Profile)

		authorized.DELETE("/p/:id", storyHandler.Delete)
		authorized.DELETE("/p/:id/comment/:cid", storyHandler.DeleteComment)
	}

	// Admin Routes
	admin := r.Group("/")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/submit", storyHandler.ShowCreate)
		admin.POST("/submit", storyHandler.Create)
		admin.GET("/admin", adminHandler.Dashboard)
	}
}
