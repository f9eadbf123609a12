package handlers

import (
	"net/http"

	"noticeboard/internal/apperr"
	"noticeboard/internal/middleware"
	"noticeboard/internal/models"
	"noticeboard/internal/session"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user, ok := middleware.CurrentUser(c); ok {
		obj["CurrentUser"] = user
		obj["IsAdmin"] = user.IsAdmin()
	}

	obj["Flashes"] = middleware.Flashes(c)
	obj["Categories"] = models.Categories()
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// HTMX Redirect helper
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK) // HTMX handles the redirect on client side via header
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Title": http.StatusText(code)})
}

// renderErr renders err with the status its kind maps to.
func renderErr(c *gin.Context, err error) {
	RenderError(c, apperr.StatusCode(err), apperr.Message(err))
}

// sessionStore returns the visitor's store bound by middleware.LoadUser.
func sessionStore(c *gin.Context) *session.Store {
	return c.MustGet(middleware.SessionStoreKey).(*session.Store)
}
