package middleware

import (
	"net/http"

	"noticeboard/internal/models"
	"noticeboard/internal/notify"
	"noticeboard/internal/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CheckUserKey     = "user"
	SessionStoreKey  = "session_store"
	FlashNotifierKey = "flash_notifier"
)

// LoadUser restores the visitor's session store from the cookie and binds it, together with
// a flash notifier, to the request context.
func LoadUser(dir *session.Directory, opts session.Options, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		flash := NewFlashNotifier(sess, log)
		c.Set(FlashNotifierKey, flash)
		ctx := notify.WithNotifier(c.Request.Context(), flash)

		store, err := session.Restore(ctx, dir, NewCookieKV(sess), opts)
		if err != nil {
			log.Error("failed to restore session", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		ctx = session.WithStore(ctx, store)
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionStoreKey, store)
		if user, ok := store.Current(ctx); ok {
			c.Set(CheckUserKey, &user)
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in user set by LoadUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	u, exists := c.Get(CheckUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*models.User)
	return user, ok
}

// AuthRequired ensures a user is logged in
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			if c.GetHeader("HX-Request") == "true" {
				c.Header("HX-Redirect", "/login")
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired keeps non-admins away from admin pages. Store operations check roles on their own.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
