package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"noticeboard/internal/notify"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// serve runs h behind a cookie session and returns the recorded response.
func serve(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.GET("/", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestFlashes_RoundTrip(t *testing.T) {
	var got []notify.Message
	serve(t, func(c *gin.Context) {
		n := NewFlashNotifier(sessions.Default(c), zap.NewNop())
		c.Set(FlashNotifierKey, n)
		n.Notify(context.Background(), notify.Success("Post created", "Your post has been published successfully."))
		got = Flashes(c)
		assert.Empty(t, Flashes(c), "flashes are popped once")
	})

	if assert.Len(t, got, 1) {
		assert.Equal(t, "Post created", got[0].Title)
		assert.False(t, got[0].Destructive())
	}
}

func TestFlashes_WithoutNotifier(t *testing.T) {
	serve(t, func(c *gin.Context) {
		assert.Nil(t, Flashes(c))
	})
}

func TestFlashes_LogsSaveFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	var got []notify.Message
	serve(t, func(c *gin.Context) {
		sess := sessions.Default(c)
		// larger than the cookie codec accepts, so every save fails
		sess.Set("big", strings.Repeat("x", 8192))
		sess.AddFlash(notify.Failure("Error", "The post could not be found."))

		n := NewFlashNotifier(sess, zap.New(core))
		c.Set(FlashNotifierKey, n)
		got = Flashes(c)
	})

	assert.Len(t, got, 1)
	assert.Equal(t, 1, logs.FilterMessage("failed to clear flashes").Len())
}
