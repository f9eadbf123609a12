package middleware

import (
	"context"
	"encoding/gob"

	"noticeboard/internal/notify"
	"noticeboard/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gob.Register(notify.Message{})
}

// CookieKV stores values in the visitor's signed cookie session. Every write saves the session.
type CookieKV struct {
	sess sessions.Session
}

func NewCookieKV(sess sessions.Session) *CookieKV {
	return &CookieKV{sess: sess}
}

func (k *CookieKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := k.sess.Get(key).(string)
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return []byte(v), nil
}

func (k *CookieKV) Set(_ context.Context, key string, value []byte) error {
	k.sess.Set(key, string(value))
	return k.sess.Save()
}

func (k *CookieKV) Remove(_ context.Context, key string) error {
	k.sess.Delete(key)
	return k.sess.Save()
}

// FlashNotifier queues messages as session flashes, shown on the next rendered page.
type FlashNotifier struct {
	sess sessions.Session
	log  *zap.Logger
}

func NewFlashNotifier(sess sessions.Session, log *zap.Logger) *FlashNotifier {
	return &FlashNotifier{sess: sess, log: log}
}

func (n *FlashNotifier) Notify(_ context.Context, m notify.Message) {
	n.sess.AddFlash(m)
	if err := n.sess.Save(); err != nil {
		n.log.Warn("failed to save flash", zap.Error(err))
	}
}

// Pop returns the queued messages and clears them.
func (n *FlashNotifier) Pop() []notify.Message {
	raw := n.sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := n.sess.Save(); err != nil {
		n.log.Warn("failed to clear flashes", zap.Error(err))
	}
	out := make([]notify.Message, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(notify.Message); ok {
			out = append(out, m)
		}
	}
	return out
}

// Flashes pops the messages queued for this visitor. Requests that skipped LoadUser have none.
func Flashes(c *gin.Context) []notify.Message {
	v, ok := c.Get(FlashNotifierKey)
	if !ok {
		return nil
	}
	return v.(*FlashNotifier).Pop()
}
