package middleware

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/model"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	sessionUserID  = "user_id"
	sessionIsAdmin = "is_admin"

	LoginPath = "/login"
)

// Flashes are stored as []interface{} in the cookie payload.
func init() {
	gob.Register([]interface{}{})
}

// StartSession records the logged-in user in the browser session.
func StartSession(c *gin.Context, user *model.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionIsAdmin, user.IsAdmin)
	return session.Save()
}

// EndSession removes the identity keys, keeping pending flashes.
func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(sessionUserID)
	session.Delete(sessionIsAdmin)
	return session.Save()
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg)
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to save flash message")
	}
}

// Flashes drains queued messages.
func Flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear flash messages")
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SessionPrincipal decodes the session identity, if any, into the request
// principal. It never rejects a request.
func SessionPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(sessionUserID).(uint); ok && id != 0 {
			isAdmin, _ := session.Get(sessionIsAdmin).(bool)
			SetPrincipal(c, service.Principal{UserID: id, IsAdmin: isAdmin})
		}
		c.Next()
	}
}

// RequireAdminSession lets only admin sessions through.
func RequireAdminSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.IsAdmin {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUserSession lets only logged-in non-admin sessions through.
func RequireUserSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || p.UserID == 0 || p.IsAdmin {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
