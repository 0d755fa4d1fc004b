package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

const (
	MsgTokenMissing  = "Token is missing"
	MsgTokenInvalid  = "Token is invalid"
	MsgAdminRequired = "Admin privileges required"
)

// TokenAuth validates the bearer token and attaches its principal. The
// session is never consulted.
func TokenAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: MsgTokenMissing})
			return
		}
		raw, ok := bearerToken(header)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: MsgTokenInvalid})
			return
		}
		principal, err := tokens.Parse(raw)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected API token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: MsgTokenInvalid})
			return
		}
		SetPrincipal(c, principal)
		c.Next()
	}
}

// RequireAdminToken must run after TokenAuth.
func RequireAdminToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || !p.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: MsgAdminRequired})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}
