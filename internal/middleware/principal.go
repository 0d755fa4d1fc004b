package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/service"
)

const principalKey = "principal"

// SetPrincipal attaches the authenticated identity to the request.
func SetPrincipal(c *gin.Context, p service.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the identity attached by the session or token gate.
func PrincipalFrom(c *gin.Context) (service.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return service.Principal{}, false
	}
	p, ok := v.(service.Principal)
	return p, ok
}
