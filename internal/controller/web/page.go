package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizhub/internal/dto"
	"github.com/lshigami/quizhub/internal/middleware"
	"github.com/lshigami/quizhub/internal/service"
	"github.com/rs/zerolog/log"
)

// render adds the layout data every page needs and writes the template.
func render(ctx *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Flashes"] = middleware.Flashes(ctx)
	if p, ok := middleware.PrincipalFrom(ctx); ok {
		data["Principal"] = &p
	}
	ctx.HTML(status, name, data)
}

func renderError(ctx *gin.Context, status int, msg string, details ...string) {
	render(ctx, status, "error.html", http.StatusText(status), gin.H{
		"Status":  status,
		"Message": msg,
		"Details": details,
	})
}

// fail maps service errors to a 404 page for missing records and a 500 page
// for everything else.
func fail(ctx *gin.Context, err error, what string) {
	if errors.Is(err, service.ErrNotFound) {
		renderError(ctx, http.StatusNotFound, what+" not found")
		return
	}
	log.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg(what + ": service error")
	renderError(ctx, http.StatusInternalServerError, "Something went wrong")
}

func badForm(ctx *gin.Context, err error) {
	log.Warn().Err(err).Str("path", ctx.Request.URL.Path).Msg("Failed to bind form")
	renderError(ctx, http.StatusBadRequest, "Invalid form data", dto.ValidationDetails(err)...)
}

// pathID parses a numeric route parameter; a malformed id is a missing page.
func pathID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 32)
	if err != nil {
		renderError(ctx, http.StatusNotFound, "Page not found")
		return 0, false
	}
	return uint(id), true
}

func redirect(ctx *gin.Context, path string) {
	ctx.Redirect(http.StatusFound, path)
}
