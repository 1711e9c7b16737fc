package handlers

import (
	"io"

	"backend/internal/http/middleware"
	"backend/internal/router"
	"backend/internal/services"
	"backend/internal/store"

	"github.com/gin-gonic/gin"
)

// API bundles the HTTP surface over the dual-mode dispatcher. Every catalog
// route funnels through Forward so remote-first behavior is uniform.
type API struct {
	Dispatch *router.Dispatcher
	Auth     services.AuthService
	Store    store.Store
}

// Forward translates a gin request into a logical one and executes it
// remote-first. The dispatcher decides local vs remote; the handler only
// shapes the wire response.
func (a *API) Forward(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
	}

	req := router.Request{
		Method:   c.Request.Method,
		Path:     c.Request.URL.Path,
		Query:    c.Request.URL.Query(),
		Body:     body,
		Identity: middleware.IdentityOf(c),
	}

	resp, err := a.Dispatch.Do(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(resp.Status, resp.Body)
}
