// Package api assembles the gin engine: middleware chain, route catalog,
// and the dual-mode dispatcher behind it.
package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"
	approuter "backend/internal/router"
	"backend/internal/services"
	"backend/internal/store"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, st store.Store) *gin.Engine {
	local := approuter.New(st)
	api := &h.API{
		Dispatch: approuter.NewDispatcher(env.RemoteAPIBase, local),
		Auth:     services.AuthService{Store: st, JWTSecret: []byte(env.JWTSecret)},
		Store:    st,
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(),
		middleware.Identify([]byte(env.JWTSecret)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	// Unknown routes still flow through the logical router so the wire
	// answer is the same UNSUPPORTED_ENDPOINT code in both modes.
	r.NoRoute(api.Forward)

	g := r.Group("/api")
	{
		g.GET("/health", h.Health)
		g.GET("/db-check", h.DBCheck)

		g.GET("/meta", api.Forward)

		auth := g.Group("/auth")
		auth.POST("/login", api.Login)

		gated := middleware.RequireAuth(env.AuthMode)

		g.POST("/bookings", gated, api.Forward)

		orders := g.Group("/orders")
		orders.POST("", gated, api.Forward)
		orders.GET("/:id/invoice", api.GetOrderInvoicePDF)

		cabs := g.Group("/cab-bookings")
		cabs.POST("", gated, api.Forward)
		cabs.GET("/search", api.Forward)

		buses := g.Group("/bus-bookings")
		buses.POST("/book", gated, api.Forward)
		buses.GET("/:id/e-ticket", api.GetBusETicketPDF)

		g.GET("/buses/:id/seats", api.Forward)

		g.POST("/bike-bookings/book", gated, api.Forward)

		g.POST("/refunds/request", gated, api.Forward)
	}

	return r
}
