package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/config"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/flash"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/handlers"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/handlers/admin"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/middleware"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/sessioncookie"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/session"
)

// NewRouter wires middleware and routes. Dependencies arrive as interfaces so
// handler tests can stand in fakes for the external services.
func NewRouter(logger *slog.Logger, cfg *config.Config, auth session.AuthService, orders admin.OrderService) *gin.Engine {
	r := gin.New()

	secret := []byte(cfg.CookieSecret)
	flashCodec := flash.NewCodec(secret, "genezis_flash", cfg.SecureCookies)
	sessCodec := sessioncookie.New(secret, cfg.SecureCookies)

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.FlashMiddleware(flashCodec))
	r.Use(middleware.SessionMiddleware(middleware.SessionCfg{Codec: sessCodec, Auth: auth}))

	authH := handlers.NewAuthHandlers(flashCodec)
	ordersH := admin.NewOrdersHandler(orders, flashCodec)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/orders") })
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.GET("/login", authH.LoginGet)
	r.POST("/login", authH.LoginPost)
	r.GET("/register", authH.RegisterGet)
	r.POST("/register", authH.RegisterPost)
	r.POST("/logout", authH.LogoutPost)

	adm := r.Group("/admin", middleware.RequireAuth(flashCodec), middleware.RequireAdmin(flashCodec))
	{
		adm.GET("/orders", ordersH.List)
		adm.GET("/orders/new", ordersH.NewGet)
		adm.POST("/orders/new", ordersH.NewPost)
		adm.POST("/orders/:id/status", ordersH.StatusPost)
		adm.GET("/orders/:id", ordersH.Detail)
		adm.GET("/orders/:id/pdf", ordersH.ExportPDF)
	}

	return r
}
