package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/wingscafe/inventory_client/internal/handlers"
	"github.com/wingscafe/inventory_client/internal/middleware/auth"
	"github.com/wingscafe/inventory_client/internal/session"
	"github.com/wingscafe/inventory_client/internal/web"
)

type Deps struct {
	Sessions         *session.Store
	AuthHandler      *handlers.AuthHandler
	DashboardHandler *handlers.DashboardHandler
	ProductHandler   *handlers.ProductHandler
	UserHandler      *handlers.UserHandler
	ChartHandler     *handlers.ChartHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.StaticFS("/assets", web.Assets())

	guest := e.Group("", auth.RedirectIfLoggedIn(d.Sessions))

	guest.GET("/login", d.AuthHandler.ShowLogin)
	guest.POST("/login", d.AuthHandler.Login)
	guest.GET("/signup", d.AuthHandler.ShowSignup)
	guest.POST("/signup", d.AuthHandler.Signup)

	app := e.Group("", auth.RequireLogin(d.Sessions))

	app.POST("/logout", d.AuthHandler.Logout)

	app.GET("/", d.DashboardHandler.Dashboard)
	app.GET("/chart", d.ChartHandler.Chart)

	app.GET("/products", d.ProductHandler.List)
	app.POST("/products", d.ProductHandler.Submit)
	app.POST("/products/:id/add", d.ProductHandler.AddStock)
	app.POST("/products/:id/sell", d.ProductHandler.Sell)
	app.POST("/products/:id/delete", d.ProductHandler.Delete)

	app.GET("/users", d.UserHandler.List)
	app.POST("/users/:id", d.UserHandler.Save)
	app.POST("/users/:id/delete", d.UserHandler.Delete)
}
