package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wingscafe/inventory_client/internal/session"
)

// RequireLogin sends logged-out visitors of protected views to the login page.
func RequireLogin(s *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s.Current() == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RedirectIfLoggedIn keeps an authenticated user off the login and signup
// pages, sending them to the default view instead.
func RedirectIfLoggedIn(s *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if s.Current() != "" {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}
