package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wingscafe/inventory_client/internal/logging"
	"github.com/wingscafe/inventory_client/internal/session"
	"github.com/wingscafe/inventory_client/internal/web"
)

type AuthHandler struct {
	Sessions *session.Store
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", page(c, h.Sessions))
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	username := c.FormValue("username")
	password := c.FormValue("password")

	if !h.Sessions.Login(username, password) {
		// Deliberately one message for both unknown user and wrong password.
		l.Warn("login_failed", "status", 200, "reason", "invalid username or password")
		return c.Render(http.StatusOK, "login.html", web.Page{
			Error: "Invalid username or password",
		})
	}

	l.Info("login_success", "username", username)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) ShowSignup(c echo.Context) error {
	return c.Render(http.StatusOK, "signup.html", page(c, h.Sessions))
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	username := c.FormValue("username")
	password := c.FormValue("password")

	// The roster takes every signup, duplicates included; login resolves
	// duplicates by roster order.
	if err := h.Sessions.Signup(username, password); err != nil {
		l.Error("signup_failed", "status", 200, "reason", "store_error", "error", err)
		return c.Render(http.StatusOK, "signup.html", web.Page{
			Error: "Sign up failed. Please try again.",
		})
	}

	l.Info("signup_success", "username", username)
	return redirectWith(c, "/login", "notice", "Sign up successful! You can now log in.")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	if err := h.Sessions.Logout(); err != nil {
		l.Error("logout_error", "reason", "store_error", "error", err)
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
