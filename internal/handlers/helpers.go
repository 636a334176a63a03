package handlers

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/wingscafe/inventory_client/internal/session"
	"github.com/wingscafe/inventory_client/internal/web"
)

// page builds the shared view data, picking up the inline notices a previous
// redirect left in the query string.
func page(c echo.Context, s *session.Store) web.Page {
	return web.Page{
		CurrentUser: s.Current(),
		Error:       c.QueryParam("error"),
		Success:     c.QueryParam("success"),
		Notice:      c.QueryParam("notice"),
	}
}

// redirectWith sends the browser back to path carrying one notice, the
// post-redirect-get equivalent of setting a view-local message string.
func redirectWith(c echo.Context, path, kind, msg string) error {
	q := url.Values{}
	q.Set(kind, msg)
	return c.Redirect(http.StatusSeeOther, path+"?"+q.Encode())
}
