package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wingscafe/inventory_client/internal/apiclient"
	"github.com/wingscafe/inventory_client/internal/localstore"
	"github.com/wingscafe/inventory_client/internal/logging"
	"github.com/wingscafe/inventory_client/internal/session"
	"github.com/wingscafe/inventory_client/internal/web"
)

// carouselImages is the fixed decorative set; it is unrelated to the fetched
// product list. The companion price the source hinted at has no defined
// origin, so no price is shown.
var carouselImages = []string{
	"/assets/carousel/a.svg",
	"/assets/carousel/b.svg",
	"/assets/carousel/c.svg",
	"/assets/carousel/d.svg",
	"/assets/carousel/e.svg",
	"/assets/carousel/f.svg",
}

type DashboardHandler struct {
	API      *apiclient.Client
	Store    *localstore.Store
	Sessions *session.Store
	APIBase  string
}

type dashboardView struct {
	web.Page
	Products       []apiclient.Product
	APIBase        string
	CarouselImages []string
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard")

	view := dashboardView{
		Page:           page(c, h.Sessions),
		APIBase:        h.APIBase,
		CarouselImages: carouselImages,
	}

	products, err := h.API.ListProducts(ctx)
	if err != nil {
		l.Error("fetch_products_failed", "error", err)
		if errors.Is(err, apiclient.ErrNotFound) {
			view.Error = "Products not found."
		} else {
			view.Error = "Failed to fetch products. Please try again later."
		}
		return c.Render(http.StatusOK, "dashboard.html", view)
	}

	if err := h.Store.SaveProducts(products); err != nil {
		l.Error("cache_products_failed", "error", err)
	}

	view.Products = products
	return c.Render(http.StatusOK, "dashboard.html", view)
}
