package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wingscafe/inventory_client/internal/apiclient"
	"github.com/wingscafe/inventory_client/internal/logging"
	"github.com/wingscafe/inventory_client/internal/session"
	"github.com/wingscafe/inventory_client/internal/web"
)

type ChartHandler struct {
	API      *apiclient.Client
	Sessions *session.Store
}

type chartBar struct {
	Name     string
	Quantity int
	Percent  int
}

type chartView struct {
	web.Page
	Bars []chartBar
}

// Chart renders product name against quantity as a bar series. A failed
// fetch is logged and the chart simply comes up empty.
func (h *ChartHandler) Chart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "quantity_chart")

	view := chartView{Page: page(c, h.Sessions)}

	products, err := h.API.ListProducts(ctx)
	if err != nil {
		l.Error("fetch_products_failed", "error", err)
		return c.Render(http.StatusOK, "chart.html", view)
	}

	max := 0
	for _, p := range products {
		if p.Quantity > max {
			max = p.Quantity
		}
	}
	for _, p := range products {
		bar := chartBar{Name: p.Name, Quantity: p.Quantity}
		if max > 0 {
			bar.Percent = p.Quantity * 100 / max
		}
		view.Bars = append(view.Bars, bar)
	}

	return c.Render(http.StatusOK, "chart.html", view)
}
