package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wingscafe/inventory_client/internal/apiclient"
	"github.com/wingscafe/inventory_client/internal/inflight"
	"github.com/wingscafe/inventory_client/internal/localstore"
	"github.com/wingscafe/inventory_client/internal/logging"
	"github.com/wingscafe/inventory_client/internal/session"
	"github.com/wingscafe/inventory_client/internal/web"
)

type ProductHandler struct {
	API      *apiclient.Client
	Store    *localstore.Store
	Sessions *session.Store
	Guard    *inflight.Guard
	APIBase  string
}

type productsView struct {
	web.Page
	Products []apiclient.Product
	APIBase  string
}

func productKey(id int) string {
	return fmt.Sprintf("product/%d", id)
}

func (h *ProductHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_list")

	view := productsView{Page: page(c, h.Sessions), APIBase: h.APIBase}

	products, err := h.API.ListProducts(ctx)
	if err != nil {
		l.Error("fetch_products_failed", "error", err)
		view.Error = "Failed to fetch products."
		return c.Render(http.StatusOK, "products.html", view)
	}

	if err := h.Store.SaveProducts(products); err != nil {
		l.Error("cache_products_failed", "error", err)
	}

	view.Products = products
	return c.Render(http.StatusOK, "products.html", view)
}

// Submit is the upsert-by-name path: a submitted name already present in the
// loaded list updates that record (quantity adds up, the other fields are
// overwritten), a novel name creates a new one.
func (h *ProductHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_submit")

	name := strings.TrimSpace(c.FormValue("name"))
	description := strings.TrimSpace(c.FormValue("description"))
	category := strings.TrimSpace(c.FormValue("category"))
	priceStr := c.FormValue("price")
	quantityStr := c.FormValue("quantity")
	image, imageErr := c.FormFile("image")

	if name == "" || description == "" || category == "" || priceStr == "" || quantityStr == "" || imageErr != nil {
		return redirectWith(c, "/products", "error", "Please fill in all fields.")
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		return redirectWith(c, "/products", "error", "Please fill in all fields.")
	}
	quantity, err := strconv.Atoi(quantityStr)
	if err != nil || quantity < 0 {
		return redirectWith(c, "/products", "error", "Please fill in all fields.")
	}

	products, err := h.API.ListProducts(ctx)
	if err != nil {
		l.Error("fetch_products_failed", "error", err)
		return redirectWith(c, "/products", "error", "An unexpected error occurred. Please try again.")
	}

	var existing *apiclient.Product
	for i := range products {
		if products[i].Name == name {
			existing = &products[i]
			break
		}
	}

	if existing != nil {
		key := productKey(existing.ProductID)
		if !h.Guard.TryAcquire(key) {
			return redirectWith(c, "/products", "error", "Another operation on this product is still in progress.")
		}
		defer h.Guard.Release(key)

		updated := *existing
		updated.Quantity += quantity
		updated.Description = description
		updated.CategoryName = category
		updated.Price = apiclient.Price(price)

		if err := h.API.UpdateProduct(ctx, existing.ProductID, updated); err != nil {
			l.Error("update_product_failed", "product_id", existing.ProductID, "error", err)
			return redirectWith(c, "/products", "error", "Failed to update the product. Please try again.")
		}

		h.mirror(ctx, products, func(p *apiclient.Product) bool { return p.ProductID == existing.ProductID }, &updated)
		l.Info("product_updated", "product_id", existing.ProductID, "name", name)
		return redirectWith(c, "/products", "success", "Product updated successfully.")
	}

	src, err := image.Open()
	if err != nil {
		l.Error("open_image_failed", "error", err)
		return redirectWith(c, "/products", "error", "An unexpected error occurred. Please try again.")
	}
	defer src.Close()

	created, err := h.API.CreateProduct(ctx, apiclient.CreateProductForm{
		Name:         name,
		Description:  description,
		CategoryName: category,
		Price:        price,
		Quantity:     quantity,
		Image:        src,
		ImageName:    image.Filename,
	})
	if err != nil {
		l.Error("create_product_failed", "name", name, "error", err)
		return redirectWith(c, "/products", "error", "Failed to add the product. Please try again.")
	}

	// The server's echoed record, id and image path included, is what the
	// local copy carries from now on.
	h.mirror(ctx, append(products, *created), nil, nil)
	l.Info("product_created", "product_id", created.ProductID, "name", name)
	return redirectWith(c, "/products", "success", "Product added successfully.")
}

func (h *ProductHandler) AddStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_add_stock")

	id, delta, ok, err := stockInput(c)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	products, current, found, err := h.lookup(c, id)
	if err != nil || !found {
		return err
	}

	key := productKey(id)
	if !h.Guard.TryAcquire(key) {
		return redirectWith(c, "/products", "error", "Another operation on this product is still in progress.")
	}
	defer h.Guard.Release(key)

	updated := current.Quantity + delta
	if err := h.API.PatchQuantity(ctx, id, updated); err != nil {
		l.Error("add_stock_failed", "product_id", id, "error", err)
		return redirectWith(c, "/products", "error", "Failed to add stock. Please try again.")
	}

	patched := *current
	patched.Quantity = updated
	h.mirror(ctx, products, func(p *apiclient.Product) bool { return p.ProductID == id }, &patched)
	l.Info("stock_added", "product_id", id, "quantity", updated)
	return redirectWith(c, "/products", "success", "Stock added successfully.")
}

func (h *ProductHandler) Sell(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_sell")

	id, delta, ok, err := stockInput(c)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	products, current, found, err := h.lookup(c, id)
	if err != nil || !found {
		return err
	}

	// Refused before any request goes out; the shown quantity never drops
	// below zero.
	if delta > current.Quantity {
		return redirectWith(c, "/products", "error", "Insufficient stock to sell this amount.")
	}

	key := productKey(id)
	if !h.Guard.TryAcquire(key) {
		return redirectWith(c, "/products", "error", "Another operation on this product is still in progress.")
	}
	defer h.Guard.Release(key)

	updated := current.Quantity - delta
	if err := h.API.PatchQuantity(ctx, id, updated); err != nil {
		l.Error("sell_failed", "product_id", id, "error", err)
		return redirectWith(c, "/products", "error", "Failed to sell stock. Please try again.")
	}

	patched := *current
	patched.Quantity = updated
	h.mirror(ctx, products, func(p *apiclient.Product) bool { return p.ProductID == id }, &patched)
	l.Info("stock_sold", "product_id", id, "quantity", updated)
	return redirectWith(c, "/products", "success", "Stock sold successfully.")
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product_delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return redirectWith(c, "/products", "error", "An unexpected error occurred. Please try again.")
	}

	key := productKey(id)
	if !h.Guard.TryAcquire(key) {
		return redirectWith(c, "/products", "error", "Another operation on this product is still in progress.")
	}
	defer h.Guard.Release(key)

	if err := h.API.DeleteProduct(ctx, id); err != nil {
		// The local list stays as it was; deletion only lands on success.
		l.Error("delete_product_failed", "product_id", id, "error", err)
		return redirectWith(c, "/products", "error", "Failed to delete the product. Please try again.")
	}

	if products, lerr := h.API.ListProducts(ctx); lerr == nil {
		h.mirror(ctx, products, nil, nil)
	}
	l.Info("product_deleted", "product_id", id)
	return redirectWith(c, "/products", "success", "Product deleted successfully.")
}

// stockInput validates the dialog quantity. ok=false means the action was
// already answered with a notice and no API call may follow.
func stockInput(c echo.Context) (id, delta int, ok bool, err error) {
	id, convErr := strconv.Atoi(c.Param("id"))
	if convErr != nil {
		return 0, 0, false, redirectWith(c, "/products", "error", "An unexpected error occurred. Please try again.")
	}
	delta, convErr = strconv.Atoi(c.FormValue("quantity"))
	if convErr != nil || delta <= 0 {
		return 0, 0, false, redirectWith(c, "/products", "error", "Please enter a valid positive quantity.")
	}
	return id, delta, true, nil
}

// lookup fetches the current list and picks the acted-on product out of it.
func (h *ProductHandler) lookup(c echo.Context, id int) ([]apiclient.Product, *apiclient.Product, bool, error) {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx)

	products, err := h.API.ListProducts(ctx)
	if err != nil {
		l.Error("fetch_products_failed", "error", err)
		return nil, nil, false, redirectWith(c, "/products", "error", "An unexpected error occurred. Please try again.")
	}
	for i := range products {
		if products[i].ProductID == id {
			return products, &products[i], true, nil
		}
	}
	return nil, nil, false, redirectWith(c, "/products", "error", "An unexpected error occurred. Please try again.")
}

// mirror writes the post-mutation list through to the local snapshot,
// replacing the entry matched by pick with repl when given.
func (h *ProductHandler) mirror(ctx context.Context, products []apiclient.Product, pick func(*apiclient.Product) bool, repl *apiclient.Product) {
	if pick != nil && repl != nil {
		for i := range products {
			if pick(&products[i]) {
				products[i] = *repl
			}
		}
	}
	if err := h.Store.SaveProducts(products); err != nil {
		logging.FromContext(ctx).Error("cache_products_failed", "error", err)
	}
}
