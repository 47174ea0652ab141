package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render       *render.Render
	cartSvc      *services.CartService
	sessionStore sessions.SessionStore
}

func NewCartHandler(render *render.Render, cartSvc *services.CartService, sessionStore sessions.SessionStore) *CartHandler {
	return &CartHandler{
		render:       render,
		cartSvc:      cartSvc,
		sessionStore: sessionStore,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := sessions.LoadCart(h.sessionStore, r)

	notices, err := h.cartSvc.Reconcile(r.Context(), cart)
	if err != nil {
		// The previous cart state is kept; the failure is surfaced instead of
		// swallowed.
		log.Printf("CartHandler.GetCart: reconciliation failed: %v", err)
		notices = append(notices, "Could not refresh cart against the live catalog.")
	} else {
		if saveErr := sessions.SaveCart(h.sessionStore, w, r, cart); saveErr != nil {
			log.Printf("CartHandler.GetCart: failed to save reconciled cart: %v", saveErr)
		}
	}

	subtotal, shipping, grandTotal := h.cartSvc.Totals(cart)

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "Shopping Cart",
		"cart":       cart,
		"notices":    notices,
		"subtotal":   subtotal,
		"shipping":   shipping,
		"grandTotal": grandTotal,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Cart", URL: "/carts"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "carts", datas)
}

func (h *CartHandler) AddItemCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	productID := r.FormValue("product_id")
	size := r.FormValue("size")
	qtyStr := r.FormValue("qty")
	productSlug := r.FormValue("product_slug")

	if productID == "" || size == "" || qtyStr == "" {
		redirectBackWithMessage(w, r, productSlug, "error", "Product, size and quantity are required.")
		return
	}

	qty, err := strconv.Atoi(qtyStr)
	if err != nil || qty <= 0 {
		redirectBackWithMessage(w, r, productSlug, "error", "Quantity must be greater than zero.")
		return
	}

	cart := sessions.LoadCart(h.sessionStore, r)
	if err := h.cartSvc.AddItem(r.Context(), cart, productID, size, qty); err != nil {
		log.Printf("CartHandler.AddItemCart: failed to add %s (size %s): %v", productID, size, err)
		redirectBackWithMessage(w, r, productSlug, "error", err.Error())
		return
	}

	if err := sessions.SaveCart(h.sessionStore, w, r, cart); err != nil {
		log.Printf("CartHandler.AddItemCart: failed to save cart: %v", err)
		redirectBackWithMessage(w, r, productSlug, "error", "Failed to save your cart.")
		return
	}

	http.Redirect(w, r, "/carts?status=success&message="+url.QueryEscape("Item added to cart."), http.StatusSeeOther)
}

func (h *CartHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := r.FormValue("product_id")
	size := r.FormValue("size")
	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape("Invalid quantity."), http.StatusSeeOther)
		return
	}

	cart := sessions.LoadCart(h.sessionStore, r)
	if err := h.cartSvc.UpdateQty(r.Context(), cart, productID, size, qty); err != nil {
		log.Printf("CartHandler.UpdateCartItem: %v", err)
		http.Redirect(w, r, "/carts?status=error&message="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if err := sessions.SaveCart(h.sessionStore, w, r, cart); err != nil {
		log.Printf("CartHandler.UpdateCartItem: failed to save cart: %v", err)
	}

	http.Redirect(w, r, "/carts?status=success&message="+url.QueryEscape("Cart updated."), http.StatusSeeOther)
}

func (h *CartHandler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	productID := r.FormValue("product_id")
	size := r.FormValue("size")
	if productID == "" {
		http.Error(w, "Invalid product", http.StatusBadRequest)
		return
	}

	cart := sessions.LoadCart(h.sessionStore, r)
	h.cartSvc.RemoveItem(cart, productID, size)

	if err := sessions.SaveCart(h.sessionStore, w, r, cart); err != nil {
		log.Printf("CartHandler.DeleteCartItem: failed to save cart: %v", err)
	}

	http.Redirect(w, r, "/carts?status=success&message="+url.QueryEscape("Item removed from cart."), http.StatusSeeOther)
}

func (h *CartHandler) GetCartCount(w http.ResponseWriter, r *http.Request) {
	cart := sessions.LoadCart(h.sessionStore, r)
	_, _ = w.Write([]byte(strconv.Itoa(cart.TotalItems())))
}

func redirectBackWithMessage(w http.ResponseWriter, r *http.Request, productSlug, status, msg string) {
	target := "/"
	if productSlug != "" {
		target = fmt.Sprintf("/products/%s", productSlug)
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	http.Redirect(w, r, fmt.Sprintf("%s%sstatus=%s&message=%s", target, sep, status, url.QueryEscape(msg)), http.StatusSeeOther)
}
