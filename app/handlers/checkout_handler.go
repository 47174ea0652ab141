package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/breadcrumb"
	"github.com/Rakhulsr/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	render       *render.Render
	cartSvc      *services.CartService
	checkoutSvc  *services.CheckoutService
	paymentSvc   *services.PaymentService
	orderRepo    repositories.OrderRepository
	sessionStore sessions.SessionStore
	mailer       *services.Mailer
}

func NewCheckoutHandler(
	render *render.Render,
	cartSvc *services.CartService,
	checkoutSvc *services.CheckoutService,
	paymentSvc *services.PaymentService,
	orderRepo repositories.OrderRepository,
	sessionStore sessions.SessionStore,
	mailer *services.Mailer,
) *CheckoutHandler {
	return &CheckoutHandler{
		render:       render,
		cartSvc:      cartSvc,
		checkoutSvc:  checkoutSvc,
		paymentSvc:   paymentSvc,
		orderRepo:    orderRepo,
		sessionStore: sessionStore,
		mailer:       mailer,
	}
}

// CheckoutPage renders the checkout form. The pending order code is issued on
// first entry and reused on every later visit until checkout completes.
func (h *CheckoutHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	cart := sessions.LoadCart(h.sessionStore, r)

	notices, err := h.cartSvc.Reconcile(r.Context(), cart)
	if err != nil {
		log.Printf("CheckoutHandler.CheckoutPage: reconciliation failed: %v", err)
		notices = append(notices, "Could not refresh cart against the live catalog.")
	} else if saveErr := sessions.SaveCart(h.sessionStore, w, r, cart); saveErr != nil {
		log.Printf("CheckoutHandler.CheckoutPage: failed to save reconciled cart: %v", saveErr)
	}

	if len(cart.Lines) == 0 {
		http.Redirect(w, r, "/carts?status=info&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
		return
	}

	orderCode := services.EnsureOrderCode(h.sessionStore.GetPendingOrderCode(r))
	if err := h.sessionStore.SetPendingOrderCode(w, r, orderCode); err != nil {
		log.Printf("CheckoutHandler.CheckoutPage: failed to persist pending order code: %v", err)
	}

	h.renderCheckout(w, r, cart, orderCode, &services.CheckoutForm{}, nil, notices)
}

func (h *CheckoutHandler) renderCheckout(w http.ResponseWriter, r *http.Request, cart *models.Cart, orderCode string, form *services.CheckoutForm, formErrors map[string]string, notices []string) {
	subtotal, shipping, grandTotal := h.cartSvc.Totals(cart)

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "Checkout",
		"cart":       cart,
		"orderCode":  orderCode,
		"form":       form,
		"errors":     formErrors,
		"notices":    notices,
		"subtotal":   subtotal,
		"shipping":   shipping,
		"grandTotal": grandTotal,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Cart", URL: "/carts"},
			{Name: "Checkout", URL: "/checkout"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "checkout", datas)
}

func parseCheckoutForm(r *http.Request) *services.CheckoutForm {
	return &services.CheckoutForm{
		FirstName:     r.PostFormValue("first_name"),
		LastName:      r.PostFormValue("last_name"),
		Phone:         r.PostFormValue("phone"),
		Email:         r.PostFormValue("email"),
		Address:       r.PostFormValue("address"),
		Newsletter:    r.PostFormValue("newsletter") == "on",
		SaveInfo:      r.PostFormValue("save_info") == "on",
		PaymentMethod: r.PostFormValue("payment_method"),
	}
}

// CheckoutPost branches on the selected payment method. A validation failure
// blocks submission and writes nothing.
func (h *CheckoutHandler) CheckoutPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Failed to read form data."), http.StatusSeeOther)
		return
	}

	cart := sessions.LoadCart(h.sessionStore, r)
	if len(cart.Lines) == 0 {
		http.Redirect(w, r, "/carts?status=info&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
		return
	}

	orderCode := services.EnsureOrderCode(h.sessionStore.GetPendingOrderCode(r))
	if err := h.sessionStore.SetPendingOrderCode(w, r, orderCode); err != nil {
		log.Printf("CheckoutHandler.CheckoutPost: failed to persist pending order code: %v", err)
	}

	form := parseCheckoutForm(r)
	if formErrors := h.checkoutSvc.ValidateForm(form); formErrors != nil {
		h.renderCheckout(w, r, cart, orderCode, form, formErrors, nil)
		return
	}

	switch form.PaymentMethod {
	case "bank":
		h.placeBankOrder(w, r, cart, form, orderCode)
	case "card":
		h.initiateCardPayment(w, r, cart, form, orderCode)
	default:
		h.renderCheckout(w, r, cart, orderCode, form, map[string]string{"PaymentMethod": "Select a payment method."}, nil)
	}
}

// placeBankOrder persists the order immediately; the visitor settles it by
// manual transfer using the order code as reference.
func (h *CheckoutHandler) placeBankOrder(w http.ResponseWriter, r *http.Request, cart *models.Cart, form *services.CheckoutForm, orderCode string) {
	order, err := h.checkoutSvc.PlaceOrder(r.Context(), cart, form, orderCode, models.PaymentMethodBank, models.PaymentStatusPending)
	if err != nil {
		log.Printf("CheckoutHandler.placeBankOrder: failed to place order %s: %v", orderCode, err)
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Failed to place your order: "+err.Error()), http.StatusSeeOther)
		return
	}

	h.finishCheckoutSession(w, r)
	h.mailer.SendOrderConfirmation(form.Email, order.OrderCode, order.GrandTotal.String())

	http.Redirect(w, r, "/checkout/success?order="+url.QueryEscape(order.OrderCode), http.StatusSeeOther)
}

// initiateCardPayment parks the checkout in the session and hands the visitor
// to the hosted payment widget. Nothing is persisted yet.
func (h *CheckoutHandler) initiateCardPayment(w http.ResponseWriter, r *http.Request, cart *models.Cart, form *services.CheckoutForm, orderCode string) {
	snapshot := &services.CheckoutSnapshot{Cart: *cart, Form: *form}
	payload, err := services.EncodeCheckoutSnapshot(snapshot)
	if err != nil {
		log.Printf("CheckoutHandler.initiateCardPayment: %v", err)
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Failed to prepare payment."), http.StatusSeeOther)
		return
	}
	if err := h.sessionStore.SetCheckoutSnapshot(w, r, payload); err != nil {
		log.Printf("CheckoutHandler.initiateCardPayment: failed to park checkout: %v", err)
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Failed to prepare payment."), http.StatusSeeOther)
		return
	}

	redirectURL, err := h.checkoutSvc.InitiateCardPayment(r.Context(), cart, form, orderCode)
	if err != nil {
		log.Printf("CheckoutHandler.initiateCardPayment: gateway initiation failed for %s: %v", orderCode, err)
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("Failed to start the card payment."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

// CheckoutFinish is the widget's finish redirect. The reference is verified
// against the gateway server-side before anything is written; the client-side
// callback alone never places an order.
func (h *CheckoutHandler) CheckoutFinish(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")

	verification, err := h.paymentSvc.Verify(r.Context(), reference)
	if err != nil {
		log.Printf("CheckoutHandler.CheckoutFinish: verification failed for %s: %v", reference, err)
		status := "error"
		msg := "Payment verification failed."
		if errors.Is(err, services.ErrFailedPrecondition) {
			msg = "The payment could not be confirmed by the gateway."
		}
		http.Redirect(w, r, "/checkout?status="+status+"&message="+url.QueryEscape(msg), http.StatusSeeOther)
		return
	}

	if !verification.Success {
		log.Printf("CheckoutHandler.CheckoutFinish: reference %s not settled (status %s); nothing persisted.", reference, verification.Status)
		http.Redirect(w, r, "/checkout?status=info&message="+url.QueryEscape("Payment not completed."), http.StatusSeeOther)
		return
	}

	// An order may already exist if the webhook raced us.
	if existing, err := h.orderRepo.FindByCode(r.Context(), reference); err == nil && existing != nil {
		h.finishCheckoutSession(w, r)
		http.Redirect(w, r, "/checkout/success?order="+url.QueryEscape(reference), http.StatusSeeOther)
		return
	}

	snapshot, err := services.DecodeCheckoutSnapshot(h.sessionStore.GetCheckoutSnapshot(r))
	if err != nil {
		log.Printf("CheckoutHandler.CheckoutFinish: payment %s verified but no checkout snapshot: %v", reference, err)
		http.Redirect(w, r, "/checkout/pending?reference="+url.QueryEscape(reference), http.StatusSeeOther)
		return
	}

	order, err := h.checkoutSvc.PlaceOrder(r.Context(), &snapshot.Cart, &snapshot.Form, reference, verification.Channel, models.PaymentStatusPaid)
	if err != nil {
		// Known partial failure: money moved, order did not. Logged with the
		// reference for manual reconciliation; the visitor lands on the
		// dedicated pending page, never a false success.
		log.Printf("CheckoutHandler.CheckoutFinish: %v: reference %s: %v", services.ErrOrderPersist, reference, err)
		http.Redirect(w, r, "/checkout/pending?reference="+url.QueryEscape(reference), http.StatusSeeOther)
		return
	}

	h.finishCheckoutSession(w, r)
	h.mailer.SendOrderConfirmation(snapshot.Form.Email, order.OrderCode, order.GrandTotal.String())

	http.Redirect(w, r, "/checkout/success?order="+url.QueryEscape(order.OrderCode), http.StatusSeeOther)
}

func (h *CheckoutHandler) finishCheckoutSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearCart(w, r); err != nil {
		log.Printf("CheckoutHandler: failed to clear cart: %v", err)
	}
	if err := h.sessionStore.ClearPendingOrderCode(w, r); err != nil {
		log.Printf("CheckoutHandler: failed to clear pending order code: %v", err)
	}
	if err := h.sessionStore.ClearCheckoutSnapshot(w, r); err != nil {
		log.Printf("CheckoutHandler: failed to clear checkout snapshot: %v", err)
	}
}

// CheckoutSuccess reads the order code from the URL and shows the
// confirmation.
func (h *CheckoutHandler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	orderCode := r.URL.Query().Get("order")

	order, err := h.orderRepo.FindByCode(r.Context(), orderCode)
	if err != nil || order == nil {
		log.Printf("CheckoutHandler.CheckoutSuccess: order %s not found: %v", orderCode, err)
		http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("Order not found."), http.StatusSeeOther)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Order Confirmation",
		"order": order,
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout_success", datas)
}

// CheckoutPending is the dedicated page for a verified payment whose order
// record is still outstanding.
func (h *CheckoutHandler) CheckoutPending(w http.ResponseWriter, r *http.Request) {
	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":     "Payment Received",
		"reference": r.URL.Query().Get("reference"),
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout_pending", datas)
}

type paymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// PaymentNotification is the gateway webhook. The payload is never trusted as
// delivered: the reference is re-verified against the gateway API before any
// status change.
func (h *CheckoutHandler) PaymentNotification(w http.ResponseWriter, r *http.Request) {
	var payload paymentNotification
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	verification, err := h.paymentSvc.Verify(r.Context(), payload.OrderID)
	if err != nil {
		log.Printf("CheckoutHandler.PaymentNotification: verification failed for %s: %v", payload.OrderID, err)
		if errors.Is(err, services.ErrInvalidArgument) {
			http.Error(w, "missing reference", http.StatusBadRequest)
			return
		}
		http.Error(w, "verification failed", http.StatusBadGateway)
		return
	}

	order, err := h.orderRepo.FindByCode(r.Context(), payload.OrderID)
	if err != nil {
		log.Printf("CheckoutHandler.PaymentNotification: lookup failed for %s: %v", payload.OrderID, err)
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}
	if order == nil {
		// The finish redirect has not placed the order yet; acknowledge and
		// let that path do the write.
		log.Printf("CheckoutHandler.PaymentNotification: no order for reference %s (status %s).", payload.OrderID, verification.Status)
		w.WriteHeader(http.StatusOK)
		return
	}

	newStatus := order.PaymentStatus
	switch {
	case verification.Success:
		newStatus = models.PaymentStatusPaid
	case verification.Status == "deny" || verification.Status == "expire" || verification.Status == "cancel":
		newStatus = models.PaymentStatusFailed
	}

	if newStatus != order.PaymentStatus {
		if err := h.orderRepo.UpdatePaymentStatus(r.Context(), order.ID, newStatus); err != nil {
			log.Printf("CheckoutHandler.PaymentNotification: failed to update order %s: %v", order.ID, err)
			http.Error(w, "update failed", http.StatusInternalServerError)
			return
		}
		log.Printf("CheckoutHandler.PaymentNotification: order %s payment status %s -> %s", order.OrderCode, order.PaymentStatus, newStatus)
	}

	w.WriteHeader(http.StatusOK)
}
