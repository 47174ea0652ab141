package admin

import (
	"log"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderRepo.GetAllOrders(r.Context())
	if err != nil {
		log.Printf("AdminHandler.Orders: failed to load orders: %v", err)
		http.Redirect(w, r, "/admin?status=error&message="+url.QueryEscape("Failed to load orders."), http.StatusSeeOther)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Admin Orders",
		"IsAdminPage": true,
		"orders":      orders,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_orders", datas)
}

func (h *AdminHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.orderRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("AdminHandler.OrderDetail: order %s not found: %v", id, err)
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Order not found."), http.StatusSeeOther)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Order " + order.OrderCode,
		"IsAdminPage": true,
		"order":       order,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_order_detail", datas)
}

func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.orderRepo.Delete(r.Context(), id); err != nil {
		log.Printf("AdminHandler.DeleteOrder: failed to delete order %s: %v", id, err)
		http.Redirect(w, r, "/admin/orders?status=error&message="+url.QueryEscape("Failed to delete the order."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/orders?status=success&message="+url.QueryEscape("Order deleted."), http.StatusSeeOther)
}
