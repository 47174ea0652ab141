package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render       *render.Render
	validate     *validator.Validate
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	orderRepo    repositories.OrderRepository
	storage      *services.FileStorage
}

func NewAdminHandler(
	render *render.Render,
	validate *validator.Validate,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	orderRepo repositories.OrderRepository,
	storage *services.FileStorage,
) *AdminHandler {
	return &AdminHandler{
		render:       render,
		validate:     validate,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		storage:      storage,
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	productCount, err := h.productRepo.CountProducts(r.Context())
	if err != nil {
		log.Printf("AdminHandler.Dashboard: failed to count products: %v", err)
	}
	orderCount, err := h.orderRepo.CountOrders(r.Context())
	if err != nil {
		log.Printf("AdminHandler.Dashboard: failed to count orders: %v", err)
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":        "Admin Dashboard",
		"IsAdminPage":  true,
		"productCount": productCount,
		"orderCount":   orderCount,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_dashboard", datas)
}
