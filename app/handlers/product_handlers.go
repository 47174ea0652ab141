package handlers

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/breadcrumb"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

const relatedProductCount = 4

type ProductHandler struct {
	repo         repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	render       *render.Render
}

func NewProductHandler(p repositories.ProductRepositoryImpl, c repositories.CategoryRepositoryImpl, r *render.Render) *ProductHandler {
	return &ProductHandler{p, c, r}
}

func (h *ProductHandler) Products(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit := 9
	offset := (page - 1) * limit

	var (
		products []models.Product
		total    int64
		err      error
	)

	switch {
	case query != "":
		products, total, err = h.repo.SearchProductsPaginated(r.Context(), query, limit, offset)
	case slug != "":
		products, total, err = h.repo.GetByCategorySlugPaginated(r.Context(), slug, limit, offset)
	default:
		products, total, err = h.repo.GetPaginated(r.Context(), limit, offset)
	}
	if err != nil {
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Products",
		"products":    products,
		"categories":  categories,
		"current":     page,
		"totalPages":  int((total + int64(limit) - 1) / int64(limit)),
		"category":    slug,
		"searchQuery": query,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Home", URL: "/"},
			{Name: "Products", URL: "/products"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "products", datas)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	productSlug := mux.Vars(r)["slug"]
	if productSlug == "" {
		http.NotFound(w, r)
		return
	}

	product, err := h.repo.GetBySlug(r.Context(), productSlug)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	related := h.randomPicks(r, []string{product.ID})

	breadcrumbs := []breadcrumb.Breadcrumb{
		{Name: "Home", URL: "/"},
		{Name: "Products", URL: "/products"},
	}
	if product.Category.ID != "" {
		breadcrumbs = append(breadcrumbs, breadcrumb.Breadcrumb{
			Name: product.Category.Name,
			URL:  "/products?category=" + product.Category.Slug,
		})
	}
	breadcrumbs = append(breadcrumbs, breadcrumb.Breadcrumb{Name: product.Name, URL: "/products/" + product.Slug})

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       product.Name,
		"product":     *product,
		"related":     related,
		"Breadcrumbs": breadcrumbs,
	})

	_ = h.render.HTML(w, http.StatusOK, "product", datas)
}

// RandomProducts serves up to 4 pseudo-randomly picked products, excluding
// the comma-separated ids in the exclude parameter.
func (h *ProductHandler) RandomProducts(w http.ResponseWriter, r *http.Request) {
	var exclude []string
	if raw := r.URL.Query().Get("exclude"); raw != "" {
		exclude = strings.Split(raw, ",")
	}

	picks := h.randomPicks(r, exclude)
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"products": picks})
}

func (h *ProductHandler) randomPicks(r *http.Request, excludeIDs []string) []models.Product {
	products, err := h.repo.GetAll(r.Context())
	if err != nil {
		log.Printf("ProductHandler.randomPicks: failed to load catalog: %v", err)
		return nil
	}

	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	var pool []models.Product
	for _, p := range products {
		if !excluded[p.ID] {
			pool = append(pool, p)
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if len(pool) > relatedProductCount {
		pool = pool[:relatedProductCount]
	}
	return pool
}
