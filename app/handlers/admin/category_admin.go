package admin

import (
	"log"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.Categories: failed to load categories: %v", err)
		http.Redirect(w, r, "/admin?status=error&message="+url.QueryEscape("Failed to load categories."), http.StatusSeeOther)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Admin Categories",
		"IsAdminPage": true,
		"categories":  categories,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_categories", datas)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to read form data."), http.StatusSeeOther)
		return
	}

	name := r.PostFormValue("name")
	if name == "" {
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Category name is required."), http.StatusSeeOther)
		return
	}

	categorySlug, err := helpers.UniqueSlug(name, func(s string) (bool, error) {
		return h.categoryRepo.SlugExists(r.Context(), s)
	})
	if err != nil {
		log.Printf("AdminHandler.CreateCategory: failed to derive slug: %v", err)
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to save the category."), http.StatusSeeOther)
		return
	}

	category := &models.Category{ID: uuid.New().String(), Name: name, Slug: categorySlug}
	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		log.Printf("AdminHandler.CreateCategory: failed to create category: %v", err)
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to save the category."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/categories?status=success&message="+url.QueryEscape("Category created."), http.StatusSeeOther)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to read form data."), http.StatusSeeOther)
		return
	}

	category, err := h.categoryRepo.GetByID(r.Context(), id)
	if err != nil {
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Category not found."), http.StatusSeeOther)
		return
	}

	name := r.PostFormValue("name")
	if name == "" {
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Category name is required."), http.StatusSeeOther)
		return
	}

	category.Name = name
	if err := h.categoryRepo.Update(r.Context(), category); err != nil {
		log.Printf("AdminHandler.UpdateCategory: failed to update category %s: %v", id, err)
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to save the category."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/categories?status=success&message="+url.QueryEscape("Category updated."), http.StatusSeeOther)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		log.Printf("AdminHandler.DeleteCategory: failed to delete category %s: %v", id, err)
		http.Redirect(w, r, "/admin/categories?status=error&message="+url.QueryEscape("Failed to delete the category."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/categories?status=success&message="+url.QueryEscape("Category deleted."), http.StatusSeeOther)
}
