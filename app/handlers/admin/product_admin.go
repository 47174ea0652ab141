package admin

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const maxUploadMemory = 32 << 20

// Products lists the catalog for the admin panel.
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetProducts(r.Context())
	if err != nil {
		log.Printf("AdminHandler.Products: failed to load products: %v", err)
		http.Redirect(w, r, "/admin?status=error&message="+url.QueryEscape("Failed to load products."), http.StatusSeeOther)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Admin Products",
		"IsAdminPage": true,
		"products":    products,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_products", datas)
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.AddProductPage: failed to load categories: %v", err)
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Add Product",
		"IsAdminPage": true,
		"categories":  categories,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_product_form", datas)
}

type productFormValues struct {
	name        string
	description string
	price       decimal.Decimal
	oldPrice    decimal.Decimal
	categoryID  string
	featured    bool
	sizes       []models.ProductSize
}

// parseProductForm reads the shared add/edit fields. Sizes arrive as the
// parallel form arrays "sizes" and "stocks".
func parseProductForm(r *http.Request) (*productFormValues, string) {
	values := &productFormValues{
		name:        r.PostFormValue("name"),
		description: r.PostFormValue("description"),
		categoryID:  r.PostFormValue("category_id"),
		featured:    r.PostFormValue("featured") == "on",
	}
	if values.name == "" {
		return nil, "Product name is required."
	}

	price, err := decimal.NewFromString(r.PostFormValue("price"))
	if err != nil || price.IsNegative() {
		return nil, "Price must be a valid amount."
	}
	values.price = price

	if raw := r.PostFormValue("old_price"); raw != "" {
		oldPrice, err := decimal.NewFromString(raw)
		if err != nil || oldPrice.IsNegative() {
			return nil, "Old price must be a valid amount."
		}
		values.oldPrice = oldPrice
	}

	sizeNames := r.PostForm["sizes"]
	stockValues := r.PostForm["stocks"]
	if len(sizeNames) != len(stockValues) {
		return nil, "Sizes and stocks do not match up."
	}
	for i, sizeName := range sizeNames {
		if sizeName == "" {
			continue
		}
		stock, err := strconv.Atoi(stockValues[i])
		if err != nil || stock < 0 {
			return nil, fmt.Sprintf("Stock for size %s must be a non-negative number.", sizeName)
		}
		values.sizes = append(values.sizes, models.ProductSize{Size: sizeName, Stock: stock})
	}
	if len(values.sizes) == 0 {
		return nil, "At least one size is required."
	}

	return values, ""
}

// uploadFormImages streams every file in the "images" field through the blob
// store. A single bad file never fails the batch.
func (h *AdminHandler) uploadFormImages(r *http.Request) ([]services.UploadResult, []services.UploadFailure) {
	form := r.MultipartForm
	if form == nil || len(form.File["images"]) == 0 {
		return nil, nil
	}

	var files []services.UploadFile
	var opened []services.UploadFailure
	for i, header := range form.File["images"] {
		f, err := header.Open()
		if err != nil {
			opened = append(opened, services.UploadFailure{Index: i, Name: header.Filename, Err: err})
			continue
		}
		defer f.Close()
		files = append(files, services.UploadFile{Name: header.Filename, Reader: f})
	}

	uploaded, failed := h.storage.SaveBatch(r.Context(), files)
	return uploaded, append(opened, failed...)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Redirect(w, r, "/admin/products/add?status=error&message="+url.QueryEscape("Failed to read form data."), http.StatusSeeOther)
		return
	}

	values, formErr := parseProductForm(r)
	if formErr != "" {
		http.Redirect(w, r, "/admin/products/add?status=error&message="+url.QueryEscape(formErr), http.StatusSeeOther)
		return
	}

	uploaded, failed := h.uploadFormImages(r)
	if len(uploaded) == 0 {
		http.Redirect(w, r, "/admin/products/add?status=error&message="+url.QueryEscape("At least one product image is required."), http.StatusSeeOther)
		return
	}

	productSlug, err := helpers.UniqueSlug(values.name, func(s string) (bool, error) {
		return h.productRepo.SlugExists(r.Context(), s)
	})
	if err != nil {
		log.Printf("AdminHandler.CreateProduct: failed to derive slug: %v", err)
		http.Redirect(w, r, "/admin/products/add?status=error&message="+url.QueryEscape("Failed to save the product."), http.StatusSeeOther)
		return
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        values.name,
		Slug:        productSlug,
		Description: values.description,
		Price:       values.price,
		OldPrice:    values.oldPrice,
		ImagePath:   uploaded[0].URL,
		CategoryID:  values.categoryID,
		Featured:    values.featured,
	}
	if err := h.productRepo.Create(r.Context(), product); err != nil {
		log.Printf("AdminHandler.CreateProduct: failed to create product: %v", err)
		http.Redirect(w, r, "/admin/products/add?status=error&message="+url.QueryEscape("Failed to save the product."), http.StatusSeeOther)
		return
	}

	for _, result := range uploaded {
		image := &models.ProductImage{ID: uuid.New().String(), ProductID: product.ID, URL: result.URL}
		if err := h.productRepo.AddImage(r.Context(), image); err != nil {
			log.Printf("AdminHandler.CreateProduct: failed to record image %s: %v", result.Name, err)
		}
	}

	if err := h.productRepo.ReplaceSizes(r.Context(), product.ID, values.sizes); err != nil {
		log.Printf("AdminHandler.CreateProduct: failed to save sizes for %s: %v", product.ID, err)
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Product saved but sizes failed to save."), http.StatusSeeOther)
		return
	}

	message := "Product created."
	if len(failed) > 0 {
		message = fmt.Sprintf("Product created; %d image(s) failed to upload.", len(failed))
	}
	http.Redirect(w, r, "/admin/products?status=success&message="+url.QueryEscape(message), http.StatusSeeOther)
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		log.Printf("AdminHandler.EditProductPage: product %s not found: %v", id, err)
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AdminHandler.EditProductPage: failed to load categories: %v", err)
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Edit Product",
		"IsAdminPage": true,
		"product":     product,
		"categories":  categories,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_product_form", datas)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	backURL := "/admin/products/" + id + "/edit"

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Redirect(w, r, backURL+"?status=error&message="+url.QueryEscape("Failed to read form data."), http.StatusSeeOther)
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}

	values, formErr := parseProductForm(r)
	if formErr != "" {
		http.Redirect(w, r, backURL+"?status=error&message="+url.QueryEscape(formErr), http.StatusSeeOther)
		return
	}

	uploaded, failed := h.uploadFormImages(r)
	for _, result := range uploaded {
		image := &models.ProductImage{ID: uuid.New().String(), ProductID: product.ID, URL: result.URL}
		if err := h.productRepo.AddImage(r.Context(), image); err != nil {
			log.Printf("AdminHandler.UpdateProduct: failed to record image %s: %v", result.Name, err)
		}
	}
	if product.ImagePath == "" && len(uploaded) > 0 {
		product.ImagePath = uploaded[0].URL
	}

	product.Name = values.name
	product.Description = values.description
	product.Price = values.price
	product.OldPrice = values.oldPrice
	product.CategoryID = values.categoryID
	product.Featured = values.featured

	if err := h.productRepo.Update(r.Context(), product); err != nil {
		log.Printf("AdminHandler.UpdateProduct: failed to update product %s: %v", id, err)
		http.Redirect(w, r, backURL+"?status=error&message="+url.QueryEscape("Failed to save the product."), http.StatusSeeOther)
		return
	}
	if err := h.productRepo.ReplaceSizes(r.Context(), product.ID, values.sizes); err != nil {
		log.Printf("AdminHandler.UpdateProduct: failed to save sizes for %s: %v", id, err)
		http.Redirect(w, r, backURL+"?status=error&message="+url.QueryEscape("Product saved but sizes failed to save."), http.StatusSeeOther)
		return
	}

	message := "Product updated."
	if len(failed) > 0 {
		message = fmt.Sprintf("Product updated; %d image(s) failed to upload.", len(failed))
	}
	http.Redirect(w, r, "/admin/products?status=success&message="+url.QueryEscape(message), http.StatusSeeOther)
}

// DeleteProduct removes the catalog row and best-effort deletes its blobs.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Product not found."), http.StatusSeeOther)
		return
	}

	for _, image := range product.Images {
		objectPath, err := h.storage.PathFromURL(image.URL)
		if err != nil {
			log.Printf("AdminHandler.DeleteProduct: unrecognized image URL %s: %v", image.URL, err)
			continue
		}
		if err := h.storage.Delete(r.Context(), objectPath); err != nil {
			log.Printf("AdminHandler.DeleteProduct: failed to delete blob %s: %v", objectPath, err)
		}
	}

	if err := h.productRepo.Delete(r.Context(), id); err != nil {
		log.Printf("AdminHandler.DeleteProduct: failed to delete product %s: %v", id, err)
		http.Redirect(w, r, "/admin/products?status=error&message="+url.QueryEscape("Failed to delete the product."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/products?status=success&message="+url.QueryEscape("Product deleted."), http.StatusSeeOther)
}

type uploadedImageJSON struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type failedImageJSON struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadImages is the async image endpoint used by the product form. The
// response reports every file individually so a partial batch still lands.
func (h *AdminHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read upload"})
		return
	}

	product, err := h.productRepo.GetByID(r.Context(), id)
	if err != nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}

	uploaded, failed := h.uploadFormImages(r)
	uploadedJSON := make([]uploadedImageJSON, 0, len(uploaded))
	for _, result := range uploaded {
		image := &models.ProductImage{ID: uuid.New().String(), ProductID: product.ID, URL: result.URL}
		if err := h.productRepo.AddImage(r.Context(), image); err != nil {
			log.Printf("AdminHandler.UploadImages: failed to record image %s: %v", result.Name, err)
			failed = append(failed, services.UploadFailure{Index: result.Index, Name: result.Name, Err: err})
			continue
		}
		uploadedJSON = append(uploadedJSON, uploadedImageJSON{Index: result.Index, Name: result.Name, URL: result.URL})
	}

	failedJSON := make([]failedImageJSON, 0, len(failed))
	for _, failure := range failed {
		failedJSON = append(failedJSON, failedImageJSON{Index: failure.Index, Name: failure.Name, Error: failure.Err.Error()})
	}

	status := http.StatusOK
	if len(uploadedJSON) == 0 && len(failedJSON) > 0 {
		status = http.StatusBadGateway
	}
	_ = h.render.JSON(w, status, map[string]interface{}{
		"uploaded": uploadedJSON,
		"failed":   failedJSON,
	})
}

// DeleteImage drops one product image; the blob delete is best-effort.
func (h *AdminHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, imageID := vars["id"], vars["imageID"]
	backURL := "/admin/products/" + productID + "/edit"

	image, err := h.productRepo.GetImageByID(r.Context(), imageID)
	if err != nil {
		http.Redirect(w, r, backURL+"?status=error&message="+url.QueryEscape("Image not found."), http.StatusSeeOther)
		return
	}

	if objectPath, err := h.storage.PathFromURL(image.URL); err != nil {
		log.Printf("AdminHandler.DeleteImage: unrecognized image URL %s: %v", image.URL, err)
	} else if err := h.storage.Delete(r.Context(), objectPath); err != nil {
		log.Printf("AdminHandler.DeleteImage: failed to delete blob %s: %v", objectPath, err)
	}

	if err := h.productRepo.DeleteImage(r.Context(), imageID); err != nil {
		log.Printf("AdminHandler.DeleteImage: failed to delete image %s: %v", imageID, err)
		http.Redirect(w, r, backURL+"?status=error&message="+url.QueryEscape("Failed to delete the image."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, backURL+"?status=success&message="+url.QueryEscape("Image deleted."), http.StatusSeeOther)
}
