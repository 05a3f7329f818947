package transport

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"noviqueen/internal/middleware"
	"noviqueen/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// productForm carries the validated multipart fields of a product write.
type productForm struct {
	Name        string  `validate:"required"`
	Description string
	Price       float64 `validate:"gte=0"`
	Category    string  `validate:"required"`
}

// ProductResponse wraps a product write result.
type ProductResponse struct {
	Success bool        `json:"success"`
	Product interface{} `json:"product"`
}

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	products service.ProductService
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// RegisterRoutes registers all product routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns products, newest first. ?category= and ?featured=true
// narrow the listing.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	featured := r.URL.Query().Get("featured") == "true"

	products, err := h.products.List(r.Context(), category, featured)
	if err != nil {
		respondError(w, h.logger, err, "failed to fetch products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns one product by id.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create builds a product from multipart form fields plus an optional
// image file (or external imageUrl).
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.products.Create(r.Context(), *input)
	if err != nil {
		respondError(w, h.logger, err, "failed to create product")
		return
	}

	h.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
	)
	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{Success: true, Product: product})
}

// Update rewrites a product; a new image file replaces (and then
// deletes) the previous stored one.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeProductForm(w, r)
	if !ok {
		return
	}

	product, err := h.products.Update(r.Context(), id, *input)
	if err != nil {
		respondError(w, h.logger, err, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductResponse{Success: true, Product: product})
}

// Delete removes a product and best-effort cleans up its stored image.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		respondError(w, h.logger, err, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.Int64("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// decodeProductForm parses and validates the multipart (or urlencoded)
// product payload. Returns ok=false after writing the error response.
func (h *ProductHandler) decodeProductForm(w http.ResponseWriter, r *http.Request) (*service.ProductInput, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
			return nil, false
		}
	} else {
		if err := r.ParseForm(); err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid form body")
			return nil, false
		}
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "price must be a number")
		return nil, false
	}

	form := productForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    strings.TrimSpace(r.FormValue("category")),
	}

	if err := middleware.ValidateRequest(form); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product fields")
		return nil, false
	}

	input := &service.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		InStock:     formBool(r, "inStock"),
		Featured:    formBool(r, "featured"),
		ImageURL:    r.FormValue("imageUrl"),
	}

	upload, ok := h.readImageFile(w, r)
	if !ok {
		return nil, false
	}
	input.Upload = upload

	return input, true
}

// readImageFile pulls the optional "image" file out of the multipart
// form. Size and MIME enforcement happen in the image store.
func (h *ProductHandler) readImageFile(w http.ResponseWriter, r *http.Request) (*service.ImageUpload, bool) {
	if r.MultipartForm == nil {
		return nil, true
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, true
	}
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid image file")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "failed to read image file")
		return nil, false
	}

	return &service.ImageUpload{
		Data:     data,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}, true
}

// parseID extracts the numeric {id} route parameter. Returns ok=false
// after writing a 400 response.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// formBool reads an optional form boolean. Nil means the field was not
// sent (or was unparseable), so the service applies its own fallback:
// create defaults, or the stored value on update.
func formBool(r *http.Request, key string) *bool {
	value := r.FormValue(key)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}
