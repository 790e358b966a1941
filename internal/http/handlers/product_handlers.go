package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/storage"
)

// ProductHandlers handles the product CRUD and read endpoints.
type ProductHandlers struct {
	productSvc domain.ProductService
	storage    domain.FileStorage
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
}

// NewProductHandlers creates new product handlers.
func NewProductHandlers(productSvc domain.ProductService, fileStorage domain.FileStorage, sanitizer *bluemonday.Policy, logger *zap.Logger) *ProductHandlers {
	return &ProductHandlers{
		productSvc: productSvc,
		storage:    fileStorage,
		sanitizer:  sanitizer,
		logger:     logger,
	}
}

// ProductForm is the multipart body of a product mutation; images arrive as
// repeated "images" file parts.
type ProductForm struct {
	Name        string   `form:"name" binding:"required"`
	Description string   `form:"description" binding:"required"`
	Price       float64  `form:"price" binding:"required,gt=0"`
	Discount    float64  `form:"discount" binding:"gte=0"`
	Inventory   int      `form:"inventory" binding:"required,gte=0"`
	Category    string   `form:"category" binding:"required"`
	Type        string   `form:"type" binding:"required"`
	Tags        []string `form:"tags"`
}

// Create handles POST /admin/products.
func (h *ProductHandlers) Create(c *gin.Context) {
	files, err := h.formImages(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(files) == 0 {
		respondError(c, domain.ErrFileMissing)
		return
	}

	stored, err := h.saveUploads(c, files)
	if err != nil {
		h.discardUploads(stored)
		respondError(c, err)
		return
	}

	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.discardUploads(stored)
		respondInvalid(c, err)
		return
	}

	product, err := h.productSvc.Create(c.Request.Context(), h.productInput(form, stored))
	if err != nil {
		h.discardUploads(stored)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "product created", "product": product})
}

// Update handles PATCH /admin/products/:id. An empty image set keeps the
// stored rows; a non-empty one replaces them.
func (h *ProductHandlers) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		respondError(c, domain.ErrModelNotFound)
		return
	}

	files, err := h.formImages(c)
	if err != nil {
		respondError(c, err)
		return
	}
	stored, err := h.saveUploads(c, files)
	if err != nil {
		h.discardUploads(stored)
		respondError(c, err)
		return
	}

	var form ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.discardUploads(stored)
		respondInvalid(c, err)
		return
	}

	product, err := h.productSvc.Update(c.Request.Context(), id, h.productInput(form, stored))
	if err != nil {
		h.discardUploads(stored)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product updated", "product": product})
}

// Delete handles DELETE /admin/products/:id.
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		respondError(c, domain.ErrModelNotFound)
		return
	}

	product, err := h.productSvc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted", "product": product})
}

// Get handles GET /products/:id.
func (h *ProductHandlers) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		respondError(c, domain.ErrModelNotFound)
		return
	}

	product, err := h.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// List handles GET /products with cursor pagination and optional
// category/type id filters.
func (h *ProductHandlers) List(c *gin.Context) {
	opts := domain.ProductListOptions{
		Take:       queryInt(c, "limit", 10),
		Cursor:     queryUint(c, "cursor"),
		Categories: queryUints(c, "category"),
		Types:      queryUints(c, "type"),
	}

	result, err := h.productSvc.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ProductHandlers) productInput(form ProductForm, imagePaths []string) domain.ProductInput {
	return domain.ProductInput{
		Name:        form.Name,
		Description: h.sanitizer.Sanitize(form.Description),
		Price:       form.Price,
		Discount:    form.Discount,
		Inventory:   form.Inventory,
		Category:    form.Category,
		Type:        form.Type,
		Tags:        form.Tags,
		ImagePaths:  imagePaths,
	}
}

func (h *ProductHandlers) formImages(c *gin.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, domain.ErrFileMissing
	}
	return form.File["images"], nil
}

func (h *ProductHandlers) saveUploads(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	stored := make([]string, 0, len(files))
	for _, file := range files {
		name := storage.UniqueName(file.Filename)
		if err := c.SaveUploadedFile(file, h.storage.ImagePath(name)); err != nil {
			return stored, err
		}
		stored = append(stored, name)
	}
	return stored, nil
}

func (h *ProductHandlers) discardUploads(stored []string) {
	for _, name := range stored {
		if err := h.storage.Remove(name); err != nil {
			h.logger.Warn("failed to remove upload", zap.String("file", name), zap.Error(err))
		}
	}
}
