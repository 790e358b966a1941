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

// PostHandlers handles the post CRUD and read endpoints.
type PostHandlers struct {
	postSvc   domain.PostService
	storage   domain.FileStorage
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// NewPostHandlers creates new post handlers.
func NewPostHandlers(postSvc domain.PostService, fileStorage domain.FileStorage, sanitizer *bluemonday.Policy, logger *zap.Logger) *PostHandlers {
	return &PostHandlers{
		postSvc:   postSvc,
		storage:   fileStorage,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// PostForm is the multipart body of a post mutation; the image arrives as
// the "image" file part.
type PostForm struct {
	Title    string   `form:"title" binding:"required"`
	Content  string   `form:"content" binding:"required"`
	Body     string   `form:"body" binding:"required"`
	Category string   `form:"category" binding:"required"`
	Type     string   `form:"type" binding:"required"`
	Tags     []string `form:"tags"`
}

// Create handles POST /admin/posts.
func (h *PostHandlers) Create(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, domain.ErrFileMissing)
		return
	}
	stored, err := h.saveUpload(c, file)
	if err != nil {
		respondError(c, err)
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.discardUpload(stored)
		respondInvalid(c, err)
		return
	}

	actor := currentUser(c)
	if actor == nil {
		h.discardUpload(stored)
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	post, err := h.postSvc.Create(c.Request.Context(), h.postInput(form, stored, actor.ID))
	if err != nil {
		h.discardUpload(stored)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "post created", "post": post})
}

// Update handles PATCH /admin/posts/:id. The image part is optional; when
// absent the stored file is kept.
func (h *PostHandlers) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		respondError(c, domain.ErrModelNotFound)
		return
	}

	var stored string
	if file, err := c.FormFile("image"); err == nil {
		stored, err = h.saveUpload(c, file)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.discardUpload(stored)
		respondInvalid(c, err)
		return
	}

	post, err := h.postSvc.Update(c.Request.Context(), id, currentUser(c), h.postInput(form, stored, 0))
	if err != nil {
		h.discardUpload(stored)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post updated", "post": post})
}

// Delete handles DELETE /admin/posts/:id.
func (h *PostHandlers) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		respondError(c, domain.ErrModelNotFound)
		return
	}

	post, err := h.postSvc.Delete(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted", "post": post})
}

// Get handles GET /posts/:id.
func (h *PostHandlers) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		respondError(c, domain.ErrModelNotFound)
		return
	}

	post, err := h.postSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// List handles GET /posts with page/limit pagination.
func (h *PostHandlers) List(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 5)

	result, err := h.postSvc.ListOffset(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListInfinite handles GET /posts/infinite with cursor pagination.
func (h *PostHandlers) ListInfinite(c *gin.Context) {
	cursor := queryUint(c, "cursor")
	limit := queryInt(c, "limit", 5)

	result, err := h.postSvc.ListCursor(c.Request.Context(), cursor, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PostHandlers) postInput(form PostForm, image string, authorID uint) domain.PostInput {
	return domain.PostInput{
		Title:    form.Title,
		Content:  form.Content,
		Body:     h.sanitizer.Sanitize(form.Body),
		Image:    image,
		Category: form.Category,
		Type:     form.Type,
		Tags:     form.Tags,
		AuthorID: authorID,
	}
}

func (h *PostHandlers) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	stored := storage.UniqueName(file.Filename)
	if err := c.SaveUploadedFile(file, h.storage.ImagePath(stored)); err != nil {
		return "", err
	}
	return stored, nil
}

// discardUpload removes a file saved for a request that then failed.
func (h *PostHandlers) discardUpload(stored string) {
	if stored == "" {
		return
	}
	if err := h.storage.Remove(stored); err != nil {
		h.logger.Warn("failed to remove upload", zap.String("file", stored), zap.Error(err))
	}
}
