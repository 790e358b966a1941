package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/http/middleware"
	"github.com/you/blogsvc/internal/mocks"
)

type postHandlerFixture struct {
	postSvc *mockPostService
	storage *mocks.MockFileStorage
	router  *gin.Engine
}

// mockPostService records calls; function-field style like the repo mocks.
type mockPostService struct {
	CreateFunc     func(ctx context.Context, in domain.PostInput) (*domain.Post, error)
	UpdateFunc     func(ctx context.Context, id uint, actor *domain.User, in domain.PostInput) (*domain.Post, error)
	DeleteFunc     func(ctx context.Context, id uint, actor *domain.User) (*domain.Post, error)
	GetFunc        func(ctx context.Context, id uint) (*domain.Post, error)
	ListOffsetFunc func(ctx context.Context, page, limit int) (*domain.PostPage, error)
	ListCursorFunc func(ctx context.Context, cursor uint, limit int) (*domain.PostFeed, error)

	CreatedInputs []domain.PostInput
}

func (m *mockPostService) Create(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
	m.CreatedInputs = append(m.CreatedInputs, in)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &domain.Post{ID: 1, Title: in.Title, Image: in.Image, AuthorID: in.AuthorID}, nil
}

func (m *mockPostService) Update(ctx context.Context, id uint, actor *domain.User, in domain.PostInput) (*domain.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, actor, in)
	}
	return &domain.Post{ID: id, Title: in.Title}, nil
}

func (m *mockPostService) Delete(ctx context.Context, id uint, actor *domain.User) (*domain.Post, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, actor)
	}
	return &domain.Post{ID: id}, nil
}

func (m *mockPostService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Post{ID: id}, nil
}

func (m *mockPostService) ListOffset(ctx context.Context, page, limit int) (*domain.PostPage, error) {
	if m.ListOffsetFunc != nil {
		return m.ListOffsetFunc(ctx, page, limit)
	}
	return &domain.PostPage{CurrentPage: page}, nil
}

func (m *mockPostService) ListCursor(ctx context.Context, cursor uint, limit int) (*domain.PostFeed, error) {
	if m.ListCursorFunc != nil {
		return m.ListCursorFunc(ctx, cursor, limit)
	}
	return &domain.PostFeed{}, nil
}

var _ domain.PostService = (*mockPostService)(nil)

func newPostHandlerFixture(t *testing.T, actor *domain.User) *postHandlerFixture {
	t.Helper()
	f := &postHandlerFixture{
		postSvc: &mockPostService{},
		storage: mocks.NewMockFileStorage(),
	}
	dir := t.TempDir()
	f.storage.ImagePathFunc = func(name string) string {
		return filepath.Join(dir, name)
	}

	h := NewPostHandlers(f.postSvc, f.storage, bluemonday.UGCPolicy(), zap.NewNop())
	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ContextUserKey, actor)
		}
	})
	f.router.POST("/posts", h.Create)
	f.router.PATCH("/posts/:id", h.Update)
	f.router.DELETE("/posts/:id", h.Delete)
	f.router.GET("/posts/:id", h.Get)
	f.router.GET("/posts", h.List)
	f.router.GET("/posts/infinite", h.ListInfinite)
	return f
}

type multipartBody struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	fields map[string]string
	order  []string
}

func newMultipartBody() *multipartBody {
	b := &multipartBody{fields: map[string]string{}}
	b.writer = multipart.NewWriter(&b.buf)
	return b
}

// field sets a form field; setting the same name again overrides the value.
func (b *multipartBody) field(name, value string) *multipartBody {
	if _, ok := b.fields[name]; !ok {
		b.order = append(b.order, name)
	}
	b.fields[name] = value
	return b
}

func (b *multipartBody) file(field, name string) *multipartBody {
	fw, _ := b.writer.CreateFormFile(field, name)
	_, _ = fw.Write([]byte("fake image bytes"))
	return b
}

func (b *multipartBody) request(method, path string) *http.Request {
	for _, name := range b.order {
		_ = b.writer.WriteField(name, b.fields[name])
	}
	_ = b.writer.Close()
	req := httptest.NewRequest(method, path, &b.buf)
	req.Header.Set("Content-Type", b.writer.FormDataContentType())
	return req
}

func validPostFields(b *multipartBody) *multipartBody {
	return b.field("title", "hello").
		field("content", "summary").
		field("body", "<p>body</p>").
		field("category", "tech").
		field("type", "article")
}

func TestPostCreateEndpoint(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}

	t.Run("missing image", func(t *testing.T) {
		f := newPostHandlerFixture(t, admin)
		req := validPostFields(newMultipartBody()).request(http.MethodPost, "/posts")

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, f.postSvc.CreatedInputs)
	})

	t.Run("validation failure removes the saved upload", func(t *testing.T) {
		f := newPostHandlerFixture(t, admin)
		req := newMultipartBody().file("image", "a.jpg").request(http.MethodPost, "/posts")

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Len(t, f.storage.Removed, 1, "orphaned upload must be deleted")
	})

	t.Run("creates with the sanitized body and actor id", func(t *testing.T) {
		f := newPostHandlerFixture(t, admin)
		body := validPostFields(newMultipartBody()).
			field("body", `<p>ok</p><script>alert(1)</script>`).
			file("image", "a.jpg")
		req := body.request(http.MethodPost, "/posts")

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, f.postSvc.CreatedInputs, 1)
		in := f.postSvc.CreatedInputs[0]
		assert.Equal(t, uint(1), in.AuthorID)
		assert.NotContains(t, in.Body, "<script>")
		assert.Contains(t, in.Body, "<p>ok</p>")
		assert.NotEmpty(t, in.Image)
	})

	t.Run("service failure removes the new upload", func(t *testing.T) {
		f := newPostHandlerFixture(t, admin)
		f.postSvc.CreateFunc = func(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
			return nil, assert.AnError
		}
		req := validPostFields(newMultipartBody()).file("image", "a.jpg").request(http.MethodPost, "/posts")

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Len(t, f.storage.Removed, 1)
	})
}

func TestPostUpdateEndpoint(t *testing.T) {
	author := &domain.User{ID: 7, Role: domain.RoleAuthor}

	t.Run("forbidden for non-owners", func(t *testing.T) {
		f := newPostHandlerFixture(t, author)
		f.postSvc.UpdateFunc = func(ctx context.Context, id uint, actor *domain.User, in domain.PostInput) (*domain.Post, error) {
			return nil, domain.ErrForbidden
		}
		req := validPostFields(newMultipartBody()).request(http.MethodPatch, "/posts/5")

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Error_Unauthorised")
	})

	t.Run("image part is optional", func(t *testing.T) {
		f := newPostHandlerFixture(t, author)
		var gotImage string
		f.postSvc.UpdateFunc = func(ctx context.Context, id uint, actor *domain.User, in domain.PostInput) (*domain.Post, error) {
			gotImage = in.Image
			return &domain.Post{ID: id}, nil
		}
		req := validPostFields(newMultipartBody()).request(http.MethodPatch, "/posts/5")

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, gotImage)
	})
}

func TestPostReadEndpoints(t *testing.T) {
	t.Run("list defaults to page 1 limit 5", func(t *testing.T) {
		f := newPostHandlerFixture(t, nil)
		var gotPage, gotLimit int
		f.postSvc.ListOffsetFunc = func(ctx context.Context, page, limit int) (*domain.PostPage, error) {
			gotPage, gotLimit = page, limit
			return &domain.PostPage{CurrentPage: page}, nil
		}

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, gotPage)
		assert.Equal(t, 5, gotLimit)
	})

	t.Run("infinite feed passes the cursor through", func(t *testing.T) {
		f := newPostHandlerFixture(t, nil)
		var gotCursor uint
		f.postSvc.ListCursorFunc = func(ctx context.Context, cursor uint, limit int) (*domain.PostFeed, error) {
			gotCursor = cursor
			return &domain.PostFeed{}, nil
		}

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/infinite?cursor=12", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(12), gotCursor)
	})

	t.Run("missing post maps to 404", func(t *testing.T) {
		f := newPostHandlerFixture(t, nil)
		f.postSvc.GetFunc = func(ctx context.Context, id uint) (*domain.Post, error) {
			return nil, domain.ErrModelNotFound
		}

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/99", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Error_NotFound")
	})

	t.Run("non-numeric id maps to 404", func(t *testing.T) {
		f := newPostHandlerFixture(t, nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/abc", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
