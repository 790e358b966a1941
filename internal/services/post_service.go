package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/cache"
)

// Optimized derivatives are resized to the configured dimensions; freshly
// uploaded images keep full quality while replacements are compressed.
const (
	optimizeQualityCreate = 100
	optimizeQualityUpdate = 80
)

const postCachePattern = "posts:*"

// MediaConfig holds the target dimensions for optimized images.
type MediaConfig struct {
	Width  int
	Height int
}

// PostServiceImpl implements domain.PostService: CRUD with taxonomy
// connect-or-create delegated to the repository, plus cache invalidation and
// image-optimize jobs on every write, and cache-aside reads.
type PostServiceImpl struct {
	repo    domain.PostRepository
	cache   domain.Cache
	jobs    domain.JobQueue
	storage domain.FileStorage
	logger  *zap.Logger
	media   MediaConfig
}

// NewPostService creates a new post service.
func NewPostService(
	repo domain.PostRepository,
	cacheStore domain.Cache,
	jobs domain.JobQueue,
	storage domain.FileStorage,
	logger *zap.Logger,
	media MediaConfig,
) domain.PostService {
	return &PostServiceImpl{
		repo:    repo,
		cache:   cacheStore,
		jobs:    jobs,
		storage: storage,
		logger:  logger,
		media:   media,
	}
}

// Create implements domain.PostService. Once the row is committed the call
// succeeds: a lost follow-up job is logged, never rolled back.
func (s *PostServiceImpl) Create(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
	post, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	if in.Image != "" {
		s.enqueueOptimize(ctx, in.Image, optimizeQualityCreate)
	}
	s.invalidateListings(ctx)

	return post, nil
}

// Update implements domain.PostService. Only the author or an admin may
// touch the post. A replacement image queues a fresh optimize job and the
// superseded files are removed best-effort.
func (s *PostServiceImpl) Update(ctx context.Context, id uint, actor *domain.User, in domain.PostInput) (*domain.Post, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(existing, actor); err != nil {
		return nil, err
	}

	post, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	if in.Image != "" {
		if existing.Image != "" && existing.Image != in.Image {
			s.removeImageFiles(existing.Image)
		}
		s.enqueueOptimize(ctx, in.Image, optimizeQualityUpdate)
	}
	s.invalidateListings(ctx)

	return post, nil
}

// Delete implements domain.PostService. The deleted post is returned so the
// caller can echo it.
func (s *PostServiceImpl) Delete(ctx context.Context, id uint, actor *domain.User) (*domain.Post, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(existing, actor); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	if existing.Image != "" {
		s.removeImageFiles(existing.Image)
	}
	s.invalidateListings(ctx)

	return existing, nil
}

// Get implements domain.PostService with a cache-aside read of the full post.
func (s *PostServiceImpl) Get(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	key := cache.Key("posts:", id)
	err := s.cache.GetOrSet(ctx, key, &post, func(ctx context.Context) (any, error) {
		return s.repo.FindWithRelations(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListOffset implements domain.PostService: classic page/limit pagination.
// One extra row is fetched to detect whether a next page exists.
func (s *PostServiceImpl) ListOffset(ctx context.Context, page, limit int) (*domain.PostPage, error) {
	var result domain.PostPage
	key := cache.Key("posts:", struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
	}{page, limit})

	err := s.cache.GetOrSet(ctx, key, &result, func(ctx context.Context) (any, error) {
		summaries, err := s.repo.ListOffset(ctx, domain.PostListOptions{
			Skip: (page - 1) * limit,
			Take: limit + 1,
		})
		if err != nil {
			return nil, err
		}

		hasNext := len(summaries) > limit
		if hasNext {
			summaries = summaries[:limit]
		}
		pageResult := domain.PostPage{
			Posts:       summaries,
			CurrentPage: page,
			HasNextPage: hasNext,
		}
		if page > 1 {
			pageResult.PreviousPage = page - 1
		}
		if hasNext {
			pageResult.NextPage = page + 1
		}
		return &pageResult, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCursor implements domain.PostService: infinite-scroll pagination keyed
// by the last seen post id.
func (s *PostServiceImpl) ListCursor(ctx context.Context, cursor uint, limit int) (*domain.PostFeed, error) {
	var result domain.PostFeed
	key := cache.Key("posts:", struct {
		Cursor uint `json:"cursor"`
		Limit  int  `json:"limit"`
	}{cursor, limit})

	err := s.cache.GetOrSet(ctx, key, &result, func(ctx context.Context) (any, error) {
		summaries, err := s.repo.ListCursor(ctx, domain.PostListOptions{
			Cursor: cursor,
			Take:   limit + 1,
		})
		if err != nil {
			return nil, err
		}

		hasNext := len(summaries) > limit
		if hasNext {
			summaries = summaries[:limit]
		}
		feed := domain.PostFeed{
			Posts:       summaries,
			HasNextPage: hasNext,
		}
		if hasNext && len(summaries) > 0 {
			feed.NextCursor = summaries[len(summaries)-1].ID
		}
		return &feed, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PostServiceImpl) authorizeOwner(post *domain.Post, actor *domain.User) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if actor.ID != post.AuthorID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (s *PostServiceImpl) enqueueOptimize(ctx context.Context, fileName string, quality int) {
	job := domain.ImageOptimizeJob{
		FilePath: s.storage.ImagePath(fileName),
		FileName: fileName,
		Width:    s.media.Width,
		Height:   s.media.Height,
		Quality:  quality,
	}
	if err := s.jobs.EnqueueImageOptimize(ctx, job); err != nil {
		s.logger.Error("failed to enqueue image optimize", zap.String("file", fileName), zap.Error(err))
	}
}

func (s *PostServiceImpl) invalidateListings(ctx context.Context) {
	if err := s.jobs.EnqueueCacheInvalidation(ctx, postCachePattern); err != nil {
		s.logger.Error("failed to enqueue cache invalidation",
			zap.String("pattern", postCachePattern), zap.Error(err))
	}
}

// removeImageFiles drops the stored original and its derivative. A failure
// leaves an orphan on disk, which is not worth failing the request over.
func (s *PostServiceImpl) removeImageFiles(fileName string) {
	if err := s.storage.Remove(fileName); err != nil {
		s.logger.Warn("failed to remove image", zap.String("file", fileName), zap.Error(err))
	}
	if err := s.storage.RemoveOptimized(fileName); err != nil {
		s.logger.Warn("failed to remove optimized image", zap.String("file", fileName), zap.Error(err))
	}
}
