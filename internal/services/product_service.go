package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
	"github.com/you/blogsvc/internal/infrastructure/cache"
)

const productCachePattern = "products:*"

// ProductServiceImpl implements domain.ProductService. Same write workflow
// as posts, with one optimize job per attached image.
type ProductServiceImpl struct {
	repo    domain.ProductRepository
	cache   domain.Cache
	jobs    domain.JobQueue
	storage domain.FileStorage
	logger  *zap.Logger
	media   MediaConfig
}

// NewProductService creates a new product service.
func NewProductService(
	repo domain.ProductRepository,
	cacheStore domain.Cache,
	jobs domain.JobQueue,
	storage domain.FileStorage,
	logger *zap.Logger,
	media MediaConfig,
) domain.ProductService {
	return &ProductServiceImpl{
		repo:    repo,
		cache:   cacheStore,
		jobs:    jobs,
		storage: storage,
		logger:  logger,
		media:   media,
	}
}

// Create implements domain.ProductService. Once the row is committed the call
// succeeds: a lost follow-up job is logged, never rolled back.
func (s *ProductServiceImpl) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	product, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	for _, name := range in.ImagePaths {
		s.enqueueProductOptimize(ctx, name, optimizeQualityCreate)
	}
	s.invalidateProductListings(ctx)

	return product, nil
}

// Update implements domain.ProductService. A non-empty image set replaces
// the stored rows; the superseded files are removed best-effort.
func (s *ProductServiceImpl) Update(ctx context.Context, id uint, in domain.ProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	if len(in.ImagePaths) > 0 {
		for _, img := range existing.Images {
			s.removeProductImage(img.Path)
		}
		for _, name := range in.ImagePaths {
			s.enqueueProductOptimize(ctx, name, optimizeQualityUpdate)
		}
	}
	s.invalidateProductListings(ctx)

	return product, nil
}

// Delete implements domain.ProductService.
func (s *ProductServiceImpl) Delete(ctx context.Context, id uint) (*domain.Product, error) {
	existing, err := s.repo.FindWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	for _, img := range existing.Images {
		s.removeProductImage(img.Path)
	}
	s.invalidateProductListings(ctx)

	return existing, nil
}

// Get implements domain.ProductService with a cache-aside read.
func (s *ProductServiceImpl) Get(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	key := cache.Key("product:", id)
	err := s.cache.GetOrSet(ctx, key, &product, func(ctx context.Context) (any, error) {
		return s.repo.FindWithRelations(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List implements domain.ProductService: cursor pagination over id
// descending, with optional taxonomy filters baked into the cache key.
func (s *ProductServiceImpl) List(ctx context.Context, opts domain.ProductListOptions) (*domain.ProductFeed, error) {
	var result domain.ProductFeed
	key := cache.Key("products:", opts)

	limit := opts.Take
	repoOpts := opts
	repoOpts.Take = limit + 1

	err := s.cache.GetOrSet(ctx, key, &result, func(ctx context.Context) (any, error) {
		summaries, err := s.repo.ListCursor(ctx, repoOpts)
		if err != nil {
			return nil, err
		}

		hasNext := len(summaries) > limit
		if hasNext {
			summaries = summaries[:limit]
		}
		feed := domain.ProductFeed{
			Products:    summaries,
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

func (s *ProductServiceImpl) enqueueProductOptimize(ctx context.Context, fileName string, quality int) {
	err := s.jobs.EnqueueImageOptimize(ctx, domain.ImageOptimizeJob{
		FilePath: s.storage.ImagePath(fileName),
		FileName: fileName,
		Width:    s.media.Width,
		Height:   s.media.Height,
		Quality:  quality,
	})
	if err != nil {
		s.logger.Error("failed to enqueue image optimize", zap.String("file", fileName), zap.Error(err))
	}
}

func (s *ProductServiceImpl) invalidateProductListings(ctx context.Context) {
	if err := s.jobs.EnqueueCacheInvalidation(ctx, productCachePattern); err != nil {
		s.logger.Error("failed to enqueue cache invalidation",
			zap.String("pattern", productCachePattern), zap.Error(err))
	}
}

func (s *ProductServiceImpl) removeProductImage(fileName string) {
	if err := s.storage.Remove(fileName); err != nil {
		s.logger.Warn("failed to remove image", zap.String("file", fileName), zap.Error(err))
	}
	if err := s.storage.RemoveOptimized(fileName); err != nil {
		s.logger.Warn("failed to remove optimized image", zap.String("file", fileName), zap.Error(err))
	}
}
