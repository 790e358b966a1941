package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/blogsvc/domain"
)

// PostRepositoryImpl implements domain.PostRepository using GORM.
type PostRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) domain.PostRepository {
	return &PostRepositoryImpl{db: db}
}

// Create implements domain.PostRepository. Category, type and tags are
// connected-or-created by name inside one transaction.
func (r *PostRepositoryImpl) Create(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
	var created DBPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := upsertCategory(tx, in.Category)
		if err != nil {
			return err
		}
		typ, err := upsertType(tx, in.Type)
		if err != nil {
			return err
		}
		tags, err := upsertTags(tx, in.Tags)
		if err != nil {
			return err
		}

		post := DBPost{
			Title:      in.Title,
			Content:    in.Content,
			Body:       in.Body,
			Image:      in.Image,
			AuthorID:   in.AuthorID,
			CategoryID: cat.ID,
			TypeID:     typ.ID,
			Tags:       tags,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		created = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return postToDomain(&created), nil
}

// Update implements domain.PostRepository. An empty Image keeps the stored
// file name; a non-empty tag list replaces the existing links.
func (r *PostRepositoryImpl) Update(ctx context.Context, id uint, in domain.PostInput) (*domain.Post, error) {
	var updated DBPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post DBPost
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrModelNotFound
			}
			return err
		}

		cat, err := upsertCategory(tx, in.Category)
		if err != nil {
			return err
		}
		typ, err := upsertType(tx, in.Type)
		if err != nil {
			return err
		}

		post.Title = in.Title
		post.Content = in.Content
		post.Body = in.Body
		post.CategoryID = cat.ID
		post.TypeID = typ.ID
		if in.Image != "" {
			post.Image = in.Image
		}
		if err := tx.Save(&post).Error; err != nil {
			return err
		}

		if len(in.Tags) > 0 {
			tags, err := upsertTags(tx, in.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return postToDomain(&updated), nil
}

// Delete implements domain.PostRepository.
func (r *PostRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post DBPost
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrModelNotFound
			}
			return err
		}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// FindByID implements domain.PostRepository. Returns the bare row without
// resolving taxonomy names.
func (r *PostRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post DBPost
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrModelNotFound
		}
		return nil, err
	}
	return postToDomain(&post), nil
}

// FindWithRelations implements domain.PostRepository.
func (r *PostRepositoryImpl) FindWithRelations(ctx context.Context, id uint) (*domain.Post, error) {
	var post DBPost
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Type").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrModelNotFound
		}
		return nil, err
	}
	return postToDomain(&post), nil
}

// ListOffset implements domain.PostRepository: newest first, skip/take.
func (r *PostRepositoryImpl) ListOffset(ctx context.Context, opts domain.PostListOptions) ([]domain.PostSummary, error) {
	var posts []DBPost
	err := r.db.WithContext(ctx).
		Select("id", "title", "content", "image", "author_id", "updated_at").
		Order("updated_at desc").
		Offset(opts.Skip).
		Limit(opts.Take).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return postSummaries(posts), nil
}

// ListCursor implements domain.PostRepository: keyset pagination ascending
// by id, strictly after the cursor.
func (r *PostRepositoryImpl) ListCursor(ctx context.Context, opts domain.PostListOptions) ([]domain.PostSummary, error) {
	q := r.db.WithContext(ctx).
		Select("id", "title", "content", "image", "author_id", "updated_at").
		Order("id asc").
		Limit(opts.Take)
	if opts.Cursor > 0 {
		q = q.Where("id > ?", opts.Cursor)
	}

	var posts []DBPost
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return postSummaries(posts), nil
}

func postSummaries(posts []DBPost) []domain.PostSummary {
	out := make([]domain.PostSummary, 0, len(posts))
	for i := range posts {
		out = append(out, domain.PostSummary{
			ID:        posts[i].ID,
			Title:     posts[i].Title,
			Content:   posts[i].Content,
			Image:     posts[i].Image,
			AuthorID:  posts[i].AuthorID,
			UpdatedAt: posts[i].UpdatedAt,
		})
	}
	return out
}

func postToDomain(post *DBPost) *domain.Post {
	tags := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tags = append(tags, t.Name)
	}
	return &domain.Post{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Body:      post.Body,
		Image:     post.Image,
		AuthorID:  post.AuthorID,
		Category:  post.Category.Name,
		Type:      post.Type.Name,
		Tags:      tags,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
