package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/you/blogsvc/domain"
)

// ProductRepositoryImpl implements domain.ProductRepository using GORM.
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Create implements domain.ProductRepository.
func (r *ProductRepositoryImpl) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var created DBProduct
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

		images := make([]DBProductImage, 0, len(in.ImagePaths))
		for _, p := range in.ImagePaths {
			images = append(images, DBProductImage{Path: p})
		}

		product := DBProduct{
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Discount:    in.Discount,
			Inventory:   in.Inventory,
			Status:      domain.StatusActive,
			CategoryID:  cat.ID,
			TypeID:      typ.ID,
			Tags:        tags,
			Images:      images,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		created = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return productToDomain(&created), nil
}

// Update implements domain.ProductRepository. Non-empty ImagePaths replace
// the stored image rows; a non-empty tag list replaces the existing links.
func (r *ProductRepositoryImpl) Update(ctx context.Context, id uint, in domain.ProductInput) (*domain.Product, error) {
	var updated DBProduct
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product DBProduct
		if err := tx.Preload("Images").First(&product, id).Error; err != nil {
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

		product.Name = in.Name
		product.Description = in.Description
		product.Price = in.Price
		product.Discount = in.Discount
		product.Inventory = in.Inventory
		product.CategoryID = cat.ID
		product.TypeID = typ.ID
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		if len(in.Tags) > 0 {
			tags, err := upsertTags(tx, in.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		if len(in.ImagePaths) > 0 {
			if err := tx.Where("product_id = ?", product.ID).Delete(&DBProductImage{}).Error; err != nil {
				return err
			}
			images := make([]DBProductImage, 0, len(in.ImagePaths))
			for _, p := range in.ImagePaths {
				images = append(images, DBProductImage{ProductID: product.ID, Path: p})
			}
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
			product.Images = images
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return productToDomain(&updated), nil
}

// Delete implements domain.ProductRepository.
func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product DBProduct
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrModelNotFound
			}
			return err
		}
		if err := tx.Model(&product).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&DBProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// FindByID implements domain.ProductRepository: the bare row plus image rows
// (the mutation workflow needs them for file cleanup).
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product DBProduct
	err := r.db.WithContext(ctx).Preload("Images").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrModelNotFound
		}
		return nil, err
	}
	return productToDomain(&product), nil
}

// FindWithRelations implements domain.ProductRepository.
func (r *ProductRepositoryImpl) FindWithRelations(ctx context.Context, id uint) (*domain.Product, error) {
	var product DBProduct
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Type").
		Preload("Tags").
		Preload("Images").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrModelNotFound
		}
		return nil, err
	}
	return productToDomain(&product), nil
}

// ListCursor implements domain.ProductRepository: keyset pagination
// descending by id with optional taxonomy filters.
func (r *ProductRepositoryImpl) ListCursor(ctx context.Context, opts domain.ProductListOptions) ([]domain.ProductSummary, error) {
	q := r.db.WithContext(ctx).
		Model(&DBProduct{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Order("id desc").
		Limit(opts.Take)
	if opts.Cursor > 0 {
		q = q.Where("id < ?", opts.Cursor)
	}
	if len(opts.Categories) > 0 {
		q = q.Where("category_id IN ?", opts.Categories)
	}
	if len(opts.Types) > 0 {
		q = q.Where("type_id IN ?", opts.Types)
	}

	var products []DBProduct
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	out := make([]domain.ProductSummary, 0, len(products))
	for i := range products {
		s := domain.ProductSummary{
			ID:       products[i].ID,
			Name:     products[i].Name,
			Price:    products[i].Price,
			Discount: products[i].Discount,
			Status:   products[i].Status,
		}
		if len(products[i].Images) > 0 {
			s.Image = products[i].Images[0].Path
		}
		out = append(out, s)
	}
	return out, nil
}

func productToDomain(product *DBProduct) *domain.Product {
	tags := make([]string, 0, len(product.Tags))
	for _, t := range product.Tags {
		tags = append(tags, t.Name)
	}
	images := make([]domain.ProductImage, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, domain.ProductImage{ID: img.ID, Path: img.Path})
	}
	return &domain.Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Discount:    product.Discount,
		Inventory:   product.Inventory,
		Status:      product.Status,
		Category:    product.Category.Name,
		Type:        product.Type.Name,
		Tags:        tags,
		Images:      images,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
