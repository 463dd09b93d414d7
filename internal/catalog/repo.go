package catalog

import (
	"context"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductFilter narrows storefront product listings. Only active products
// are ever returned.
type ProductFilter struct {
	CategorySlug string
	Featured     bool
	NewArrivals  bool
}

func (r *Repository) ActiveTopCategories(ctx context.Context, limit int) ([]models.Category, error) {
	var rows []models.Category
	query := r.db.WithContext(ctx).
		Where("is_active = ? AND parent_id IS NULL", true).
		Order("sort_order ASC").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rows).Error
	return rows, err
}

// ChildrenOf returns every child of the given parents regardless of is_active.
func (r *Repository) ChildrenOf(ctx context.Context, parentIDs []uuid.UUID) ([]models.Category, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("products.is_active = ?", true)
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Featured {
		query = query.Where("products.featured_products = ?", true)
	}
	if filter.NewArrivals {
		query = query.Where("products.new_arrivals = ?", true)
	}

	var rows []models.Product
	err := query.
		Order("products.created_at DESC").
		Order("products.id ASC").
		Find(&rows).Error
	return rows, err
}

// FirstActiveImages maps each product to its earliest active image.
func (r *Repository) FirstActiveImages(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*string, error) {
	out := make(map[uuid.UUID]*string, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	var rows []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id IN ? AND is_active = ?", productIDs, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if _, seen := out[row.ProductID]; seen {
			continue
		}
		out[row.ProductID] = row.Image
	}
	return out, nil
}

// ActiveProductBySlug preloads active images and variants.
func (r *Repository) ActiveProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC").Order("created_at ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("created_at ASC")
		}).
		Where("slug = ? AND is_active = ?", slug, true).
		Take(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
