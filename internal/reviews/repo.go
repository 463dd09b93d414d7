package reviews

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

func (r *Repository) ActiveProductIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("id").
		Where("slug = ? AND is_active = ?", slug, true).
		Take(&product).Error
	if err != nil {
		return uuid.Nil, err
	}
	return product.ID, nil
}

func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error) {
	var rows []models.ProductReview
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Create(ctx context.Context, review *models.ProductReview) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").Take(review, "id = ?", review.ID).Error
}
