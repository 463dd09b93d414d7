package checkout

import (
	"context"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockRepository decrements variant stock during checkout.
type StockRepository interface {
	WithTx(tx *gorm.DB) StockRepository
	Decrement(ctx context.Context, variantID uuid.UUID, qty int) (bool, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) WithTx(tx *gorm.DB) StockRepository {
	if tx == nil {
		return r
	}
	return &stockRepository{db: tx}
}

// Decrement returns false when the variant no longer has qty units.
func (r *stockRepository) Decrement(ctx context.Context, variantID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND stock >= ?", variantID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
