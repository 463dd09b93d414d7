package navigation

import (
	"context"
	"errors"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads the presentation tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LatestActiveLogo returns nil when no logo is active.
func (r *Repository) LatestActiveLogo(ctx context.Context) (*models.CompanyLogo, error) {
	var logo models.CompanyLogo
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Take(&logo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &logo, nil
}

func (r *Repository) ActiveNavOptions(ctx context.Context, limit int) ([]models.NavOption, error) {
	var rows []models.NavOption
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ActiveNavButtons(ctx context.Context, limit int) ([]models.NavButton, error) {
	var rows []models.NavButton
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// LatestActiveHero returns nil when no banner is active.
func (r *Repository) LatestActiveHero(ctx context.Context) (*models.HeroSection, error) {
	var hero models.HeroSection
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		Take(&hero).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hero, nil
}
