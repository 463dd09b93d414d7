package catalog

import (
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
)

const maxTopCategories = 4

type CategoryDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Order     int        `json:"order"`
	Image     *string    `json:"image"`
	ParentID  *uuid.UUID `json:"parent"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ChildCategoryDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image *string   `json:"image"`
}

type ParentCategoryDTO struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Image    *string            `json:"image"`
	Children []ChildCategoryDTO `json:"children"`
}

// ProductSummary is the card shown in product grids.
type ProductSummary struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	BasePrice        string    `json:"base_price"`
	DiscountPrice    *string   `json:"discount_price"`
	Image            *string   `json:"image"`
	FeaturedProducts bool      `json:"featured_products"`
	NewArrivals      bool      `json:"new_arrivals"`
}

type ImageDTO struct {
	ID    uuid.UUID `json:"id"`
	Image *string   `json:"image"`
	Order int       `json:"order"`
}

type VariantDTO struct {
	ID       uuid.UUID `json:"id"`
	SKU      string    `json:"sku"`
	Color    string    `json:"color"`
	Size     string    `json:"size"`
	Material string    `json:"material"`
	Stock    int       `json:"stock"`
}

type ProductDetail struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Slug             string       `json:"slug"`
	ShortDescription string       `json:"short_description"`
	Description      string       `json:"description"`
	BasePrice        string       `json:"base_price"`
	DiscountPrice    *string      `json:"discount_price"`
	Images           []ImageDTO   `json:"images"`
	Variants         []VariantDTO `json:"variants"`
}

func ToCategoryDTO(m models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        m.ID,
		Name:      m.Name,
		Slug:      m.Slug,
		Order:     m.SortOrder,
		Image:     m.Image,
		ParentID:  m.ParentID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToProductSummary builds a grid card. image is the first active image, if any.
func ToProductSummary(m models.Product, image *string) ProductSummary {
	return ProductSummary{
		ID:               m.ID,
		Name:             m.Name,
		Slug:             m.Slug,
		BasePrice:        types.Money(m.BasePrice),
		DiscountPrice:    types.NullMoney(m.DiscountPrice),
		Image:            image,
		FeaturedProducts: m.FeaturedProducts,
		NewArrivals:      m.NewArrivals,
	}
}

func ToProductDetail(m models.Product) ProductDetail {
	out := ProductDetail{
		ID:               m.ID,
		Name:             m.Name,
		Slug:             m.Slug,
		ShortDescription: m.ShortDescription,
		Description:      m.Description,
		BasePrice:        types.Money(m.BasePrice),
		DiscountPrice:    types.NullMoney(m.DiscountPrice),
		Images:           make([]ImageDTO, 0, len(m.Images)),
		Variants:         make([]VariantDTO, 0, len(m.Variants)),
	}
	for _, img := range m.Images {
		out.Images = append(out.Images, ImageDTO{ID: img.ID, Image: img.Image, Order: img.SortOrder})
	}
	for _, v := range m.Variants {
		out.Variants = append(out.Variants, VariantDTO{
			ID:       v.ID,
			SKU:      v.SKU,
			Color:    v.Color,
			Size:     v.Size,
			Material: v.Material,
			Stock:    v.Stock,
		})
	}
	return out
}
