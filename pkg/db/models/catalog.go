package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is a node in the two-level catalog tree.
type Category struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Name      string     `gorm:"column:name;type:varchar(50);not null"`
	Slug      string     `gorm:"column:slug;type:varchar(50);not null;uniqueIndex"`
	SortOrder int        `gorm:"column:sort_order;not null;default:0"`
	Image     *string    `gorm:"column:image;type:text"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid;index"`
	IsActive  bool       `gorm:"column:is_active;not null;index"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Children []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

type Product struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	CategoryID       uuid.UUID           `gorm:"column:category_id;type:uuid;not null;index"`
	Name             string              `gorm:"column:name;type:varchar(255);not null"`
	Slug             string              `gorm:"column:slug;type:varchar(255);not null;uniqueIndex"`
	ShortDescription string              `gorm:"column:short_description;type:text;not null"`
	Description      string              `gorm:"column:description;type:text;not null"`
	BasePrice        decimal.Decimal     `gorm:"column:base_price;type:numeric(10,2);not null"`
	DiscountPrice    decimal.NullDecimal `gorm:"column:discount_price;type:numeric(10,2)"`
	FeaturedProducts bool                `gorm:"column:featured_products;not null;default:false"`
	NewArrivals      bool                `gorm:"column:new_arrivals;not null;default:false"`
	IsActive         bool                `gorm:"column:is_active;not null;index"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Category *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Image     *string   `gorm:"column:image;type:text"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (i *ProductImage) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	return nil
}

// ProductVariant is a purchasable color/size/material combination. Its
// price always comes from the parent product.
type ProductVariant struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_product_variants_combo,priority:1"`
	SKU       string    `gorm:"column:sku;type:varchar(100);not null;uniqueIndex"`
	Color     string    `gorm:"column:color;type:varchar(50);not null;default:'';uniqueIndex:ux_product_variants_combo,priority:2"`
	Size      string    `gorm:"column:size;type:varchar(20);not null;default:'';uniqueIndex:ux_product_variants_combo,priority:3"`
	Material  string    `gorm:"column:material;type:varchar(50);not null;default:'';uniqueIndex:ux_product_variants_combo,priority:4"`
	Stock     int       `gorm:"column:stock;not null;default:0;check:chk_product_variants_stock,stock >= 0"`
	IsActive  bool      `gorm:"column:is_active;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (v *ProductVariant) BeforeCreate(*gorm.DB) error {
	assignID(&v.ID)
	return nil
}

// ProductReview allows one review per (product, user).
type ProductReview struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:ux_product_reviews_product_user,priority:1"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:ux_product_reviews_product_user,priority:2"`
	Rating    int       `gorm:"column:rating;not null;check:chk_product_reviews_rating,rating BETWEEN 1 AND 5"`
	Comment   string    `gorm:"column:comment;type:varchar(400);not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (r *ProductReview) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}
