package admin

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	// numeric(10,2)
	maxPrice = decimal.New(1, 8)
)

type CategoryDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Order     int        `json:"order"`
	Image     *string    `json:"image"`
	ParentID  *uuid.UUID `json:"parent_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name     string     `json:"name" validate:"required,max=50"`
	Slug     string     `json:"slug" validate:"required,max=50"`
	Order    int        `json:"order" validate:"min=0"`
	Image    *string    `json:"image"`
	ParentID *uuid.UUID `json:"parent_id"`
	IsActive *bool      `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name     *string              `json:"name" validate:"omitempty,min=1,max=50"`
	Slug     *string              `json:"slug" validate:"omitempty,min=1,max=50"`
	Order    *int                 `json:"order" validate:"omitempty,min=0"`
	Image    types.NullableString `json:"image"`
	ParentID types.NullableUUID   `json:"parent_id"`
	IsActive *bool                `json:"is_active"`
}

type ProductDTO struct {
	ID               uuid.UUID `json:"id"`
	CategoryID       uuid.UUID `json:"category_id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	BasePrice        string    `json:"base_price"`
	DiscountPrice    *string   `json:"discount_price"`
	FeaturedProducts bool      `json:"featured_products"`
	NewArrivals      bool      `json:"new_arrivals"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	CategoryID       uuid.UUID        `json:"category_id" validate:"required"`
	Name             string           `json:"name" validate:"required,max=255"`
	Slug             string           `json:"slug" validate:"required,max=255"`
	ShortDescription string           `json:"short_description" validate:"required"`
	Description      string           `json:"description" validate:"required"`
	BasePrice        *decimal.Decimal `json:"base_price" validate:"required"`
	DiscountPrice    *decimal.Decimal `json:"discount_price"`
	FeaturedProducts bool             `json:"featured_products"`
	NewArrivals      bool             `json:"new_arrivals"`
	IsActive         *bool            `json:"is_active"`
}

type UpdateProductRequest struct {
	CategoryID       *uuid.UUID                      `json:"category_id"`
	Name             *string                         `json:"name" validate:"omitempty,min=1,max=255"`
	Slug             *string                         `json:"slug" validate:"omitempty,min=1,max=255"`
	ShortDescription *string                         `json:"short_description" validate:"omitempty,min=1"`
	Description      *string                         `json:"description" validate:"omitempty,min=1"`
	BasePrice        *decimal.Decimal                `json:"base_price"`
	DiscountPrice    types.Nullable[decimal.Decimal] `json:"discount_price"`
	FeaturedProducts *bool                           `json:"featured_products"`
	NewArrivals      *bool                           `json:"new_arrivals"`
	IsActive         *bool                           `json:"is_active"`
}

type ProductImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Image     *string   `json:"image"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProductImageRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Image     *string   `json:"image"`
	Order     int       `json:"order" validate:"min=0"`
	IsActive  *bool     `json:"is_active"`
}

type UpdateProductImageRequest struct {
	ProductID *uuid.UUID           `json:"product_id"`
	Image     types.NullableString `json:"image"`
	Order     *int                 `json:"order" validate:"omitempty,min=0"`
	IsActive  *bool                `json:"is_active"`
}

type ProductVariantDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Material  string    `json:"material"`
	Stock     int       `json:"stock"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProductVariantRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	SKU       string    `json:"sku" validate:"required,max=100"`
	Color     string    `json:"color" validate:"max=50"`
	Size      string    `json:"size" validate:"max=20"`
	Material  string    `json:"material" validate:"max=50"`
	Stock     int       `json:"stock" validate:"min=0"`
	IsActive  *bool     `json:"is_active"`
}

type UpdateProductVariantRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	SKU       *string    `json:"sku" validate:"omitempty,min=1,max=100"`
	Color     *string    `json:"color" validate:"omitempty,max=50"`
	Size      *string    `json:"size" validate:"omitempty,max=20"`
	Material  *string    `json:"material" validate:"omitempty,max=50"`
	Stock     *int       `json:"stock" validate:"omitempty,min=0"`
	IsActive  *bool      `json:"is_active"`
}

func newCategoryResource(conn *gorm.DB) Resource[CreateCategoryRequest, UpdateCategoryRequest, CategoryDTO] {
	return newResource(conn, definition[models.Category, CreateCategoryRequest, UpdateCategoryRequest, CategoryDTO]{
		name:          "category",
		table:         "categories",
		searchColumns: []string{"categories.name"},
		orderBy:       []string{"categories.sort_order ASC", "categories.created_at ASC", "categories.id ASC"},
		filter: func(query *gorm.DB, q ListQuery) (*gorm.DB, error) {
			if q.filter("parent_id") == "none" {
				return query.Where("categories.parent_id IS NULL"), nil
			}
			parentID, err := uuidFilter(q, "parent_id")
			if err != nil {
				return nil, err
			}
			if parentID != nil {
				query = query.Where("categories.parent_id = ?", *parentID)
			}
			return query, nil
		},
		build: func(req CreateCategoryRequest) (*models.Category, error) {
			if err := validateSlug(req.Slug); err != nil {
				return nil, err
			}
			return &models.Category{
				Name:      req.Name,
				Slug:      req.Slug,
				SortOrder: req.Order,
				Image:     req.Image,
				ParentID:  req.ParentID,
				IsActive:  activeOrDefault(req.IsActive),
			}, nil
		},
		apply: func(m *models.Category, req UpdateCategoryRequest) error {
			if req.Slug != nil {
				if err := validateSlug(*req.Slug); err != nil {
					return err
				}
			}
			setIf(&m.Name, req.Name)
			setIf(&m.Slug, req.Slug)
			setIf(&m.SortOrder, req.Order)
			setNullable(&m.Image, req.Image)
			setNullable(&m.ParentID, req.ParentID)
			setIf(&m.IsActive, req.IsActive)
			return nil
		},
		check: checkCategoryDepth,
		render: func(m models.Category) CategoryDTO {
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
		},
	})
}

// checkCategoryDepth keeps the tree at two levels: a parent must itself be
// top level and a category with children cannot be nested.
func checkCategoryDepth(ctx context.Context, tx *gorm.DB, m *models.Category) error {
	if m.ParentID == nil {
		return nil
	}
	if *m.ParentID == m.ID {
		return pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
	}
	var parent models.Category
	if err := tx.WithContext(ctx).Where("id = ?", *m.ParentID).Take(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "parent category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent category")
	}
	if parent.ParentID != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "parent category must be a top level category")
	}
	if m.ID == uuid.Nil {
		return nil
	}
	var children int64
	if err := tx.WithContext(ctx).Model(&models.Category{}).Where("parent_id = ?", m.ID).Count(&children).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count child categories")
	}
	if children > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "category with children cannot have a parent")
	}
	return nil
}

func newProductResource(conn *gorm.DB) Resource[CreateProductRequest, UpdateProductRequest, ProductDTO] {
	return newResource(conn, definition[models.Product, CreateProductRequest, UpdateProductRequest, ProductDTO]{
		name:          "product",
		table:         "products",
		searchColumns: []string{"products.name", "products.description"},
		filter: func(query *gorm.DB, q ListQuery) (*gorm.DB, error) {
			categoryID, err := uuidFilter(q, "category_id")
			if err != nil {
				return nil, err
			}
			if categoryID != nil {
				query = query.Where("products.category_id = ?", *categoryID)
			}
			featured, err := boolFilter(q, "featured")
			if err != nil {
				return nil, err
			}
			if featured != nil {
				query = query.Where("products.featured_products = ?", *featured)
			}
			newArrival, err := boolFilter(q, "new_arrival")
			if err != nil {
				return nil, err
			}
			if newArrival != nil {
				query = query.Where("products.new_arrivals = ?", *newArrival)
			}
			return query, nil
		},
		build: func(req CreateProductRequest) (*models.Product, error) {
			if err := validateSlug(req.Slug); err != nil {
				return nil, err
			}
			m := &models.Product{
				CategoryID:       req.CategoryID,
				Name:             req.Name,
				Slug:             req.Slug,
				ShortDescription: req.ShortDescription,
				Description:      req.Description,
				FeaturedProducts: req.FeaturedProducts,
				NewArrivals:      req.NewArrivals,
				IsActive:         activeOrDefault(req.IsActive),
			}
			if req.BasePrice != nil {
				m.BasePrice = *req.BasePrice
			}
			if req.DiscountPrice != nil {
				m.DiscountPrice = decimal.NewNullDecimal(*req.DiscountPrice)
			}
			return m, validatePrices(m)
		},
		apply: func(m *models.Product, req UpdateProductRequest) error {
			if req.Slug != nil {
				if err := validateSlug(*req.Slug); err != nil {
					return err
				}
			}
			setIf(&m.CategoryID, req.CategoryID)
			setIf(&m.Name, req.Name)
			setIf(&m.Slug, req.Slug)
			setIf(&m.ShortDescription, req.ShortDescription)
			setIf(&m.Description, req.Description)
			setIf(&m.BasePrice, req.BasePrice)
			if req.DiscountPrice.Set {
				if req.DiscountPrice.Value == nil {
					m.DiscountPrice = decimal.NullDecimal{}
				} else {
					m.DiscountPrice = decimal.NewNullDecimal(*req.DiscountPrice.Value)
				}
			}
			setIf(&m.FeaturedProducts, req.FeaturedProducts)
			setIf(&m.NewArrivals, req.NewArrivals)
			setIf(&m.IsActive, req.IsActive)
			return validatePrices(m)
		},
		render: func(m models.Product) ProductDTO {
			return ProductDTO{
				ID:               m.ID,
				CategoryID:       m.CategoryID,
				Name:             m.Name,
				Slug:             m.Slug,
				ShortDescription: m.ShortDescription,
				Description:      m.Description,
				BasePrice:        types.Money(m.BasePrice),
				DiscountPrice:    types.NullMoney(m.DiscountPrice),
				FeaturedProducts: m.FeaturedProducts,
				NewArrivals:      m.NewArrivals,
				IsActive:         m.IsActive,
				CreatedAt:        m.CreatedAt,
				UpdatedAt:        m.UpdatedAt,
			}
		},
	})
}

func newProductImageResource(conn *gorm.DB) Resource[CreateProductImageRequest, UpdateProductImageRequest, ProductImageDTO] {
	return newResource(conn, definition[models.ProductImage, CreateProductImageRequest, UpdateProductImageRequest, ProductImageDTO]{
		name:          "product image",
		table:         "product_images",
		joins:         "JOIN products ON products.id = product_images.product_id",
		searchColumns: []string{"products.name"},
		orderBy:       []string{"product_images.product_id ASC", "product_images.sort_order ASC", "product_images.id ASC"},
		filter:        productScoped("product_images"),
		build: func(req CreateProductImageRequest) (*models.ProductImage, error) {
			return &models.ProductImage{ProductID: req.ProductID, Image: req.Image, SortOrder: req.Order, IsActive: activeOrDefault(req.IsActive)}, nil
		},
		apply: func(m *models.ProductImage, req UpdateProductImageRequest) error {
			setIf(&m.ProductID, req.ProductID)
			setNullable(&m.Image, req.Image)
			setIf(&m.SortOrder, req.Order)
			setIf(&m.IsActive, req.IsActive)
			return nil
		},
		render: func(m models.ProductImage) ProductImageDTO {
			return ProductImageDTO{ID: m.ID, ProductID: m.ProductID, Image: m.Image, Order: m.SortOrder, IsActive: m.IsActive, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
		},
	})
}

func newProductVariantResource(conn *gorm.DB) Resource[CreateProductVariantRequest, UpdateProductVariantRequest, ProductVariantDTO] {
	scopedToProduct := productScoped("product_variants")
	return newResource(conn, definition[models.ProductVariant, CreateProductVariantRequest, UpdateProductVariantRequest, ProductVariantDTO]{
		name:          "product variant",
		table:         "product_variants",
		joins:         "JOIN products ON products.id = product_variants.product_id",
		searchColumns: []string{"product_variants.sku", "products.name"},
		orderBy:       []string{"product_variants.product_id ASC", "product_variants.sku ASC"},
		filter: func(query *gorm.DB, q ListQuery) (*gorm.DB, error) {
			query, err := scopedToProduct(query, q)
			if err != nil {
				return nil, err
			}
			for _, col := range []string{"color", "size", "material"} {
				if v := q.filter(col); v != "" {
					query = query.Where("product_variants."+col+" = ?", v)
				}
			}
			return query, nil
		},
		build: func(req CreateProductVariantRequest) (*models.ProductVariant, error) {
			return &models.ProductVariant{
				ProductID: req.ProductID,
				SKU:       strings.TrimSpace(req.SKU),
				Color:     req.Color,
				Size:      req.Size,
				Material:  req.Material,
				Stock:     req.Stock,
				IsActive:  activeOrDefault(req.IsActive),
			}, nil
		},
		apply: func(m *models.ProductVariant, req UpdateProductVariantRequest) error {
			setIf(&m.ProductID, req.ProductID)
			if req.SKU != nil {
				m.SKU = strings.TrimSpace(*req.SKU)
			}
			setIf(&m.Color, req.Color)
			setIf(&m.Size, req.Size)
			setIf(&m.Material, req.Material)
			setIf(&m.Stock, req.Stock)
			setIf(&m.IsActive, req.IsActive)
			return nil
		},
		render: func(m models.ProductVariant) ProductVariantDTO {
			return ProductVariantDTO{
				ID:        m.ID,
				ProductID: m.ProductID,
				SKU:       m.SKU,
				Color:     m.Color,
				Size:      m.Size,
				Material:  m.Material,
				Stock:     m.Stock,
				IsActive:  m.IsActive,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			}
		},
	})
}

func productScoped(table string) func(*gorm.DB, ListQuery) (*gorm.DB, error) {
	return func(query *gorm.DB, q ListQuery) (*gorm.DB, error) {
		productID, err := uuidFilter(q, "product_id")
		if err != nil {
			return nil, err
		}
		if productID != nil {
			query = query.Where(table+".product_id = ?", *productID)
		}
		return query, nil
	}
}

func validateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return pkgerrors.New(pkgerrors.CodeValidation, "slug may only contain letters, numbers, hyphens and underscores").
			WithDetails(map[string]any{"field": "slug"})
	}
	return nil
}

func validatePrices(m *models.Product) error {
	if err := validatePrice("base_price", m.BasePrice); err != nil {
		return err
	}
	if m.DiscountPrice.Valid {
		return validatePrice("discount_price", m.DiscountPrice.Decimal)
	}
	return nil
}

func validatePrice(field string, price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s cannot be negative", field)
	case !price.Equal(price.Round(2)):
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s allows at most 2 decimal places", field)
	case price.GreaterThanOrEqual(maxPrice):
		return pkgerrors.Newf(pkgerrors.CodeValidation, "%s is too large", field)
	}
	return nil
}
