// Package admin backs the staff back office: CRUD over storefront content
// plus review moderation and read access to carts.
package admin

import (
	"fmt"

	"gorm.io/gorm"
)

// Service groups every admin managed resource.
type Service struct {
	Logos           Resource[CreateLogoRequest, UpdateLogoRequest, LogoDTO]
	NavOptions      Resource[CreateNavOptionRequest, UpdateNavOptionRequest, NavOptionDTO]
	NavButtons      Resource[CreateNavButtonRequest, UpdateNavButtonRequest, NavButtonDTO]
	HeroSections    Resource[CreateHeroSectionRequest, UpdateHeroSectionRequest, HeroSectionDTO]
	Categories      Resource[CreateCategoryRequest, UpdateCategoryRequest, CategoryDTO]
	Products        Resource[CreateProductRequest, UpdateProductRequest, ProductDTO]
	ProductImages   Resource[CreateProductImageRequest, UpdateProductImageRequest, ProductImageDTO]
	ProductVariants Resource[CreateProductVariantRequest, UpdateProductVariantRequest, ProductVariantDTO]
	Reviews         ReviewModeration
	Carts           CartInspector
}

func NewService(conn *gorm.DB) (*Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("admin service requires a db connection")
	}
	return &Service{
		Logos:           newLogoResource(conn),
		NavOptions:      newNavOptionResource(conn),
		NavButtons:      newNavButtonResource(conn),
		HeroSections:    newHeroSectionResource(conn),
		Categories:      newCategoryResource(conn),
		Products:        newProductResource(conn),
		ProductImages:   newProductImageResource(conn),
		ProductVariants: newProductVariantResource(conn),
		Reviews:         newReviewModeration(conn),
		Carts:           newCartInspector(conn),
	}, nil
}
