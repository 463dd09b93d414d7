package admin

import (
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogoDTO struct {
	ID        uuid.UUID `json:"id"`
	Logo      string    `json:"logo"`
	URL       string    `json:"url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateLogoRequest struct {
	Logo     string `json:"logo" validate:"required"`
	URL      string `json:"url" validate:"required,max=300"`
	IsActive *bool  `json:"is_active"`
}

type UpdateLogoRequest struct {
	Logo     *string `json:"logo" validate:"omitempty,min=1"`
	URL      *string `json:"url" validate:"omitempty,min=1,max=300"`
	IsActive *bool   `json:"is_active"`
}

type NavOptionDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNavOptionRequest struct {
	Title    string `json:"title" validate:"required,max=50"`
	URL      string `json:"url" validate:"required,max=300"`
	Order    int    `json:"order" validate:"min=0"`
	IsActive *bool  `json:"is_active"`
}

type UpdateNavOptionRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=50"`
	URL      *string `json:"url" validate:"omitempty,min=1,max=300"`
	Order    *int    `json:"order" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}

type NavButtonDTO struct {
	ID        uuid.UUID `json:"id"`
	Icon      string    `json:"icon"`
	URL       string    `json:"url"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNavButtonRequest struct {
	Icon     string `json:"icon" validate:"required"`
	URL      string `json:"url" validate:"required,max=300"`
	Order    int    `json:"order" validate:"min=0"`
	IsActive *bool  `json:"is_active"`
}

type UpdateNavButtonRequest struct {
	Icon     *string `json:"icon" validate:"omitempty,min=1"`
	URL      *string `json:"url" validate:"omitempty,min=1,max=300"`
	Order    *int    `json:"order" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}

type HeroSectionDTO struct {
	ID          uuid.UUID `json:"id"`
	BgImg       *string   `json:"bg_img"`
	CatalogName *string   `json:"catalog_name"`
	Heading     string    `json:"heading"`
	SubHeading  string    `json:"sub_heading"`
	CTABtn1     string    `json:"cta_btn_1"`
	CTABtn1URL  string    `json:"cta_btn_1_url"`
	CTABtn2     string    `json:"cta_btn_2"`
	CTABtn2URL  string    `json:"cta_btn_2_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateHeroSectionRequest struct {
	BgImg       *string `json:"bg_img"`
	CatalogName *string `json:"catalog_name" validate:"omitempty,max=100"`
	Heading     string  `json:"heading" validate:"required,max=200"`
	SubHeading  string  `json:"sub_heading" validate:"required,max=300"`
	CTABtn1     string  `json:"cta_btn_1" validate:"required,max=50"`
	CTABtn1URL  string  `json:"cta_btn_1_url" validate:"required,max=300"`
	CTABtn2     string  `json:"cta_btn_2" validate:"required,max=50"`
	CTABtn2URL  string  `json:"cta_btn_2_url" validate:"required,max=300"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateHeroSectionRequest uses Nullable for the columns that may be cleared.
type UpdateHeroSectionRequest struct {
	BgImg       types.NullableString `json:"bg_img"`
	CatalogName types.NullableString `json:"catalog_name"`
	Heading     *string              `json:"heading" validate:"omitempty,min=1,max=200"`
	SubHeading  *string              `json:"sub_heading" validate:"omitempty,min=1,max=300"`
	CTABtn1     *string              `json:"cta_btn_1" validate:"omitempty,min=1,max=50"`
	CTABtn1URL  *string              `json:"cta_btn_1_url" validate:"omitempty,min=1,max=300"`
	CTABtn2     *string              `json:"cta_btn_2" validate:"omitempty,min=1,max=50"`
	CTABtn2URL  *string              `json:"cta_btn_2_url" validate:"omitempty,min=1,max=300"`
	IsActive    *bool                `json:"is_active"`
}

func newLogoResource(conn *gorm.DB) Resource[CreateLogoRequest, UpdateLogoRequest, LogoDTO] {
	return newResource(conn, definition[models.CompanyLogo, CreateLogoRequest, UpdateLogoRequest, LogoDTO]{
		name:          "logo",
		table:         "company_logos",
		searchColumns: []string{"company_logos.url"},
		build: func(req CreateLogoRequest) (*models.CompanyLogo, error) {
			return &models.CompanyLogo{Logo: req.Logo, URL: req.URL, IsActive: activeOrDefault(req.IsActive)}, nil
		},
		apply: func(m *models.CompanyLogo, req UpdateLogoRequest) error {
			setIf(&m.Logo, req.Logo)
			setIf(&m.URL, req.URL)
			setIf(&m.IsActive, req.IsActive)
			return nil
		},
		render: func(m models.CompanyLogo) LogoDTO {
			return LogoDTO{ID: m.ID, Logo: m.Logo, URL: m.URL, IsActive: m.IsActive, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
		},
	})
}

func newNavOptionResource(conn *gorm.DB) Resource[CreateNavOptionRequest, UpdateNavOptionRequest, NavOptionDTO] {
	return newResource(conn, definition[models.NavOption, CreateNavOptionRequest, UpdateNavOptionRequest, NavOptionDTO]{
		name:          "nav option",
		table:         "nav_options",
		searchColumns: []string{"nav_options.title"},
		orderBy:       []string{"nav_options.sort_order ASC", "nav_options.created_at ASC", "nav_options.id ASC"},
		build: func(req CreateNavOptionRequest) (*models.NavOption, error) {
			return &models.NavOption{Title: req.Title, URL: req.URL, SortOrder: req.Order, IsActive: activeOrDefault(req.IsActive)}, nil
		},
		apply: func(m *models.NavOption, req UpdateNavOptionRequest) error {
			setIf(&m.Title, req.Title)
			setIf(&m.URL, req.URL)
			setIf(&m.SortOrder, req.Order)
			setIf(&m.IsActive, req.IsActive)
			return nil
		},
		render: func(m models.NavOption) NavOptionDTO {
			return NavOptionDTO{ID: m.ID, Title: m.Title, URL: m.URL, Order: m.SortOrder, IsActive: m.IsActive, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
		},
	})
}

func newNavButtonResource(conn *gorm.DB) Resource[CreateNavButtonRequest, UpdateNavButtonRequest, NavButtonDTO] {
	return newResource(conn, definition[models.NavButton, CreateNavButtonRequest, UpdateNavButtonRequest, NavButtonDTO]{
		name:          "nav button",
		table:         "nav_buttons",
		searchColumns: []string{"nav_buttons.url"},
		orderBy:       []string{"nav_buttons.sort_order ASC", "nav_buttons.created_at ASC", "nav_buttons.id ASC"},
		build: func(req CreateNavButtonRequest) (*models.NavButton, error) {
			return &models.NavButton{Icon: req.Icon, URL: req.URL, SortOrder: req.Order, IsActive: activeOrDefault(req.IsActive)}, nil
		},
		apply: func(m *models.NavButton, req UpdateNavButtonRequest) error {
			setIf(&m.Icon, req.Icon)
			setIf(&m.URL, req.URL)
			setIf(&m.SortOrder, req.Order)
			setIf(&m.IsActive, req.IsActive)
			return nil
		},
		render: func(m models.NavButton) NavButtonDTO {
			return NavButtonDTO{ID: m.ID, Icon: m.Icon, URL: m.URL, Order: m.SortOrder, IsActive: m.IsActive, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
		},
	})
}

func newHeroSectionResource(conn *gorm.DB) Resource[CreateHeroSectionRequest, UpdateHeroSectionRequest, HeroSectionDTO] {
	return newResource(conn, definition[models.HeroSection, CreateHeroSectionRequest, UpdateHeroSectionRequest, HeroSectionDTO]{
		name:          "hero section",
		table:         "hero_sections",
		searchColumns: []string{"hero_sections.catalog_name"},
		filter: func(query *gorm.DB, q ListQuery) (*gorm.DB, error) {
			if name := q.filter("catalog_name"); name != "" {
				query = query.Where("hero_sections.catalog_name = ?", name)
			}
			return query, nil
		},
		build: func(req CreateHeroSectionRequest) (*models.HeroSection, error) {
			return &models.HeroSection{
				BgImg:       req.BgImg,
				CatalogName: req.CatalogName,
				Heading:     req.Heading,
				SubHeading:  req.SubHeading,
				CTABtn1:     req.CTABtn1,
				CTABtn1URL:  req.CTABtn1URL,
				CTABtn2:     req.CTABtn2,
				CTABtn2URL:  req.CTABtn2URL,
				IsActive:    activeOrDefault(req.IsActive),
			}, nil
		},
		apply: func(m *models.HeroSection, req UpdateHeroSectionRequest) error {
			if req.CatalogName.Set && req.CatalogName.Value != nil && len(*req.CatalogName.Value) > 100 {
				return pkgerrors.New(pkgerrors.CodeValidation, "catalog_name must be at most 100 characters")
			}
			setNullable(&m.BgImg, req.BgImg)
			setNullable(&m.CatalogName, req.CatalogName)
			setIf(&m.Heading, req.Heading)
			setIf(&m.SubHeading, req.SubHeading)
			setIf(&m.CTABtn1, req.CTABtn1)
			setIf(&m.CTABtn1URL, req.CTABtn1URL)
			setIf(&m.CTABtn2, req.CTABtn2)
			setIf(&m.CTABtn2URL, req.CTABtn2URL)
			setIf(&m.IsActive, req.IsActive)
			return nil
		},
		render: func(m models.HeroSection) HeroSectionDTO {
			return HeroSectionDTO{
				ID:          m.ID,
				BgImg:       m.BgImg,
				CatalogName: m.CatalogName,
				Heading:     m.Heading,
				SubHeading:  m.SubHeading,
				CTABtn1:     m.CTABtn1,
				CTABtn1URL:  m.CTABtn1URL,
				CTABtn2:     m.CTABtn2,
				CTABtn2URL:  m.CTABtn2URL,
				IsActive:    m.IsActive,
				CreatedAt:   m.CreatedAt,
				UpdatedAt:   m.UpdatedAt,
			}
		},
	})
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setNullable[T any](dst **T, v types.Nullable[T]) {
	if v.Set {
		*dst = v.Value
	}
}
