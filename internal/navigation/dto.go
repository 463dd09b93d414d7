package navigation

import (
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/google/uuid"
)

const (
	maxNavOptions = 4
	maxNavButtons = 3
)

type LogoDTO struct {
	ID        uuid.UUID `json:"id"`
	Logo      string    `json:"logo"`
	URL       string    `json:"url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
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

type NavButtonDTO struct {
	ID        uuid.UUID `json:"id"`
	Icon      string    `json:"icon"`
	URL       string    `json:"url"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bundle is the navigation bar payload. Logo is null when no logo is active.
type Bundle struct {
	Logo       *LogoDTO       `json:"logo"`
	NavOptions []NavOptionDTO `json:"nav_option"`
	NavButtons []NavButtonDTO `json:"nav_button"`
}

type HeroDTO struct {
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

// HeroPayload wraps the banner; HeroSection is null when none is active.
type HeroPayload struct {
	HeroSection *HeroDTO `json:"hero_section"`
}

func ToLogoDTO(m *models.CompanyLogo) *LogoDTO {
	if m == nil {
		return nil
	}
	return &LogoDTO{
		ID:        m.ID,
		Logo:      m.Logo,
		URL:       m.URL,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToNavOptionDTO(m models.NavOption) NavOptionDTO {
	return NavOptionDTO{
		ID:        m.ID,
		Title:     m.Title,
		URL:       m.URL,
		Order:     m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToNavButtonDTO(m models.NavButton) NavButtonDTO {
	return NavButtonDTO{
		ID:        m.ID,
		Icon:      m.Icon,
		URL:       m.URL,
		Order:     m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToHeroDTO(m *models.HeroSection) *HeroDTO {
	if m == nil {
		return nil
	}
	return &HeroDTO{
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
}
