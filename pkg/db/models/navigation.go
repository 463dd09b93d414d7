package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyLogo is the storefront brand mark shown in the navigation bar.
type CompanyLogo struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Logo      string    `gorm:"column:logo;type:text;not null"`
	URL       string    `gorm:"column:url;type:varchar(300);not null"`
	IsActive  bool      `gorm:"column:is_active;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (l *CompanyLogo) BeforeCreate(*gorm.DB) error {
	assignID(&l.ID)
	return nil
}

type NavOption struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;type:varchar(50);not null"`
	URL       string    `gorm:"column:url;type:varchar(300);not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *NavOption) BeforeCreate(*gorm.DB) error {
	assignID(&o.ID)
	return nil
}

type NavButton struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Icon      string    `gorm:"column:icon;type:text;not null"`
	URL       string    `gorm:"column:url;type:varchar(300);not null"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	IsActive  bool      `gorm:"column:is_active;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *NavButton) BeforeCreate(*gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// HeroSection is the landing page banner.
type HeroSection struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BgImg       *string   `gorm:"column:bg_img;type:text"`
	CatalogName *string   `gorm:"column:catalog_name;type:varchar(100)"`
	Heading     string    `gorm:"column:heading;type:varchar(200);not null"`
	SubHeading  string    `gorm:"column:sub_heading;type:varchar(300);not null"`
	CTABtn1     string    `gorm:"column:cta_btn_1;type:varchar(50);not null"`
	CTABtn1URL  string    `gorm:"column:cta_btn_1_url;type:varchar(300);not null"`
	CTABtn2     string    `gorm:"column:cta_btn_2;type:varchar(50);not null"`
	CTABtn2URL  string    `gorm:"column:cta_btn_2_url;type:varchar(300);not null"`
	IsActive    bool      `gorm:"column:is_active;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (h *HeroSection) BeforeCreate(*gorm.DB) error {
	assignID(&h.ID)
	return nil
}
