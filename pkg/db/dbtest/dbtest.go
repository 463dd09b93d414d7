// Package dbtest opens throwaway SQLite databases with the full schema for
// repository and service tests.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open returns an isolated in-memory database migrated from the models.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:vo_%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(conn); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// Fixtures creates rows with sensible defaults.
type Fixtures struct {
	t  testing.TB
	db *gorm.DB
}

func NewFixtures(t testing.TB, db *gorm.DB) *Fixtures {
	return &Fixtures{t: t, db: db}
}

func (f *Fixtures) create(value any) {
	f.t.Helper()
	if err := f.db.Create(value).Error; err != nil {
		f.t.Fatalf("create %T: %v", value, err)
	}
}

func (f *Fixtures) User(email string) *models.User {
	u := &models.User{Email: email, PasswordHash: "x", SystemRole: enums.UserRoleCustomer, IsActive: true}
	f.create(u)
	return u
}

func (f *Fixtures) Category(slug string, order int, parentID *uuid.UUID, active bool) *models.Category {
	c := &models.Category{Name: slug, Slug: slug, SortOrder: order, ParentID: parentID, IsActive: active}
	f.create(c)
	return c
}

func (f *Fixtures) Product(categoryID uuid.UUID, slug, price string) *models.Product {
	p := &models.Product{
		CategoryID:       categoryID,
		Name:             slug,
		Slug:             slug,
		ShortDescription: "short " + slug,
		Description:      "about " + slug,
		BasePrice:        decimal.RequireFromString(price),
		IsActive:         true,
	}
	f.create(p)
	return p
}

func (f *Fixtures) Variant(productID uuid.UUID, sku string, stock int) *models.ProductVariant {
	v := &models.ProductVariant{ProductID: productID, SKU: sku, Size: sku, Stock: stock, IsActive: true}
	f.create(v)
	return v
}

func (f *Fixtures) Image(productID uuid.UUID, url string, order int, active bool) *models.ProductImage {
	img := &models.ProductImage{ProductID: productID, Image: &url, SortOrder: order, IsActive: active}
	f.create(img)
	return img
}

// Update applies column updates to an existing row, including zero values.
func (f *Fixtures) Update(model any, columns map[string]any) {
	f.t.Helper()
	if err := f.db.Model(model).Updates(columns).Error; err != nil {
		f.t.Fatalf("update %T: %v", model, err)
	}
}
