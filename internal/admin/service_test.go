package admin

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/dbtest"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(conn)
	require.NoError(t, err)
	return svc, conn
}

func ptr[T any](v T) *T { return &v }

func TestLogoCRUD(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Logos.Create(ctx, CreateLogoRequest{Logo: "logos/a.png", URL: "https://shop.test"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	_, err = svc.Logos.Create(ctx, CreateLogoRequest{Logo: "logos/b.png", URL: "https://other.test", IsActive: ptr(false)})
	require.NoError(t, err)

	updated, err := svc.Logos.Update(ctx, created.ID, UpdateLogoRequest{URL: ptr("https://new.test")})
	require.NoError(t, err)
	assert.Equal(t, "https://new.test", updated.URL)
	assert.Equal(t, "logos/a.png", updated.Logo)

	active, err := svc.Logos.List(ctx, ListQuery{IsActive: ptr(true)})
	require.NoError(t, err)
	require.Len(t, active.Items, 1)
	assert.Equal(t, created.ID, active.Items[0].ID)
	assert.Equal(t, int64(1), active.Meta.Total)
	assert.Equal(t, defaultContentPageSize, active.Meta.PageSize)

	searched, err := svc.Logos.List(ctx, ListQuery{Search: "OTHER"})
	require.NoError(t, err)
	require.Len(t, searched.Items, 1)
	assert.Equal(t, "https://other.test", searched.Items[0].URL)

	require.NoError(t, svc.Logos.Delete(ctx, created.ID))
	_, err = svc.Logos.Get(ctx, created.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(svc.Logos.Delete(ctx, created.ID)))
}

func TestListPaging(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.NavOptions.Create(ctx, CreateNavOptionRequest{Title: "opt", URL: "/x", Order: 5 - i})
		require.NoError(t, err)
	}

	page, err := svc.NavOptions.List(ctx, ListQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Items[0].Order)
	assert.Equal(t, 4, page.Items[1].Order)
	assert.Equal(t, int64(5), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.Page)
}

func TestCategorySlugAndTreeRules(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	men, err := svc.Categories.Create(ctx, CreateCategoryRequest{Name: "Men", Slug: "men"})
	require.NoError(t, err)

	_, err = svc.Categories.Create(ctx, CreateCategoryRequest{Name: "Men again", Slug: "men"})
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

	_, err = svc.Categories.Create(ctx, CreateCategoryRequest{Name: "Bad", Slug: "bad slug!"})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	shirts, err := svc.Categories.Create(ctx, CreateCategoryRequest{Name: "Shirts", Slug: "shirts", ParentID: &men.ID})
	require.NoError(t, err)
	require.NotNil(t, shirts.ParentID)

	_, err = svc.Categories.Create(ctx, CreateCategoryRequest{Name: "Polos", Slug: "polos", ParentID: &shirts.ID})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err), "third level must be rejected")

	_, err = svc.Categories.Create(ctx, CreateCategoryRequest{Name: "Ghost", Slug: "ghost", ParentID: ptr(uuid.New())})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	women, err := svc.Categories.Create(ctx, CreateCategoryRequest{Name: "Women", Slug: "women"})
	require.NoError(t, err)
	var nest UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id":"`+women.ID.String()+`"}`), &nest))
	_, err = svc.Categories.Update(ctx, men.ID, nest)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err), "category with children cannot be nested")

	children, err := svc.Categories.List(ctx, ListQuery{Filters: map[string]string{"parent_id": men.ID.String()}})
	require.NoError(t, err)
	require.Len(t, children.Items, 1)
	assert.Equal(t, "shirts", children.Items[0].Slug)

	var detach UpdateCategoryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"parent_id":null}`), &detach))
	updated, err := svc.Categories.Update(ctx, shirts.ID, detach)
	require.NoError(t, err)
	assert.Nil(t, updated.ParentID)

	roots, err := svc.Categories.List(ctx, ListQuery{Filters: map[string]string{"parent_id": "none"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), roots.Meta.Total)

	_, err = svc.Categories.List(ctx, ListQuery{Filters: map[string]string{"parent_id": "nope"}})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestProductValidationAndFilters(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	fx := dbtest.NewFixtures(t, conn)
	category := fx.Category("tops", 0, nil, true)

	price := decimal.RequireFromString("19.99")
	discount := decimal.RequireFromString("14.50")
	created, err := svc.Products.Create(ctx, CreateProductRequest{
		CategoryID:       category.ID,
		Name:             "Linen Shirt",
		Slug:             "linen-shirt",
		ShortDescription: "breezy",
		Description:      "a breezy linen shirt",
		BasePrice:        &price,
		DiscountPrice:    &discount,
		FeaturedProducts: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "19.99", created.BasePrice)
	require.NotNil(t, created.DiscountPrice)
	assert.Equal(t, "14.50", *created.DiscountPrice)

	_, err = svc.Products.Create(ctx, CreateProductRequest{
		CategoryID: uuid.New(), Name: "Orphan", Slug: "orphan", ShortDescription: "s", Description: "d", BasePrice: &price,
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err), "dangling category")

	tooPrecise := decimal.RequireFromString("1.999")
	_, err = svc.Products.Create(ctx, CreateProductRequest{
		CategoryID: category.ID, Name: "P", Slug: "precise", ShortDescription: "s", Description: "d", BasePrice: &tooPrecise,
	})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	var clear UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"discount_price":null,"base_price":"25.00"}`), &clear))
	updated, err := svc.Products.Update(ctx, created.ID, clear)
	require.NoError(t, err)
	assert.Nil(t, updated.DiscountPrice)
	assert.Equal(t, "25.00", updated.BasePrice)

	fx.Product(category.ID, "plain-tee", "9.00")
	featured, err := svc.Products.List(ctx, ListQuery{Filters: map[string]string{"featured": "true"}})
	require.NoError(t, err)
	require.Len(t, featured.Items, 1)
	assert.Equal(t, "linen-shirt", featured.Items[0].Slug)

	byText, err := svc.Products.List(ctx, ListQuery{Search: "breezy LINEN"})
	require.NoError(t, err)
	assert.Len(t, byText.Items, 1)

	_, err = svc.Products.List(ctx, ListQuery{Filters: map[string]string{"new_arrival": "maybe"}})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestVariantsAndImages(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	fx := dbtest.NewFixtures(t, conn)
	category := fx.Category("bottoms", 0, nil, true)
	jeans := fx.Product(category.ID, "slim-jeans", "49.00")
	chinos := fx.Product(category.ID, "chinos", "39.00")

	_, err := svc.ProductVariants.Create(ctx, CreateProductVariantRequest{ProductID: jeans.ID, SKU: "JEAN-32", Size: "32", Stock: 4})
	require.NoError(t, err)
	_, err = svc.ProductVariants.Create(ctx, CreateProductVariantRequest{ProductID: chinos.ID, SKU: "JEAN-32", Size: "30"})
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err), "duplicate sku")
	_, err = svc.ProductVariants.Create(ctx, CreateProductVariantRequest{ProductID: chinos.ID, SKU: "CHINO-30", Size: "30", Stock: 1})
	require.NoError(t, err)

	found, err := svc.ProductVariants.List(ctx, ListQuery{Search: "slim"})
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "JEAN-32", found.Items[0].SKU)

	scoped, err := svc.ProductVariants.List(ctx, ListQuery{Filters: map[string]string{"product_id": chinos.ID.String(), "size": "30"}})
	require.NoError(t, err)
	require.Len(t, scoped.Items, 1)
	assert.Equal(t, "CHINO-30", scoped.Items[0].SKU)

	img, err := svc.ProductImages.Create(ctx, CreateProductImageRequest{ProductID: jeans.ID, Image: ptr("img/jeans.png"), Order: 1})
	require.NoError(t, err)
	var clear UpdateProductImageRequest
	require.NoError(t, json.Unmarshal([]byte(`{"image":null,"order":2}`), &clear))
	updated, err := svc.ProductImages.Update(ctx, img.ID, clear)
	require.NoError(t, err)
	assert.Nil(t, updated.Image)
	assert.Equal(t, 2, updated.Order)

	_, err = svc.ProductImages.Create(ctx, CreateProductImageRequest{ProductID: uuid.New()})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestReviewModeration(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	fx := dbtest.NewFixtures(t, conn)
	category := fx.Category("acc", 0, nil, true)
	product := fx.Product(category.ID, "belt", "15.00")
	ana := fx.User("ana@shop.test")
	bo := fx.User("bo@shop.test")

	good := &models.ProductReview{ProductID: product.ID, UserID: ana.ID, Rating: 5, Comment: "love it"}
	bad := &models.ProductReview{ProductID: product.ID, UserID: bo.ID, Rating: 1, Comment: "broke fast"}
	require.NoError(t, conn.Create(good).Error)
	require.NoError(t, conn.Create(bad).Error)

	low, err := svc.Reviews.List(ctx, ListQuery{Filters: map[string]string{"rating": "1"}})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "bo@shop.test", low.Items[0].UserEmail)
	assert.Equal(t, "belt", low.Items[0].ProductName)
	assert.Equal(t, defaultReviewPageSize, low.Meta.PageSize)

	_, err = svc.Reviews.List(ctx, ListQuery{Filters: map[string]string{"rating": "9"}})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	require.NoError(t, svc.Reviews.Delete(ctx, bad.ID))
	all, err := svc.Reviews.List(ctx, ListQuery{Filters: map[string]string{"product_id": product.ID.String()}})
	require.NoError(t, err)
	require.Len(t, all.Items, 1)
	assert.Equal(t, good.ID, all.Items[0].ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(svc.Reviews.Delete(ctx, bad.ID)))
}

func TestCartInspector(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	fx := dbtest.NewFixtures(t, conn)
	category := fx.Category("shoes", 0, nil, true)
	product := fx.Product(category.ID, "runner", "60.00")
	small := fx.Variant(product.ID, "RUN-40", 5)
	large := fx.Variant(product.ID, "RUN-44", 5)

	owner := fx.User("cart@shop.test")
	full := &models.Cart{UserID: owner.ID}
	require.NoError(t, conn.Create(full).Error)
	require.NoError(t, conn.Create(&models.CartItem{CartID: full.ID, VariantID: small.ID, Quantity: 2}).Error)
	require.NoError(t, conn.Create(&models.CartItem{CartID: full.ID, VariantID: large.ID, Quantity: 1}).Error)
	empty := &models.Cart{UserID: fx.User("empty@shop.test").ID}
	require.NoError(t, conn.Create(empty).Error)

	list, err := svc.Carts.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	counts := map[uuid.UUID]int64{}
	for _, item := range list.Items {
		counts[item.ID] = item.ItemCount
	}
	assert.Equal(t, int64(2), counts[full.ID])
	assert.Equal(t, int64(0), counts[empty.ID])

	searched, err := svc.Carts.List(ctx, ListQuery{Search: "cart@"})
	require.NoError(t, err)
	require.Len(t, searched.Items, 1)
	assert.Equal(t, int64(1), searched.Meta.Total)

	detail, err := svc.Carts.Get(ctx, full.ID)
	require.NoError(t, err)
	assert.Equal(t, "cart@shop.test", detail.UserEmail)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "runner", detail.Items[0].ProductName)
	assert.Equal(t, "60.00", detail.Items[0].Price)

	_, err = svc.Carts.Get(ctx, uuid.New())
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}
