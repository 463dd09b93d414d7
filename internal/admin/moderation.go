package admin

import (
	"context"
	"strconv"
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/internal/cart"
	"github.com/angelmondragon/vibeoutfit-backend/internal/reviews"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/pagination"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminReviewDTO struct {
	reviews.ReviewDTO
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UserEmail   string    `json:"user_email"`
}

type CartSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartDetailDTO struct {
	CartSummaryDTO
	Items []cart.ItemDTO `json:"items"`
}

// ReviewModeration lists and removes customer reviews.
type ReviewModeration interface {
	List(ctx context.Context, q ListQuery) (*types.PagedList[AdminReviewDTO], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartInspector is a read-only view over customer carts.
type CartInspector interface {
	List(ctx context.Context, q ListQuery) (*types.PagedList[CartSummaryDTO], error)
	Get(ctx context.Context, id uuid.UUID) (*CartDetailDTO, error)
}

type reviewModeration struct {
	db *gorm.DB
}

func newReviewModeration(conn *gorm.DB) ReviewModeration {
	return &reviewModeration{db: conn}
}

func (s *reviewModeration) List(ctx context.Context, q ListQuery) (*types.PagedList[AdminReviewDTO], error) {
	page := pagination.NewPage(q.Page, q.PageSize, defaultReviewPageSize)
	base := s.db.WithContext(ctx).
		Model(&models.ProductReview{}).
		Joins("JOIN products ON products.id = product_reviews.product_id").
		Joins("JOIN users ON users.id = product_reviews.user_id")
	base = searchScope(base, []string{"products.name", "users.email", "product_reviews.comment"}, q.Search)

	productID, err := uuidFilter(q, "product_id")
	if err != nil {
		return nil, err
	}
	if productID != nil {
		base = base.Where("product_reviews.product_id = ?", *productID)
	}
	if raw := q.filter("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5").WithDetails(map[string]any{"field": "rating"})
		}
		base = base.Where("product_reviews.rating = ?", rating)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count reviews")
	}
	var rows []models.ProductReview
	err = base.Session(&gorm.Session{}).
		Select("product_reviews.*").
		Preload("User").
		Preload("Product").
		Order("product_reviews.created_at DESC").
		Order("product_reviews.id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	items := make([]AdminReviewDTO, 0, len(rows))
	for _, row := range rows {
		dto := AdminReviewDTO{ReviewDTO: reviews.ToReviewDTO(row), ProductID: row.ProductID}
		if row.Product != nil {
			dto.ProductName = row.Product.Name
		}
		if row.User != nil {
			dto.UserEmail = row.User.Email
		}
		items = append(items, dto)
	}
	return &types.PagedList[AdminReviewDTO]{
		Items: items,
		Meta:  types.PageMeta{Page: page.Number, PageSize: page.Size, Total: total},
	}, nil
}

func (s *reviewModeration) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductReview{})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete review")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return nil
}

type cartInspector struct {
	db *gorm.DB
}

func newCartInspector(conn *gorm.DB) CartInspector {
	return &cartInspector{db: conn}
}

type cartRow struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	UserEmail string
	ItemCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r cartRow) summary() CartSummaryDTO {
	return CartSummaryDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		UserEmail: r.UserEmail,
		ItemCount: r.ItemCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

const cartSummaryColumns = "carts.id, carts.user_id, users.email AS user_email, carts.created_at, carts.updated_at, " +
	"(SELECT COUNT(*) FROM cart_items WHERE cart_items.cart_id = carts.id) AS item_count"

func (s *cartInspector) carts(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("carts").
		Joins("JOIN users ON users.id = carts.user_id")
}

func (s *cartInspector) List(ctx context.Context, q ListQuery) (*types.PagedList[CartSummaryDTO], error) {
	page := pagination.NewPage(q.Page, q.PageSize, defaultCartPageSize)
	base := searchScope(s.carts(ctx), []string{"users.email"}, q.Search)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count carts")
	}
	var rows []cartRow
	err := base.Session(&gorm.Session{}).
		Select(cartSummaryColumns).
		Order("carts.created_at DESC").
		Order("carts.id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carts")
	}

	items := make([]CartSummaryDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.summary())
	}
	return &types.PagedList[CartSummaryDTO]{
		Items: items,
		Meta:  types.PageMeta{Page: page.Number, PageSize: page.Size, Total: total},
	}, nil
}

func (s *cartInspector) Get(ctx context.Context, id uuid.UUID) (*CartDetailDTO, error) {
	var row cartRow
	result := s.carts(ctx).Select(cartSummaryColumns).Where("carts.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "load cart")
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}

	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("Variant.Product").
		Where("cart_id = ?", id).
		Order("created_at ASC").
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart items")
	}

	detail := &CartDetailDTO{CartSummaryDTO: row.summary(), Items: make([]cart.ItemDTO, 0, len(items))}
	for _, item := range items {
		detail.Items = append(detail.Items, cart.ToItemDTO(item))
	}
	return detail, nil
}
