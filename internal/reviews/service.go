package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const uniqueReviewConstraint = "ux_product_reviews_product_user"

type repository interface {
	ActiveProductIDBySlug(ctx context.Context, slug string) (uuid.UUID, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error)
	Create(ctx context.Context, review *models.ProductReview) error
}

// Service reads and writes product reviews. One review per user and product.
type Service interface {
	List(ctx context.Context, productSlug string) ([]ReviewDTO, error)
	Create(ctx context.Context, userID uuid.UUID, productSlug string, input CreateReviewRequest) (*ReviewDTO, error)
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, productSlug string) ([]ReviewDTO, error) {
	productID, err := s.resolveProduct(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	out := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToReviewDTO(row))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, productSlug string, input CreateReviewRequest) (*ReviewDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}
	if len([]rune(comment)) > maxCommentLength {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "comment must be at most %d characters", maxCommentLength)
	}

	productID, err := s.resolveProduct(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	review := &models.ProductReview{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already reviewed")
		}
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	dto := ToReviewDTO(*review)
	return &dto, nil
}

func (s *service) resolveProduct(ctx context.Context, slug string) (uuid.UUID, error) {
	id, err := s.repo.ActiveProductIDBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return id, nil
}
