package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository interface {
	ActiveTopCategories(ctx context.Context, limit int) ([]models.Category, error)
	ChildrenOf(ctx context.Context, parentIDs []uuid.UUID) ([]models.Category, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FirstActiveImages(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]*string, error)
	ActiveProductBySlug(ctx context.Context, slug string) (*models.Product, error)
}

// Service answers the public catalog queries.
type Service interface {
	ListTopCategories(ctx context.Context) ([]CategoryDTO, error)
	ListCategoriesWithChildren(ctx context.Context) ([]ParentCategoryDTO, error)
	ListProductsByCategory(ctx context.Context, slug string) ([]ProductSummary, error)
	ListFeatured(ctx context.Context) ([]ProductSummary, error)
	ListNewArrivals(ctx context.Context) ([]ProductSummary, error)
	GetProductDetail(ctx context.Context, slug string) (*ProductDetail, error)
}

type service struct {
	repo repository
}

func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListTopCategories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ActiveTopCategories(ctx, maxTopCategories)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToCategoryDTO(row))
	}
	return out, nil
}

// ListCategoriesWithChildren assembles the two-level tree from two queries.
// Children are not filtered on is_active.
func (s *service) ListCategoriesWithChildren(ctx context.Context) ([]ParentCategoryDTO, error) {
	parents, err := s.repo.ActiveTopCategories(ctx, 0)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list parent categories")
	}
	ids := make([]uuid.UUID, 0, len(parents))
	for _, p := range parents {
		ids = append(ids, p.ID)
	}
	children, err := s.repo.ChildrenOf(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list child categories")
	}

	byParent := make(map[uuid.UUID][]ChildCategoryDTO, len(parents))
	for _, c := range children {
		if c.ParentID == nil {
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], ChildCategoryDTO{
			ID:    c.ID,
			Name:  c.Name,
			Slug:  c.Slug,
			Image: c.Image,
		})
	}

	out := make([]ParentCategoryDTO, 0, len(parents))
	for _, p := range parents {
		kids := byParent[p.ID]
		if kids == nil {
			kids = []ChildCategoryDTO{}
		}
		out = append(out, ParentCategoryDTO{
			ID:       p.ID,
			Name:     p.Name,
			Slug:     p.Slug,
			Image:    p.Image,
			Children: kids,
		})
	}
	return out, nil
}

func (s *service) ListProductsByCategory(ctx context.Context, slug string) ([]ProductSummary, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return []ProductSummary{}, nil
	}
	return s.listProducts(ctx, ProductFilter{CategorySlug: slug})
}

func (s *service) ListFeatured(ctx context.Context) ([]ProductSummary, error) {
	return s.listProducts(ctx, ProductFilter{Featured: true})
}

func (s *service) ListNewArrivals(ctx context.Context) ([]ProductSummary, error) {
	return s.listProducts(ctx, ProductFilter{NewArrivals: true})
}

func (s *service) listProducts(ctx context.Context, filter ProductFilter) ([]ProductSummary, error) {
	rows, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	images, err := s.repo.FirstActiveImages(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product images")
	}

	out := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToProductSummary(row, images[row.ID]))
	}
	return out, nil
}

func (s *service) GetProductDetail(ctx context.Context, slug string) (*ProductDetail, error) {
	product, err := s.repo.ActiveProductBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	detail := ToProductDetail(*product)
	return &detail, nil
}
