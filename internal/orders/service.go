package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/pagination"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reads orders for customers and manages them for admins.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error)
	AdminList(ctx context.Context, filters AdminFilters) (*AdminOrderList, error)
	AdminGet(ctx context.Context, orderID uuid.UUID) (*AdminOrderDTO, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*AdminOrderDTO, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListForUser(ctx, userID, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	items := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToOrderDTO(row))
	}
	return &OrderList{Items: items, NextCursor: next}, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	order, err := s.repo.FindForUser(ctx, orderID, userID)
	if err != nil {
		return nil, notFoundOr(err, "load order")
	}
	dto := ToOrderDTO(*order)
	return &dto, nil
}

func (s *service) AdminList(ctx context.Context, filters AdminFilters) (*AdminOrderList, error) {
	page := pagination.NewPage(filters.Page, filters.PageSize, adminDefaultPageSize)
	rows, total, err := s.repo.ListAll(ctx, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	items := make([]AdminOrderDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToAdminOrderDTO(row))
	}
	return &AdminOrderList{
		Items: items,
		Meta:  types.PageMeta{Page: page.Number, PageSize: page.Size, Total: total},
	}, nil
}

func (s *service) AdminGet(ctx context.Context, orderID uuid.UUID) (*AdminOrderDTO, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "load order")
	}
	dto := ToAdminOrderDTO(*order)
	return &dto, nil
}

// UpdateStatus allows any valid transition except out of cancelled or refunded.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*AdminOrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order status %q", status)
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "load order")
	}
	if order.Status == status {
		dto := ToAdminOrderDTO(*order)
		return &dto, nil
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.Newf(pkgerrors.CodeStateConflict, "order is %s and can no longer change", order.Status).
			WithDetails(map[string]any{"current_status": order.Status, "requested_status": status})
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, order.Status, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !updated {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order status changed concurrently")
	}
	return s.AdminGet(ctx, orderID)
}

func notFoundOr(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
