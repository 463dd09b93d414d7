package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/vibeoutfit-backend/pkg/errors"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/pagination"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultContentPageSize = 100
	defaultReviewPageSize  = 50
	defaultCartPageSize    = 50
)

// ListQuery carries the parameters shared by every admin listing.
// Filters holds the resource specific query values (parent_id, product_id...).
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
	Filters  map[string]string
}

func (q ListQuery) filter(key string) string {
	if q.Filters == nil {
		return ""
	}
	return strings.TrimSpace(q.Filters[key])
}

// Resource is the CRUD surface exposed for one admin managed table.
type Resource[C, U, D any] interface {
	List(ctx context.Context, q ListQuery) (*types.PagedList[D], error)
	Get(ctx context.Context, id uuid.UUID) (*D, error)
	Create(ctx context.Context, req C) (*D, error)
	Update(ctx context.Context, id uuid.UUID, req U) (*D, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// definition describes how a model M is listed, built from a create
// request C, patched by an update request U and rendered as D.
type definition[M, C, U, D any] struct {
	name          string
	table         string
	searchColumns []string
	joins         string
	orderBy       []string
	filter        func(query *gorm.DB, q ListQuery) (*gorm.DB, error)
	build         func(req C) (*M, error)
	apply         func(m *M, req U) error
	check         func(ctx context.Context, tx *gorm.DB, m *M) error
	render        func(m M) D
}

type resource[M, C, U, D any] struct {
	db  *gorm.DB
	def definition[M, C, U, D]
}

func newResource[M, C, U, D any](conn *gorm.DB, def definition[M, C, U, D]) *resource[M, C, U, D] {
	if len(def.orderBy) == 0 {
		def.orderBy = []string{def.table + ".created_at DESC", def.table + ".id DESC"}
	}
	return &resource[M, C, U, D]{db: conn, def: def}
}

func (r *resource[M, C, U, D]) List(ctx context.Context, q ListQuery) (*types.PagedList[D], error) {
	page := pagination.NewPage(q.Page, q.PageSize, defaultContentPageSize)

	base := r.db.WithContext(ctx).Model(new(M))
	if r.def.joins != "" {
		base = base.Joins(r.def.joins)
	}
	if q.IsActive != nil {
		base = base.Where(r.def.table+".is_active = ?", *q.IsActive)
	}
	base = searchScope(base, r.def.searchColumns, q.Search)
	if r.def.filter != nil {
		filtered, err := r.def.filter(base, q)
		if err != nil {
			return nil, err
		}
		base = filtered
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count "+r.def.name)
	}

	query := base.Session(&gorm.Session{}).Select(r.def.table + ".*")
	for _, order := range r.def.orderBy {
		query = query.Order(order)
	}
	var rows []M
	if err := query.Offset(page.Offset()).Limit(page.Size).Find(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list "+r.def.name)
	}

	items := make([]D, 0, len(rows))
	for _, row := range rows {
		items = append(items, r.def.render(row))
	}
	return &types.PagedList[D]{
		Items: items,
		Meta:  types.PageMeta{Page: page.Number, PageSize: page.Size, Total: total},
	}, nil
}

func (r *resource[M, C, U, D]) Get(ctx context.Context, id uuid.UUID) (*D, error) {
	row, err := r.find(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	dto := r.def.render(*row)
	return &dto, nil
}

func (r *resource[M, C, U, D]) Create(ctx context.Context, req C) (*D, error) {
	row, err := r.def.build(req)
	if err != nil {
		return nil, err
	}
	if r.def.check != nil {
		if err := r.def.check(ctx, r.db.WithContext(ctx), row); err != nil {
			return nil, err
		}
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, persistError(r.def.name, err)
	}
	dto := r.def.render(*row)
	return &dto, nil
}

func (r *resource[M, C, U, D]) Update(ctx context.Context, id uuid.UUID, req U) (*D, error) {
	var out *D
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := r.find(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := r.def.apply(row, req); err != nil {
			return err
		}
		if r.def.check != nil {
			if err := r.def.check(ctx, tx, row); err != nil {
				return err
			}
		}
		if err := tx.Save(row).Error; err != nil {
			return persistError(r.def.name, err)
		}
		dto := r.def.render(*row)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resource[M, C, U, D]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "delete "+r.def.name)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", r.def.name)
	}
	return nil
}

func (r *resource[M, C, U, D]) find(ctx context.Context, conn *gorm.DB, id uuid.UUID) (*M, error) {
	row := new(M)
	if err := conn.WithContext(ctx).Where("id = ?", id).Take(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", r.def.name)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+r.def.name)
	}
	return row, nil
}

// searchScope ORs a case-insensitive substring match over columns.
func searchScope(query *gorm.DB, columns []string, term string) *gorm.DB {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := db.ContainsPattern(term)
	clauses := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", col)+db.LikeEscape)
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func persistError(name string, err error) error {
	switch {
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Newf(pkgerrors.CodeConflict, "%s already exists", name)
	case db.IsForeignKeyViolation(err):
		return pkgerrors.New(pkgerrors.CodeValidation, "referenced record does not exist")
	case db.IsCheckViolation(err):
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid %s values", name)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save "+name)
}

func uuidFilter(q ListQuery, key string) (*uuid.UUID, error) {
	raw := q.filter(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be a uuid", key).WithDetails(map[string]any{"field": key})
	}
	return &id, nil
}

func boolFilter(q ListQuery, key string) (*bool, error) {
	raw := strings.ToLower(q.filter(key))
	switch raw {
	case "":
		return nil, nil
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	}
	return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "%s must be a boolean", key).WithDetails(map[string]any{"field": key})
}

func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
