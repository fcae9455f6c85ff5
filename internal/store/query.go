package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Page selects a window of a listing.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) scope(db *gorm.DB) *gorm.DB {
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	return db
}

// sortColumns maps accepted orderBy names (snake_case and camelCase) to
// qualified columns.
type sortColumns map[string]string

// orderBy turns "name" or "-name" into an ORDER BY clause. An empty field
// sorts by primary key.
func (cols sortColumns) orderBy(table, field string) (clause.OrderByColumn, error) {
	desc := strings.HasPrefix(field, "-")
	name := strings.TrimPrefix(field, "-")
	if name == "" {
		return clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}, Desc: desc}, nil
	}

	column, ok := cols[name]
	if !ok {
		return clause.OrderByColumn{}, fmt.Errorf("%w: %q", ErrUnknownSortField, name)
	}
	return clause.OrderByColumn{Column: clause.Column{Table: table, Name: column}, Desc: desc}, nil
}

// list counts every row matching filter and loads the requested page.
func list[T any](db *gorm.DB, table string, cols sortColumns, filter func(*gorm.DB) *gorm.DB, orderBy string, page Page, dest *[]T, loaders ...func(*gorm.DB) *gorm.DB) (int64, error) {
	order, err := cols.orderBy(table, orderBy)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := db.Model(new(T)).Scopes(filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	q := db.Model(new(T)).Scopes(filter, page.scope).Order(order)
	if order.Column.Name != "id" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
	}
	if err := q.Scopes(loaders...).Find(dest).Error; err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return total, nil
}

func contains(value string) string {
	return "%" + strings.ToLower(value) + "%"
}
