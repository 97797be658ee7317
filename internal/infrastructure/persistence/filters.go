package persistence

import (
	"regexp"
	"strings"

	"github.com/chainsync/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// columnPattern bounds what may be interpolated into ORDER BY and WHERE
// column positions, where placeholders cannot be used.
var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// applyListFilter applies filter conditions, ordering, and pagination
func applyListFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyFilterConditions(query, filter)

	orderBy := filter.OrderBy
	if !columnPattern.MatchString(orderBy) {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		orderDir = "DESC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// applyFilterConditions applies equality conditions without pagination
func applyFilterConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		if columnPattern.MatchString(key) {
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}
