package option

import (
	"fmt"

	"gorm.io/gorm"
)

// QueryOption narrows or shapes a repository query.
type QueryOption func(tx *gorm.DB) *gorm.DB

type Operator string

const (
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
	NE  Operator = "<>"
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

func ApplyOperator(c Condition) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(fmt.Sprintf("%s %s ?", c.Field, c.Operator), c.Value)
	}
}

type QuerySortBy struct {
	SortBy  string
	OrderBy string
	// Allow is the set of sortable columns. Anything outside it falls back
	// to created_at.
	Allow map[string]bool
}

func WithSortBy(s QuerySortBy) QueryOption {
	column := s.SortBy
	if column == "" || (s.Allow != nil && !s.Allow[column]) {
		column = "created_at"
	}

	order := "ASC"
	if s.OrderBy == "desc" || s.OrderBy == "DESC" {
		order = "DESC"
	}

	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(fmt.Sprintf("%s %s", column, order))
	}
}

func WithLimit(n int) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(n)
	}
}
