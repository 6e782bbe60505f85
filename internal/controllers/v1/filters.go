package v1

import (
	"fmt"

	"github.com/fintrack/backend/internal/httputil"
	"github.com/fintrack/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}

// monthRangeFilter filters a query by the month column of the given table.
// An exact month takes precedence over a from/until range.
func monthRangeFilter(query *gorm.DB, table, month, fromMonth, untilMonth string, setFields []string) (*gorm.DB, error) {
	if slices.Contains(setFields, "Month") {
		parsed, err := types.ParseMonth(month)
		if err != nil {
			return nil, httputil.ErrInvalidMonth
		}

		return query.Where(fmt.Sprintf("%s.month >= date(?)", table), parsed).
			Where(fmt.Sprintf("%s.month < date(?)", table), parsed.AddDate(0, 1)), nil
	}

	if slices.Contains(setFields, "FromMonth") {
		parsed, err := types.ParseMonth(fromMonth)
		if err != nil {
			return nil, httputil.ErrInvalidMonth
		}
		query = query.Where(fmt.Sprintf("%s.month >= date(?)", table), parsed)
	}

	if slices.Contains(setFields, "UntilMonth") {
		parsed, err := types.ParseMonth(untilMonth)
		if err != nil {
			return nil, httputil.ErrInvalidMonth
		}
		query = query.Where(fmt.Sprintf("%s.month < date(?)", table), parsed.AddDate(0, 1))
	}

	return query, nil
}

// amountFilters filters a query by upper and lower bounds on the amount column.
func amountFilters(query *gorm.DB, lessOrEqual, moreOrEqual decimal.Decimal, setFields []string) *gorm.DB {
	if slices.Contains(setFields, "AmountLessOrEqual") {
		query = query.Where("amount <= ?", lessOrEqual)
	}

	if slices.Contains(setFields, "AmountMoreOrEqual") {
		query = query.Where("amount >= ?", moreOrEqual)
	}

	return query
}

// noteFilter is stringFilters for resources that only have a note, no name.
func noteFilter(query *gorm.DB, setFields []string, note string) *gorm.DB {
	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	return query
}
