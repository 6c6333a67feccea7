package persistence

import (
	"strings"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"category":      true,
	"quantity":      true,
	"unit_price":    true,
	"min_threshold": true,
	"tracking_mode": true,
}

// InventoryTransactionSortFields contains allowed sort fields for ledger rows
var InventoryTransactionSortFields = map[string]bool{
	"created_at":       true,
	"transaction_date": true,
	"transaction_type": true,
	"quantity":         true,
	"cost":             true,
}

// DishSortFields contains allowed sort fields for dishes
var DishSortFields = map[string]bool{
	"created_at":              true,
	"updated_at":              true,
	"name":                    true,
	"category":                true,
	"selling_price_per_plate": true,
	"servings_per_batch":      true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"created_at":  true,
	"incurred_at": true,
	"category":    true,
	"amount":      true,
}

// PlanRecordSortFields contains allowed sort fields for archived plans
var PlanRecordSortFields = map[string]bool{
	"created_at":     true,
	"planned_for":    true,
	"name":           true,
	"estimated_cost": true,
	"total_servings": true,
}

// alphabeticSortFields list text columns that read A to Z when no direction
// is given. Every other column defaults to newest or largest first.
var alphabeticSortFields = map[string]bool{
	"name":          true,
	"category":      true,
	"tracking_mode": true,
}

// defaultSortOrder resolves the direction for field. An explicit but invalid
// direction still normalizes to DESC.
func defaultSortOrder(field, orderDir string) string {
	if strings.TrimSpace(orderDir) == "" && alphabeticSortFields[field] {
		return "ASC"
	}
	return ValidateSortOrder(orderDir)
}

// applyPaging orders and paginates a query with a whitelisted sort field.
// The id tiebreaker keeps page boundaries stable when sort values repeat.
func applyPaging(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	query = query.Order(field + " " + defaultSortOrder(field, filter.OrderDir)).Order("id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// searchPattern lowers and wraps a search term for a LIKE match
func searchPattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
