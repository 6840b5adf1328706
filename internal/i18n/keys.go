// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"
	KeyRouteNotFound = "error.route_not_found"
	KeyInvalidID     = "validation.invalid_id"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Not found
	KeyOrderNotFound     = "order.not_found"
	KeyOrderItemNotFound = "order_item.not_found"
	KeyProductNotFound   = "product.not_found"
	KeyTeamNotFound      = "team.not_found"
	KeyClassroomNotFound = "classroom.not_found"

	// Deleted
	KeyOrderDeleted     = "order.deleted"
	KeyOrderItemDeleted = "order_item.deleted"
	KeyProductDeleted   = "product.deleted"
	KeyTeamDeleted      = "team.deleted"
	KeyClassroomDeleted = "classroom.deleted"

	// Sales
	KeySalesRecalculationFailed = "sales.recalculation_failed"
	KeySalesRepairFailed        = "sales.repair_failed"
)
