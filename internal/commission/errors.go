package commission

import "shinepos-backend/internal/apperr"

var (
	ErrCommissionNotFound  = apperr.NotFound("Commission log not found")
	ErrRestaurantNotFound  = apperr.NotFound("Restaurant not found")
	ErrSalesPersonNotFound = apperr.NotFound("Sales person not found")
	ErrAlreadyPaid         = apperr.Conflict("Commission already paid")
	ErrPaidIsFinal         = apperr.Conflict("Paid commission cannot be moved back to pending")
	ErrInvalidID           = apperr.Validation("Invalid id")
)
