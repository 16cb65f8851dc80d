package order

import "littlelemon/internal/apperror"

var (
	ErrNoRole          = apperror.New(apperror.KindForbidden, "unauthorized access")
	ErrCustomerOnly    = apperror.New(apperror.KindForbidden, "unauthorized access. Customer endpoint")
	ErrCreateForbidden = apperror.New(apperror.KindForbidden, "Unauthorized access.")
	ErrNotOwner        = apperror.New(apperror.KindForbidden, "order does not belong to customer")

	ErrOrderNotFound = apperror.New(apperror.KindNotFound, "order not found")
	ErrItemNotFound  = apperror.New(apperror.KindNotFound, "orderitem not found")
	ErrCrewNotFound  = apperror.New(apperror.KindNotFound, "delivery_crew not found")

	ErrEmptyCart     = apperror.New(apperror.KindBadRequest, "no items are currently in cart")
	ErrMissingKey    = apperror.New(apperror.KindBadRequest, "missing expected key")
	ErrInvalidStatus = apperror.New(apperror.KindBadRequest, "status: expected boolean value of true, false, 0, or 1")
	ErrInvalidValue  = apperror.New(apperror.KindBadRequest, "invalid value")
	ErrForeignOrder  = apperror.New(apperror.KindBadRequest, "order does not belong to user")
	ErrDelivered     = apperror.New(apperror.KindBadRequest, "orders can not be modified after delivery")
	ErrInDelivery    = apperror.New(apperror.KindBadRequest, "orders can not be modified while being delivered")
	ErrAmountTooHigh = apperror.New(apperror.KindBadRequest, "amount exceeds 9999.99")
)
