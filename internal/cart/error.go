package cart

import "littlelemon/internal/apperror"

var (
	// -- Authorization --
	ErrForbidden = apperror.New(apperror.KindForbidden, "You do not have permission to perform this action.")

	// -- Validation & Input --
	ErrMissingField    = apperror.New(apperror.KindBadRequest, "missing cart field")
	ErrInvalidQuantity = apperror.New(apperror.KindBadRequest, "invalid cart quantity")

	// -- Resource State --
	ErrAlreadyInCart = apperror.New(apperror.KindConflict, "MenuItem is already present in cart.")
)
