package menu

import "littlelemon/internal/apperror"

var (
	ErrForbidden       = apperror.New(apperror.KindForbidden, "Unauthorized Access")
	ErrItemNotFound    = apperror.New(apperror.KindNotFound, "menu item not found")
	ErrTitleTaken      = apperror.New(apperror.KindBadRequest, "menu item already exists")
	ErrInvalidMenuData = apperror.New(apperror.KindValidation, "invalid menu item data")

	ErrPriceRange  = apperror.Wrap(ErrInvalidMenuData, "Invalid price: expected range [0.0, 75.0].")
	ErrTitleLength = apperror.Wrap(ErrInvalidMenuData, "Invalid title: exceeds character limit of 100.")
)
