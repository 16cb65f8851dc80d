package category

import "littlelemon/internal/apperror"

var (
	ErrTitleRequired = apperror.New(apperror.KindBadRequest, "category title is required")
	ErrSlugTaken     = apperror.New(apperror.KindConflict, "category slug already exists")

	// ErrInvalidCategory is the kind every failed lookup carries.
	ErrInvalidCategory = apperror.New(apperror.KindValidation, "invalid category")
)
