package user

import "littlelemon/internal/apperror"

var (
	ErrForbidden          = apperror.New(apperror.KindForbidden, "You do not have permission to perform this action.")
	ErrMissingCredentials = apperror.New(apperror.KindBadRequest, "username and password are required")
	ErrUsernameTaken      = apperror.New(apperror.KindConflict, "A user with that username already exists.")
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "Unable to log in with provided credentials.")
	ErrMissingUserRef     = apperror.New(apperror.KindBadRequest, "Missing valid User id or username")
	ErrUserNotFound       = apperror.New(apperror.KindNotFound, "user not found")
)
