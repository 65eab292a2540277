package utils

import "errors"

var (
	ErrLinkNotFound    = errors.New("review link not found")
	ErrLinkAlreadyUsed = errors.New("review link already used")
	ErrLinkExpired     = errors.New("review link expired")
	ErrValidation      = errors.New("validation failed")
	ErrNoReviews       = errors.New("no reviews found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrDatabaseError   = errors.New("database error")
)
