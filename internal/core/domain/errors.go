package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Ledger errors
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrLoanNotFound     = errors.New("loan not found")
	ErrDuplicateDeposit = errors.New("deposit already recorded for this member and month")
)
