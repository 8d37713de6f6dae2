package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPlanRequired       = errors.New("plan purchase required")
	ErrStoreUnavailable   = errors.New("entitlement store unavailable")
	ErrVerificationFailed = errors.New("payment verification failed")
	ErrDuplicateOperation = errors.New("duplicate operation")
)
