package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidSecret indicates that a supplied bank secret did not match the stored hash.
var ErrInvalidSecret = errors.New("invalid secret")

// ErrInsufficientFunds indicates that an account balance does not cover the requested amount.
var ErrInsufficientFunds = errors.New("insufficient balance")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but does not own the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation lost a race or violated a state transition
// (e.g. a concurrent balance update, or validating a transaction twice).
var ErrConflict = errors.New("conflicting state change")

// ErrInternal indicates an unexpected failure in the storage layer or elsewhere.
var ErrInternal = errors.New("internal error")
