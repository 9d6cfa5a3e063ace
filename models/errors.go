package models

import "errors"

// Domain failures surfaced to handlers with stable codes. Anything else
// coming out of the models package is treated as an internal error.
var (
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("a pending invitation already exists for this recipient")
	ErrExpired          = errors.New("invitation has expired")
	ErrAlreadyProcessed = errors.New("invitation has already been processed")
	ErrInvalidAction    = errors.New("action must be ACCEPT or REJECT")
	ErrEmailTaken       = errors.New("a user with this email already exists")
	ErrEmailMismatch    = errors.New("invitation is bound to a different email")
)
