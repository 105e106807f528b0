package services

import "errors"

// Sentinel errors for the failure taxonomy the handlers translate into
// HTTP statuses. Services wrap these with fmt.Errorf("...: %w", Err...).
var (
  ErrNotFound      = errors.New("not found")
  ErrValidation    = errors.New("validation failed")
  ErrAlreadyExists = errors.New("already exists")
  ErrUnauthorized  = errors.New("unauthorized")
  ErrForbidden     = errors.New("forbidden")
  ErrAIService     = errors.New("ai service error")
)
