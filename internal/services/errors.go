package services

import "errors"

// Service-level sentinel errors
var (
	ErrTableNotLoaded   = errors.New("review table not loaded")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrCategoryRequired = errors.New("category parameter is required")
)
