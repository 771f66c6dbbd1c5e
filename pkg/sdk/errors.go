package softhub

import "github.com/kailas-cloud/softhub/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrAlreadyExists       = domain.ErrAlreadyExists
	ErrInvalidQuery        = domain.ErrInvalidSpec
	ErrValidation          = domain.ErrValidation
	ErrDownloadUnavailable = domain.ErrDownloadUnavailable
)
