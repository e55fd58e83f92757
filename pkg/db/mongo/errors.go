package mongo

import "errors"

// Sentinel errors shared by every mongo-backed repository. The domain
// error packages re-export them so services can match lookups from any
// domain with errors.Is.
var (
	ErrNotFound  = errors.New("record not found")
	ErrInvalidID = errors.New("invalid id format")
)
