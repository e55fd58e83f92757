package errors

import mongodb "camplan/pkg/db/mongo"

// Re-exported repository sentinels so callers can stay within the
// domain's error vocabulary. Sharing the underlying values lets the
// schedule services match lookups from the family and camps
// repositories with errors.Is.
var (
	ErrNotFound  = mongodb.ErrNotFound
	ErrInvalidID = mongodb.ErrInvalidID
)
