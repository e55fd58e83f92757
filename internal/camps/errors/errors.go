package errors

import mongodb "camplan/pkg/db/mongo"

// Re-exported repository sentinels, matching the other domains.
var (
	ErrNotFound  = mongodb.ErrNotFound
	ErrInvalidID = mongodb.ErrInvalidID
)
