package repository

import "errors"

// ErrStoreUnavailable marks a connectivity failure that survived the
// reconnect cycle. Absent shard tables are not errors and never produce it.
var ErrStoreUnavailable = errors.New("store unavailable")
