package postgres

import "errors"

// ErrNotFound is wrapped by repository methods when the target row does
// not exist, so handlers can map it to a 404 without string matching.
var ErrNotFound = errors.New("record not found")

// ErrRoomUnavailable is returned by CheckIn when the room exists but is
// not in the available state.
var ErrRoomUnavailable = errors.New("room is not available")
