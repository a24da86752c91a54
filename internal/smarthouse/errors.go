package smarthouse

import "errors"

// Errors for the smarthouse package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, smarthouse.ErrMalformedRow) {
//	    // the store content does not form a valid house
//	}
var (
	// ErrStoreUnavailable is returned when the store connection cannot be
	// opened or used.
	ErrStoreUnavailable = errors.New("smarthouse: store unavailable")

	// ErrMalformedRow is returned when a fetched row cannot be mapped onto the
	// house model: a required column is NULL, a device references an unknown
	// room, or a room name or device id occurs twice.
	ErrMalformedRow = errors.New("smarthouse: malformed row")

	// ErrPersistenceFailure is returned when the store rejects a write.
	ErrPersistenceFailure = errors.New("smarthouse: persistence failure")

	// ErrInvalidDate is returned when a date argument is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("smarthouse: invalid date")

	// ErrFloorNotFound is returned when registering a room on an unknown floor.
	ErrFloorNotFound = errors.New("smarthouse: floor not found")

	// ErrRoomNotFound is returned when a room is nil or not part of the house.
	ErrRoomNotFound = errors.New("smarthouse: room not found")

	// ErrDuplicateRoom is returned when a room name is already registered.
	ErrDuplicateRoom = errors.New("smarthouse: duplicate room name")

	// ErrDuplicateDevice is returned when a device id is already registered.
	ErrDuplicateDevice = errors.New("smarthouse: duplicate device id")

	// ErrInvalidRoom is returned when a room has no name.
	ErrInvalidRoom = errors.New("smarthouse: invalid room")

	// ErrInvalidDevice is returned when a device is nil or has no id.
	ErrInvalidDevice = errors.New("smarthouse: invalid device")
)
