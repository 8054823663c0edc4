package chat

import "errors"

// Error kinds surfaced by the store and service. Handlers match with
// errors.Is and translate to message_error / delete_error events or HTTP
// statuses at the boundary.
var (
	ErrValidation          = errors.New("missing or invalid message fields")
	ErrNotFound            = errors.New("message not found")
	ErrForbidden           = errors.New("only the sender can delete for everyone")
	ErrNotFoundOrForbidden = errors.New("message not found or requester is not a participant")
	ErrStoreUnavailable    = errors.New("message store unavailable")
)
