package notify

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid notify configuration")
	ErrInvalidNotice    = errors.New("invalid notice")
	ErrFailedToDispatch = errors.New("failed to dispatch notice")
)
