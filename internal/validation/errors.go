package validation

import "errors"

// ErrPayloadTooLarge is returned when an upload exceeds size limits
var ErrPayloadTooLarge = errors.New("payload too large")

// ErrUnknownMimeType is returned when a file's MIME type cannot be determined
var ErrUnknownMimeType = errors.New("unknown MIME type")
