package status

import "errors"

var (
	// ErrInvalidArgs reports a caller programming error: a missing output
	// destination, a mistyped destination or an unknown family.
	ErrInvalidArgs = errors.New("invalid arguments")
	// ErrIO reports a buffer too short for the format's fixed header.
	ErrIO = errors.New("input/output error")
	// ErrUnsupported reports a fact the format or capture does not carry.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrNoMemory reports a failure to construct a decoder instance.
	ErrNoMemory = errors.New("out of memory")
)

// Message returns the human-readable message for err.
func Message(err error) string {
	switch {
	case err == nil:
		return "Success"
	case errors.Is(err, ErrUnsupported):
		return "Unsupported operation"
	case errors.Is(err, ErrInvalidArgs):
		return "Invalid arguments"
	case errors.Is(err, ErrNoMemory):
		return "Out of memory"
	case errors.Is(err, ErrIO):
		return "Input/output error"
	default:
		return "Unknown error"
	}
}
