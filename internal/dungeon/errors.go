package dungeon

import (
	"errors"
	"fmt"
)

// Error codes reported by structural operations.
const (
	CodeIllegalBox         = "illegal-box"
	CodeIllegalPlacement   = "illegal-placement"
	CodeIllegalAttachment  = "illegal-attachment"
	CodeIllegalDetachment  = "illegal-detachment"
	CodeIllegalTemperature = "illegal-temperature"
)

// Error represents a rejected structural operation on a dungeon.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is matches any *Error carrying the same code, so callers can test with
// errors.Is(err, dungeon.ErrIllegalBox).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrIllegalBox         = &Error{Code: CodeIllegalBox, Message: "illegal bounding box"}
	ErrIllegalPlacement   = &Error{Code: CodeIllegalPlacement, Message: "illegal placement"}
	ErrIllegalAttachment  = &Error{Code: CodeIllegalAttachment, Message: "illegal attachment"}
	ErrIllegalDetachment  = &Error{Code: CodeIllegalDetachment, Message: "illegal detachment"}
	ErrIllegalTemperature = &Error{Code: CodeIllegalTemperature, Message: "illegal temperature"}

	ErrStaleIterator     = errors.New("dungeon modified during iteration")
	ErrIteratorExhausted = errors.New("iterator exhausted")
)

func illegalBox(format string, v ...interface{}) error {
	return &Error{Code: CodeIllegalBox, Message: fmt.Sprintf(format, v...)}
}

func illegalPlacement(format string, v ...interface{}) error {
	return &Error{Code: CodeIllegalPlacement, Message: fmt.Sprintf(format, v...)}
}

func illegalAttachment(format string, v ...interface{}) error {
	return &Error{Code: CodeIllegalAttachment, Message: fmt.Sprintf(format, v...)}
}

func illegalDetachment(format string, v ...interface{}) error {
	return &Error{Code: CodeIllegalDetachment, Message: fmt.Sprintf(format, v...)}
}

// Debug enables internal consistency assertions on every mutation. Leave it
// off outside tests; violations it catches are programming errors.
var Debug = false

func assertf(cond bool, format string, v ...interface{}) {
	if Debug && !cond {
		panic(fmt.Sprintf("dungeon: assertion failed: "+format, v...))
	}
}
