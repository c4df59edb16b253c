package main

import (
	"errors"
	"fmt"

	"github.com/Edward-VS/Kerkers-sub000/internal/dungeon"
)

// RequestError represents an intent the server refuses to act on
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func badRequest(format string, v ...interface{}) error {
	return &RequestError{Code: "BAD_REQUEST", Message: fmt.Sprintf(format, v...)}
}

// errorCode extracts the code reported to viewers for err.
func errorCode(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Code
	}
	var dErr *dungeon.Error
	if errors.As(err, &dErr) {
		return dErr.Code
	}
	return ""
}
