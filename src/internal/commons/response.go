package commons

import "strings"

// Response is the envelope the mobile client parses. On failure only
// success and message are guaranteed; errors lists field level detail.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// ValidationResponse surfaces the field messages as the top level message
// because the client only displays message.
func ValidationResponse[T any](fields []string) Response[T] {
	return Response[T]{
		Success: false,
		Message: strings.Join(fields, "; "),
		Errors:  fields,
	}
}
