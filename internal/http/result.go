package httpapi

// Result is the uniform response envelope.
// - code: 2000 success, -1 error
// - type: 'success' | 'error' | 'warning'
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// Warn is used for rejected-but-expected outcomes, e.g. a duplicate
// assignment drop. The client surfaces it as a warning toast, not an error.
func Warn(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "warning", Message: message, Result: nil}
}
