package domain

import "errors"

var (
	ErrUnknownStock     = errors.New("unknown stock")
	ErrFetchFailed      = errors.New("failed to fetch stock data")
	ErrInsufficientData = errors.New("insufficient data")
	ErrRenderFailed     = errors.New("failed to render chart")
)

// ErrorKind labels an error with its taxonomy bucket for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownStock):
		return "unknown_stock"
	case errors.Is(err, ErrFetchFailed):
		return "fetch_failed"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrRenderFailed):
		return "render_failed"
	default:
		return "internal"
	}
}
