package chrome

// Error codes reported by RenderError.
const (
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
)

// RenderError describes a failed rasterization.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a RenderError.
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
