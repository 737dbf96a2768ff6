package sfoglia

import "fmt"

// ErrorKind classifies engine failures. The engine records the kind and
// message of the last failing operation; selection operations clear it on
// entry.
type ErrorKind int

const (
	NoError          ErrorKind = iota // cleared state
	StyleConfigError                  // missing/ambiguous/malformed style descriptor
	ThemeConfigError                  // malformed theme descriptor
	TemplateError                     // stylesheet template missing or unreadable
	ExportError                       // output write failure
	ResourceError                     // asset read/recolor/write failure
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case StyleConfigError:
		return "StyleConfigError"
	case ThemeConfigError:
		return "ThemeConfigError"
	case TemplateError:
		return "TemplateError"
	case ExportError:
		return "ExportError"
	case ResourceError:
		return "ResourceError"
	}
	return "Unknown"
}

// EngineError is the error type produced by all fallible engine operations.
// No engine operation panics across the public boundary; failures are
// recorded internally and also returned as *EngineError where the API
// surface returns errors.
type EngineError struct {
	Kind    ErrorKind
	Message string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("sfoglia: %s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *EngineError {
	return &EngineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
