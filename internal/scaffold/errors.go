package scaffold

import "fmt"

// TemplateError reports a manifest template that is not a JSON object.
type TemplateError struct {
	Template string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("invalid manifest template %q: %v", e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }
