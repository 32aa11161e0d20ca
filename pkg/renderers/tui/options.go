package tui

import "github.com/goliatone/go-jsonform/pkg/convert"

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithConverters overrides the registry used to coerce entered text into
// typed values.
func WithConverters(registry *convert.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.converters = registry
		}
	}
}

// WithMaxRetries bounds how many times a field re-prompts after a coercion
// failure before the raw string is kept as-is.
func WithMaxRetries(n int) Option {
	return func(r *Renderer) {
		if n >= 0 {
			r.maxRetries = n
		}
	}
}
