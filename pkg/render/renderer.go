// Package render defines the contract between the schema core and the
// rendering collaborators that turn schema trees into interactive forms.
package render

import (
	"context"

	"github.com/goliatone/go-jsonform/pkg/path"
	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Form is the unit handed to renderers: the decorated schema tree plus the
// current flat control values keyed by dotted path.
type Form struct {
	Title  string
	Schema *schema.Node
	Values path.FlatValues
}

// FormRenderer converts a Form into a byte representation (HTML, terminal
// transcript, JSON, ...).
type FormRenderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
