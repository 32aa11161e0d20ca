package render

// RenderOptions describe per-request data renderers can use to customise
// their output without touching the schema tree.
type RenderOptions struct {
	// IncludePending renders in-progress "new item" editors (paths carrying
	// the "+" sentinel) alongside committed fields.
	IncludePending bool
	// Errors surfaces validation feedback keyed by field path so renderers
	// can attach inline messages.
	Errors map[string][]string
}
