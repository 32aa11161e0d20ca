package model

// Options configure the schema builder.
type Options struct {
	// Labeler derives a display label from a field name when the schema does
	// not provide one.
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{Labeler: IdentityLabeler}
}
