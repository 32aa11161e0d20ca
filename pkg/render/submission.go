package render

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-jsonform/pkg/path"
)

// FlatValuesFromForm converts a decoded HTML form submission into the flat
// path map the core reassembles data from. Control names are expected to be
// dotted paths; repeated names keep their contiguous indices appended
// ("tags.0", "tags.1"). Names that do not parse as paths are dropped.
func FlatValuesFromForm(values url.Values) path.FlatValues {
	if len(values) == 0 {
		return nil
	}
	out := make(path.FlatValues, len(values))
	for name, raw := range values {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, err := path.Parse(trimmed); err != nil {
			continue
		}
		switch len(raw) {
		case 0:
			out[trimmed] = ""
		case 1:
			out[trimmed] = raw[0]
		default:
			for i, item := range raw {
				out[path.Join(trimmed, path.Index(i).String())] = item
			}
		}
	}
	return out
}
