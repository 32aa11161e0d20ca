// Package convert coerces raw control values into typed JSON values and back.
// Renderers hand the core whatever their controls produce (strings, mostly);
// the registry turns those into values matching the field's schema kind, and
// Display renders typed values back into editable text.
package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-jsonform/pkg/schema"
)

// Converter coerces one raw control value into a typed value.
type Converter func(raw any) (any, error)

// Registry maps schema kinds to converters. The zero registry is not usable;
// construct with NewRegistry, which seeds the default coercions, then override
// per kind as needed.
type Registry struct {
	converters map[schema.Kind]Converter
}

// NewRegistry returns a registry seeded with the default coercions for every
// elementary kind.
func NewRegistry() *Registry {
	r := &Registry{converters: make(map[schema.Kind]Converter)}
	r.Register(schema.KindString, toString)
	r.Register(schema.KindNumber, toNumber)
	r.Register(schema.KindBoolean, toBoolean)
	r.Register(schema.KindDate, toDate)
	r.Register(schema.KindRegexp, toRegexp)
	return r
}

// Register installs or replaces the converter for a kind.
func (r *Registry) Register(kind schema.Kind, fn Converter) {
	if fn == nil {
		return
	}
	r.converters[kind] = fn
}

// Convert coerces raw according to the converter registered for kind. Kinds
// without a registered converter pass the raw value through unchanged.
func (r *Registry) Convert(kind schema.Kind, raw any) (any, error) {
	if r == nil || r.converters == nil {
		return raw, nil
	}
	fn, ok := r.converters[kind]
	if !ok {
		return raw, nil
	}
	return fn(raw)
}

func toString(raw any) (any, error) {
	return Display(raw), nil
}

func toNumber(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return float64(0), fmt.Errorf("convert: %q is not a number", v)
		}
		return f, nil
	default:
		return float64(0), fmt.Errorf("convert: cannot read number from %T", raw)
	}
}

func toBoolean(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true, nil
		default:
			return false, nil
		}
	case float64:
		return v != 0, nil
	case int:
		return v != 0, nil
	default:
		return false, nil
	}
}

// dateLayouts are tried in order against the raw string with the UTC zone
// marker appended, mirroring how browser date controls hand back zone-less
// local strings.
var dateLayouts = []string{
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04 MST",
	"2006-01-02T15:04:05 MST",
	"2006-01-02T15:04 MST",
	"2006-01-02 MST",
}

func toDate(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("convert: nil time")
		}
		return *v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if t, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return t, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, trimmed+" UTC"); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("convert: %q is not a recognized date", v)
	default:
		return time.Time{}, fmt.Errorf("convert: cannot read date from %T", raw)
	}
}

func toRegexp(raw any) (any, error) {
	switch v := raw.(type) {
	case *regexp.Regexp:
		return v, nil
	case string:
		re, err := regexp.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("convert: compile pattern: %w", err)
		}
		return re, nil
	default:
		return nil, fmt.Errorf("convert: cannot read pattern from %T", raw)
	}
}

// Display renders a typed value as the string a text control should show.
func Display(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.UTC().Format("2006-01-02 15:04:05")
	case *regexp.Regexp:
		if val == nil {
			return ""
		}
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
