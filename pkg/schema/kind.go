package schema

import (
	"reflect"
	"regexp"
	"time"

	"github.com/goliatone/go-jsonform/pkg/document"
)

// Kind is the closed set of type tags the inference engine can assign to a
// value. Consumers switch over it exhaustively instead of sniffing values.
type Kind string

const (
	KindUndefined Kind = "undefined"
	KindNumber    Kind = "number"
	KindBoolean   Kind = "boolean"
	KindString    Kind = "string"
	KindFunction  Kind = "function"
	KindRegexp    Kind = "regexp"
	KindDate      Kind = "date"
	KindError     Kind = "error"
	KindArray     Kind = "array"
	KindObject    Kind = "object"
	KindNull      Kind = "null"
)

// Undefined is the sentinel value classified as KindUndefined. It stands in
// for "no value" where nil already means JSON null, e.g. the element schema of
// an empty array.
var Undefined = undefined{}

type undefined struct{}

// Elementary reports whether the kind is a leaf tag with no children.
func (k Kind) Elementary() bool {
	switch k {
	case KindNumber, KindBoolean, KindString, KindRegexp, KindDate:
		return true
	default:
		return false
	}
}

// Composite reports whether the kind carries a child schema.
func (k Kind) Composite() bool {
	return k == KindArray || k == KindObject
}

// KindOf classifies a runtime value into exactly one Kind. Ordered sequences
// map to KindArray regardless of element type, nil maps to KindNull, and any
// remaining keyed structure maps to KindObject.
func KindOf(v any) Kind {
	switch v.(type) {
	case undefined:
		return KindUndefined
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case *regexp.Regexp:
		return KindRegexp
	case time.Time, *time.Time:
		return KindDate
	case *document.Object:
		return KindObject
	case error:
		return KindError
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Func:
		return KindFunction
	case reflect.Map, reflect.Struct:
		return KindObject
	case reflect.Pointer:
		if rv.IsNil() {
			return KindNull
		}
		return KindOf(rv.Elem().Interface())
	default:
		return KindObject
	}
}

// DefaultValue returns the canonical zero value for a kind. Composite results
// are freshly allocated on every call so callers never share mutable state.
func DefaultValue(k Kind) any {
	switch k {
	case KindNumber:
		return float64(0)
	case KindBoolean:
		return false
	case KindString:
		return ""
	case KindRegexp:
		return regexp.MustCompile("")
	case KindDate:
		return time.Now()
	case KindArray:
		return []any{}
	case KindObject:
		return document.New()
	case KindNull:
		return nil
	default:
		return Undefined
	}
}
