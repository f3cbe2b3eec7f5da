package frame

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// VALUE
// Tagged variant for loosely-typed JSON cells. Source records arrive as
// arbitrary nested JSON; every cell is exactly one of Null, Scalar, Object,
// or Array and consumers switch on Kind instead of probing types.
// =============================================================================

// Kind discriminates the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindScalar
	KindObject
	KindArray
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a single cell in a Frame.
type Value struct {
	Kind   Kind
	Scalar any            // string, float64, or bool; valid when Kind == KindScalar
	Object map[string]any // valid when Kind == KindObject
	Array  []any          // valid when Kind == KindArray
}

// Null is the absent/missing cell.
func Null() Value {
	return Value{Kind: KindNull}
}

// NewScalar wraps a scalar cell.
func NewScalar(v any) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// FromJSON classifies a decoded JSON value (as produced by encoding/json
// into any) as a Value.
func FromJSON(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case map[string]any:
		return Value{Kind: KindObject, Object: t}
	case []any:
		return Value{Kind: KindArray, Array: t}
	default:
		// string, float64, bool, json.Number
		return Value{Kind: KindScalar, Scalar: v}
	}
}

// IsNull reports whether the cell is absent.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Interface returns the cell as a driver-friendly value: nil for Null, the
// raw scalar for Scalar, and a JSON string for Object/Array cells that were
// never expanded into scalar columns.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindScalar:
		return v.Scalar
	case KindObject:
		b, err := json.Marshal(v.Object)
		if err != nil {
			return fmt.Sprintf("%v", v.Object)
		}
		return string(b)
	case KindArray:
		b, err := json.Marshal(v.Array)
		if err != nil {
			return fmt.Sprintf("%v", v.Array)
		}
		return string(b)
	default:
		return nil
	}
}

// GoString renders the cell for test failure messages.
func (v Value) GoString() string {
	switch v.Kind {
	case KindNull:
		return "<null>"
	case KindScalar:
		switch s := v.Scalar.(type) {
		case string:
			return strconv.Quote(s)
		default:
			return fmt.Sprintf("%v", s)
		}
	default:
		return fmt.Sprintf("<%s>%v", v.Kind, v.Interface())
	}
}
