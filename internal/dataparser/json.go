package dataparser

import (
	"bytes"
	"encoding/json"

	"github.com/kon1790/cparser/internal/exprparser"
)

// MarshalJSON renders an Extent the way §3 documents array_size entries: a
// resolved integer, the literal string "dynamic", or the unresolved
// expression text.
func (e Extent) MarshalJSON() ([]byte, error) {
	switch {
	case e.Dynamic:
		return json.Marshal("dynamic")
	case e.Resolved:
		return json.Marshal(e.Value)
	default:
		return json.Marshal(e.Text)
	}
}

// resultJSON renders an ExpressionParser Result as the bare scalar it
// represents rather than its internal (Kind, Int, Float, Text) shape.
func resultJSON(r exprparser.Result) ([]byte, error) {
	switch r.Kind {
	case exprparser.KindNumber:
		if r.IsFloat {
			return json.Marshal(r.Float)
		}
		return json.Marshal(r.Int)
	default:
		return json.Marshal(r.Text)
	}
}

// MarshalJSON renders a ShapedValue as a bare scalar, a JSON array, or a
// JSON object keyed by field name in declaration order, matching how the
// original initializer is re-serialized (§3).
func (s *ShapedValue) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	switch s.Kind {
	case ShapedArray:
		return json.Marshal(s.List)
	case ShapedStruct:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, name := range s.FieldOrder {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			buf.Write(keyBytes)
			buf.WriteByte(':')
			valBytes, err := json.Marshal(s.Fields[name])
			if err != nil {
				return nil, err
			}
			buf.Write(valBytes)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return resultJSON(s.Scalar)
	}
}
