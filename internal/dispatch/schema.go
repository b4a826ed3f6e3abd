package dispatch

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
)

// FieldType enumerates the primitive types a command parameter may declare.
type FieldType string

const (
	TString  FieldType = "string"
	TInteger FieldType = "integer"
	TBoolean FieldType = "boolean"
	TBytes   FieldType = "bytes"
	TArray   FieldType = "array"
	TObject  FieldType = "object"
)

// Field declares a single command parameter. The order of fields in a
// Schema doubles as the positional calling order.
type Field struct {
	Name     string
	Type     FieldType
	Required bool

	// Bounds for TInteger fields; nil means unbounded.
	Min *int64
	Max *int64

	// Element type for TArray fields.
	Elem FieldType

	// Minimum number of elements for TArray fields.
	MinItems int
}

// Schema declares the parameters of one command.
type Schema struct {
	Fields []Field
}

// IntBound is a convenience for declaring integer bounds inline.
func IntBound(v int64) *int64 { return &v }

// Params is the normalized, named form of request parameters shared by both
// protocol front-ends.
type Params map[string]interface{}

// Normalize converts rawParams (a positional JSON array, a named JSON
// object, raw JSON bytes of either, or nil) into the named form and
// validates it against the schema. The first violation aborts with a
// ValidationError; no backend call has been made at that point.
func (s Schema) Normalize(rawParams interface{}) (Params, error) {
	named, err := s.toNamed(rawParams)
	if err != nil {
		return nil, err
	}

	normalized := make(Params, len(named))
	for _, f := range s.Fields {
		raw, ok := named[f.Name]
		if !ok || raw == nil {
			if f.Required {
				return nil, gatewayerr.NewValidationError("%s is required", f.Name)
			}
			continue
		}
		v, err := coerce(f, raw)
		if err != nil {
			return nil, err
		}
		normalized[f.Name] = v
	}

	for name := range named {
		if !s.hasField(name) {
			return nil, gatewayerr.NewValidationError("unknown parameter %q", name)
		}
	}

	return normalized, nil
}

func (s Schema) hasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// toNamed maps positional arguments left-to-right onto the schema's
// declared parameter order, or passes named arguments through.
func (s Schema) toNamed(rawParams interface{}) (map[string]interface{}, error) {
	switch raw := rawParams.(type) {
	case nil:
		return map[string]interface{}{}, nil

	case json.RawMessage:
		return s.toNamedJSON(raw)

	case []byte:
		return s.toNamedJSON(raw)

	case []interface{}:
		if len(raw) > len(s.Fields) {
			return nil, gatewayerr.NewValidationError(
				"got %d positional parameters, want at most %d", len(raw), len(s.Fields))
		}
		named := make(map[string]interface{}, len(raw))
		for i, v := range raw {
			named[s.Fields[i].Name] = v
		}
		return named, nil

	case map[string]interface{}:
		return raw, nil

	case Params:
		return raw, nil

	default:
		return nil, gatewayerr.NewValidationError(
			"parameters must be an array or an object, got %T", rawParams)
	}
}

func (s Schema) toNamedJSON(data []byte) (map[string]interface{}, error) {
	if len(data) == 0 {
		return map[string]interface{}{}, nil
	}
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, gatewayerr.NewValidationError("decoding parameters: %v", err)
	}
	return s.toNamed(decoded)
}

// coerce validates raw against the declared field type and converts it into
// the canonical internal representation (int64 for integers, []byte for
// bytes fields).
func coerce(f Field, raw interface{}) (interface{}, error) {
	switch f.Type {
	case TString:
		v, ok := raw.(string)
		if !ok {
			return nil, gatewayerr.NewValidationError("%s must be a string", f.Name)
		}
		return v, nil

	case TInteger:
		i, err := toInt64(raw)
		if err != nil {
			return nil, gatewayerr.NewValidationError("%s must be an integer", f.Name)
		}
		if f.Min != nil && i < *f.Min {
			return nil, gatewayerr.NewValidationError("%s must be at least %d", f.Name, *f.Min)
		}
		if f.Max != nil && i > *f.Max {
			return nil, gatewayerr.NewValidationError("%s must be at most %d", f.Name, *f.Max)
		}
		return i, nil

	case TBoolean:
		v, ok := raw.(bool)
		if !ok {
			return nil, gatewayerr.NewValidationError("%s must be a boolean", f.Name)
		}
		return v, nil

	case TBytes:
		switch v := raw.(type) {
		case []byte:
			return v, nil
		case string:
			dec, err := hex.DecodeString(v)
			if err != nil {
				return nil, gatewayerr.NewValidationError("%s must be a hex-encoded string", f.Name)
			}
			return dec, nil
		default:
			return nil, gatewayerr.NewValidationError("%s must be a byte string", f.Name)
		}

	case TArray:
		items, ok := toSlice(raw)
		if !ok {
			return nil, gatewayerr.NewValidationError("%s must be an array", f.Name)
		}
		if len(items) < f.MinItems {
			return nil, gatewayerr.NewValidationError(
				"%s must contain at least %d items", f.Name, f.MinItems)
		}
		out := make([]interface{}, len(items))
		elem := Field{Name: f.Name + " item", Type: f.Elem}
		for i, item := range items {
			v, err := coerce(elem, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case TObject:
		v, ok := raw.(map[string]interface{})
		if !ok {
			return nil, gatewayerr.NewValidationError("%s must be an object", f.Name)
		}
		return v, nil
	}

	return nil, gatewayerr.NewValidationError("%s has unsupported schema type %q", f.Name, f.Type)
}

func toInt64(raw interface{}) (int64, error) {
	switch v := raw.(type) {
	case float64:
		// json.Unmarshal decodes all numbers as float64; only integral
		// values are acceptable here.
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not integral: %v", v)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("out of range: %d", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}

func toSlice(raw interface{}) ([]interface{}, bool) {
	switch v := raw.(type) {
	case []interface{}:
		return v, true
	case [][]byte:
		out := make([]interface{}, len(v))
		for i, b := range v {
			out[i] = b
		}
		return out, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// String accessor helpers used by handlers on normalized params.

// GetString returns the named string parameter, or "" when absent.
func (p Params) GetString(name string) string {
	v, _ := p[name].(string)
	return v
}

// GetInt returns the named integer parameter, or 0 when absent.
func (p Params) GetInt(name string) int64 {
	v, _ := p[name].(int64)
	return v
}

// GetBool returns the named boolean parameter, or false when absent.
func (p Params) GetBool(name string) bool {
	v, _ := p[name].(bool)
	return v
}

// GetBytes returns the named bytes parameter, or nil when absent.
func (p Params) GetBytes(name string) []byte {
	v, _ := p[name].([]byte)
	return v
}

// GetBytesArray returns the named array-of-bytes parameter.
func (p Params) GetBytesArray(name string) [][]byte {
	items, _ := p[name].([]interface{})
	if items == nil {
		return nil
	}
	out := make([][]byte, 0, len(items))
	for _, item := range items {
		if b, ok := item.([]byte); ok {
			out = append(out, b)
		}
	}
	return out
}

// Has reports whether the named parameter was supplied.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}
