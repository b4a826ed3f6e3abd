package coregrpc

import (
	"reflect"
	"strings"

	proto "github.com/gogo/protobuf/proto"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
)

// Doc is the internal JSON-like representation shared by all command
// handlers: plain structured data, keyed by the wire field names. A key
// absent from a Doc means the field was unset on the wire, never a zero
// value that could be confused with a real zero or false.
type Doc = map[string]interface{}

// FromWire converts a wire message into the internal representation. Every
// set wire field maps to exactly one key; unset optional fields (nil
// pointers, nil or empty repeated fields) are omitted.
func FromWire(msg proto.Message) (Doc, error) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, &gatewayerr.MalformedMessageError{Reason: "nil wire message"}
	}
	return structToDoc(v.Elem())
}

// ToWire fills a wire message from the internal representation. Keys absent
// from the doc leave their wire fields unset, preserving the
// optional/present distinction through a round trip. Doc keys with no
// corresponding wire field are ignored; they may carry protocol-specific
// extras for the JSON front-end.
func ToWire(doc Doc, msg proto.Message) error {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return &gatewayerr.MalformedMessageError{Reason: "nil wire message"}
	}
	return docToStruct(doc, v.Elem())
}

func structToDoc(v reflect.Value) (Doc, error) {
	doc := make(Doc)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := wireFieldName(t.Field(i))
		if !ok {
			continue
		}
		val, present, err := fieldToValue(v.Field(i))
		if err != nil {
			return nil, err
		}
		if present {
			doc[name] = val
		}
	}
	return doc, nil
}

func fieldToValue(f reflect.Value) (interface{}, bool, error) {
	switch f.Kind() {
	case reflect.Ptr:
		if f.IsNil() {
			return nil, false, nil
		}
		if f.Elem().Kind() == reflect.Struct {
			nested, err := structToDoc(f.Elem())
			return nested, err == nil, err
		}
		return scalarValue(f.Elem()), true, nil

	case reflect.Slice:
		if f.IsNil() || f.Len() == 0 {
			return nil, false, nil
		}
		if f.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, f.Len())
			reflect.Copy(reflect.ValueOf(b), f)
			return b, true, nil
		}
		items := make([]interface{}, f.Len())
		for i := 0; i < f.Len(); i++ {
			elem := f.Index(i)
			// The absence marker applies to the field, not its elements:
			// an empty byte string inside a repeated field stays an empty
			// byte string through the round trip.
			if elem.Kind() == reflect.Slice && elem.Type().Elem().Kind() == reflect.Uint8 {
				b := make([]byte, elem.Len())
				reflect.Copy(reflect.ValueOf(b), elem)
				items[i] = b
				continue
			}
			val, _, err := fieldToValue(elem)
			if err != nil {
				return nil, false, err
			}
			items[i] = val
		}
		return items, true, nil

	case reflect.Struct:
		nested, err := structToDoc(f)
		return nested, err == nil, err

	default:
		return scalarValue(f), true, nil
	}
}

func scalarValue(v reflect.Value) interface{} {
	switch v.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return v.Interface()
	}
}

func docToStruct(doc Doc, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, ok := wireFieldName(t.Field(i))
		if !ok {
			continue
		}
		raw, present := doc[name]
		if !present || raw == nil {
			continue
		}
		if err := valueToField(name, raw, v.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func valueToField(name string, raw interface{}, f reflect.Value) error {
	switch f.Kind() {
	case reflect.Ptr:
		p := reflect.New(f.Type().Elem())
		if p.Elem().Kind() == reflect.Struct {
			nested, ok := toDoc(raw)
			if !ok {
				return convErr(name, "object", raw)
			}
			if err := docToStruct(nested, p.Elem()); err != nil {
				return err
			}
		} else if err := setScalar(name, raw, p.Elem()); err != nil {
			return err
		}
		f.Set(p)
		return nil

	case reflect.Slice:
		if f.Type().Elem().Kind() == reflect.Uint8 {
			b, ok := toBytes(raw)
			if !ok {
				return convErr(name, "bytes", raw)
			}
			f.SetBytes(b)
			return nil
		}
		items, ok := toSlice(raw)
		if !ok {
			return convErr(name, "array", raw)
		}
		out := reflect.MakeSlice(f.Type(), len(items), len(items))
		for i, item := range items {
			if err := valueToField(name, item, out.Index(i)); err != nil {
				return err
			}
		}
		f.Set(out)
		return nil

	case reflect.Struct:
		nested, ok := toDoc(raw)
		if !ok {
			return convErr(name, "object", raw)
		}
		return docToStruct(nested, f)

	default:
		return setScalar(name, raw, f)
	}
}

func setScalar(name string, raw interface{}, f reflect.Value) error {
	rv := reflect.ValueOf(raw)
	switch f.Kind() {
	case reflect.String:
		if rv.Kind() != reflect.String {
			return convErr(name, "string", raw)
		}
		f.SetString(rv.String())

	case reflect.Bool:
		if rv.Kind() != reflect.Bool {
			return convErr(name, "boolean", raw)
		}
		f.SetBool(rv.Bool())

	case reflect.Int, reflect.Int32, reflect.Int64:
		switch rv.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			f.SetInt(rv.Int())
		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			f.SetInt(int64(rv.Uint()))
		case reflect.Float64:
			f.SetInt(int64(rv.Float()))
		default:
			return convErr(name, "integer", raw)
		}

	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		switch rv.Kind() {
		case reflect.Int, reflect.Int32, reflect.Int64:
			f.SetUint(uint64(rv.Int()))
		case reflect.Uint, reflect.Uint32, reflect.Uint64:
			f.SetUint(rv.Uint())
		case reflect.Float64:
			f.SetUint(uint64(rv.Float()))
		default:
			return convErr(name, "integer", raw)
		}

	case reflect.Float32, reflect.Float64:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f.SetFloat(rv.Float())
		case reflect.Int, reflect.Int32, reflect.Int64:
			f.SetFloat(float64(rv.Int()))
		default:
			return convErr(name, "number", raw)
		}

	default:
		return convErr(name, f.Kind().String(), raw)
	}
	return nil
}

func toDoc(raw interface{}) (Doc, bool) {
	switch v := raw.(type) {
	case Doc:
		return v, true
	default:
		return nil, false
	}
}

// toBytes accepts []byte and named byte-slice types such as
// bytes.HexBytes, copying the contents.
func toBytes(raw interface{}) ([]byte, bool) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	b := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(b), rv)
	return b, true
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
	default:
		return nil, false
	}
}

func convErr(field, want string, raw interface{}) error {
	got := "nil"
	if raw != nil {
		got = reflect.TypeOf(raw).String()
	}
	return &gatewayerr.MalformedMessageError{
		Reason: field + " must be a " + want + ", got " + got,
	}
}

// wireFieldName extracts the proto field name from a generated struct
// field's protobuf tag. Fields without a tag (XXX_ internals) are skipped.
func wireFieldName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("protobuf")
	if tag == "" || strings.HasPrefix(sf.Name, "XXX_") {
		return "", false
	}
	for _, part := range strings.Split(tag, ",") {
		if strings.HasPrefix(part, "name=") {
			return strings.TrimPrefix(part, "name="), true
		}
	}
	return "", false
}
