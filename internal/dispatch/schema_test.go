package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
)

func TestSchemaNormalize(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "id", Type: TString, Required: true},
		{Name: "height", Type: TInteger, Min: IntBound(0), Max: IntBound(100)},
		{Name: "prove", Type: TBoolean},
	}}

	testCases := []struct {
		name    string
		raw     interface{}
		wantErr string
	}{
		{"positional ok", []interface{}{"abc", float64(7), true}, ""},
		{"named ok", map[string]interface{}{"id": "abc", "height": float64(7)}, ""},
		{"nil params", nil, "id is required"},
		{"missing required", map[string]interface{}{"height": float64(7)}, "id is required"},
		{"wrong type", map[string]interface{}{"id": 1}, "id must be a string"},
		{"fractional integer", map[string]interface{}{"id": "abc", "height": 1.5}, "height must be an integer"},
		{"below min", map[string]interface{}{"id": "abc", "height": float64(-1)}, "height must be at least 0"},
		{"above max", map[string]interface{}{"id": "abc", "height": float64(101)}, "height must be at most 100"},
		{"bad boolean", map[string]interface{}{"id": "abc", "prove": "yes"}, "prove must be a boolean"},
		{"too many positional", []interface{}{"abc", float64(7), true, "extra"}, "got 4 positional parameters, want at most 3"},
		{"unknown parameter", map[string]interface{}{"id": "abc", "nope": 1}, `unknown parameter "nope"`},
		{"scalar params", "abc", "parameters must be an array or an object"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := schema.Normalize(tc.raw)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "abc", params.GetString("id"))
				return
			}
			var valErr *gatewayerr.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, valErr.Reason, tc.wantErr)
		})
	}
}

func TestSchemaPositionalOrder(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "baseBlockHash", Type: TString, Required: true},
		{Name: "blockHash", Type: TString, Required: true},
	}}

	params, err := schema.Normalize([]interface{}{"aaaa", "bbbb"})
	require.NoError(t, err)
	assert.Equal(t, "aaaa", params.GetString("baseBlockHash"))
	assert.Equal(t, "bbbb", params.GetString("blockHash"))
}

func TestSchemaBytesField(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "transaction", Type: TBytes, Required: true},
	}}

	// JSON clients send hex; the binary front-end passes raw bytes.
	params, err := schema.Normalize(map[string]interface{}{"transaction": "deadbeef"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, params.GetBytes("transaction"))

	params, err = schema.Normalize(map[string]interface{}{"transaction": []byte{0x01, 0x02}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, params.GetBytes("transaction"))

	_, err = schema.Normalize(map[string]interface{}{"transaction": "not hex"})
	var valErr *gatewayerr.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Reason, "transaction must be a hex-encoded string")
}

func TestSchemaArrayField(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "public_key_hashes", Type: TArray, Required: true, Elem: TBytes, MinItems: 1},
	}}

	params, err := schema.Normalize(map[string]interface{}{
		"public_key_hashes": []interface{}{"0a0b", "0c0d"},
	})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0x0a, 0x0b}, {0x0c, 0x0d}}, params.GetBytesArray("public_key_hashes"))

	_, err = schema.Normalize(map[string]interface{}{
		"public_key_hashes": []interface{}{},
	})
	var valErr *gatewayerr.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Reason, "public_key_hashes must contain at least 1 items")
}

func TestParamsAccessors(t *testing.T) {
	p := Params{"s": "x", "i": int64(3), "b": true}

	assert.Equal(t, "x", p.GetString("s"))
	assert.Equal(t, int64(3), p.GetInt("i"))
	assert.True(t, p.GetBool("b"))
	assert.True(t, p.Has("s"))
	assert.False(t, p.Has("missing"))
	assert.Equal(t, "", p.GetString("missing"))
}
