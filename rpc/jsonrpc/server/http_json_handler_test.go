package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0LbAzzeR/dapi/internal/backend"
	"github.com/K0LbAzzeR/dapi/internal/backend/mocks"
	"github.com/K0LbAzzeR/dapi/internal/dispatch"
	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	"github.com/K0LbAzzeR/dapi/internal/rpc/core"
	"github.com/K0LbAzzeR/dapi/libs/log"
	rpctypes "github.com/K0LbAzzeR/dapi/rpc/jsonrpc/types"
)

const testAddress = "XsLdVrfJpzt6Fc8RSUFkqYqtxkLjEv484w"

func newTestHandler(t *testing.T, coreMock *mocks.CoreClient) http.HandlerFunc {
	t.Helper()
	logger := log.NewTestingLogger(t)

	env := &core.Environment{
		Logger:      logger,
		Core:        coreMock,
		Drive:       &mocks.DriveClient{},
		ChainParams: backend.ChainParams("mainnet"),
	}
	registry := dispatch.NewRegistry(logger, env, nil)
	require.NoError(t, env.RegisterRoutes(registry))

	return MakeJSONRPCHandler(registry, gatewayerr.NewTranslator(logger, nil), logger)
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	res, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, raw
}

func TestHandlerGetBalance(t *testing.T) {
	coreMock := &mocks.CoreClient{
		GetAddressBalanceFn: func(ctx context.Context, addresses []string) (*backend.AddressBalance, error) {
			require.Equal(t, []string{testAddress}, addresses)
			return &backend.AddressBalance{Balance: 1000, Received: 5000}, nil
		},
	}
	srv := httptest.NewServer(newTestHandler(t, coreMock))
	defer srv.Close()

	res, body := post(t, srv, "/",
		`{"jsonrpc":"2.0","id":1,"method":"getBalance","params":["`+testAddress+`"]}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var resp rpctypes.RPCResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Nil(t, resp.Error)
	assert.Equal(t, "1000", string(resp.Result))
	assert.EqualValues(t, 1, coreMock.Calls())
}

func TestHandlerMethodNotFound(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, &mocks.CoreClient{}))
	defer srv.Close()

	_, body := post(t, srv, "/",
		`{"jsonrpc":"2.0","id":1,"method":"getFortune","params":[]}`)

	var resp rpctypes.RPCResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32601, resp.Error.Code)
	assert.Equal(t, "Method not found", resp.Error.Message)
}

func TestHandlerInvalidParams(t *testing.T) {
	coreMock := &mocks.CoreClient{}
	srv := httptest.NewServer(newTestHandler(t, coreMock))
	defer srv.Close()

	_, body := post(t, srv, "/",
		`{"jsonrpc":"2.0","id":1,"method":"getBalance","params":{"address":1}}`)

	var resp rpctypes.RPCResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32602, resp.Error.Code)
	assert.Equal(t, "Invalid params", resp.Error.Message)
	assert.Contains(t, resp.Error.Data, "address must be a string")
	assert.EqualValues(t, 0, coreMock.Calls(), "rejected request must not reach the backend")
}

func TestHandlerParseError(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, &mocks.CoreClient{}))
	defer srv.Close()

	_, body := post(t, srv, "/", `{"jsonrpc":`)

	var resp rpctypes.RPCResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, -32700, resp.Error.Code)
}

func TestHandlerBatch(t *testing.T) {
	coreMock := &mocks.CoreClient{
		GetBestBlockHashFn: func(ctx context.Context) (string, error) {
			return "00ff", nil
		},
	}
	srv := httptest.NewServer(newTestHandler(t, coreMock))
	defer srv.Close()

	_, body := post(t, srv, "/", `[
		{"jsonrpc":"2.0","id":1,"method":"getBestBlockHash","params":[]},
		{"jsonrpc":"2.0","id":2,"method":"getFortune","params":[]}
	]`)

	var resps []rpctypes.RPCResponse
	require.NoError(t, json.Unmarshal(body, &resps))
	require.Len(t, resps, 2)
	require.Nil(t, resps[0].Error)
	assert.Equal(t, `"00ff"`, string(resps[0].Result))
	require.NotNil(t, resps[1].Error)
	assert.Equal(t, -32601, resps[1].Error.Code)
}

func TestHandlerBatchSingleResponseUnwrapped(t *testing.T) {
	coreMock := &mocks.CoreClient{
		GetBestBlockHashFn: func(ctx context.Context) (string, error) {
			return "00ff", nil
		},
	}
	srv := httptest.NewServer(newTestHandler(t, coreMock))
	defer srv.Close()

	// One notification plus one request leaves a single response, which is
	// written as a bare object rather than a one-element array.
	_, body := post(t, srv, "/", `[
		{"jsonrpc":"2.0","method":"getBestBlockHash","params":[]},
		{"jsonrpc":"2.0","id":2,"method":"getBestBlockHash","params":[]}
	]`)

	var resp rpctypes.RPCResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Nil(t, resp.Error)
	assert.Equal(t, `"00ff"`, string(resp.Result))
}

func TestHandlerNotificationNoBody(t *testing.T) {
	coreMock := &mocks.CoreClient{}
	srv := httptest.NewServer(newTestHandler(t, coreMock))
	defer srv.Close()

	res, body := post(t, srv, "/",
		`{"jsonrpc":"2.0","method":"getBestBlockHash","params":[]}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, body)
	assert.EqualValues(t, 0, coreMock.Calls())
}

func TestHandlerUnknownPath(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(t, &mocks.CoreClient{}))
	defer srv.Close()

	res, _ := post(t, srv, "/websocket", `{}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
