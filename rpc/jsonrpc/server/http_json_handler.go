package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/K0LbAzzeR/dapi/internal/dispatch"
	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	"github.com/K0LbAzzeR/dapi/libs/log"
	rpctypes "github.com/K0LbAzzeR/dapi/rpc/jsonrpc/types"
)

// MakeJSONRPCHandler dispatches JSON-RPC requests (single or batch) through
// the command registry, rendering failures through the error translator.
func MakeJSONRPCHandler(registry *dispatch.Registry, translator *gatewayerr.Translator, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, hreq *http.Request) {
		if hreq.URL.Path != "/" {
			http.NotFound(w, hreq)
			return
		}

		b, err := io.ReadAll(hreq.Body)
		if err != nil {
			writeRPCResponse(w, logger, rpctypes.RPCRequest{}.MakeError(
				rpctypes.CodeInvalidRequest, "Invalid Request", "reading request body: "+err.Error()))
			return
		}

		requests, err := parseRequests(b)
		if err != nil {
			writeRPCResponse(w, logger, rpctypes.RPCRequest{}.MakeError(
				rpctypes.CodeParseError, "Parse error", err.Error()))
			return
		}

		var responses []rpctypes.RPCResponse
		for _, req := range requests {
			// Notifications produce no response entry.
			if req.IsNotification() {
				logger.Debug("ignoring notification", "req", req)
				continue
			}

			result, err := registry.Dispatch(hreq.Context(), req.Method, json.RawMessage(req.Params))
			if err != nil {
				tr := translator.Translate(err)
				responses = append(responses, req.MakeError(tr.JSONRPCCode, tr.Message, tr.Data))
				continue
			}
			responses = append(responses, req.MakeResponse(result))
		}

		if len(responses) == 0 {
			return
		}
		writeRPCResponse(w, logger, responses...)
	}
}

// parseRequests parses a JSON-RPC request or request batch from data.
func parseRequests(data []byte) ([]rpctypes.RPCRequest, error) {
	var reqs []rpctypes.RPCRequest
	var err error

	isArray := bytes.HasPrefix(bytes.TrimSpace(data), []byte("["))
	if isArray {
		err = json.Unmarshal(data, &reqs)
	} else {
		reqs = append(reqs, rpctypes.RPCRequest{})
		err = json.Unmarshal(data, &reqs[0])
	}
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// writeRPCResponse writes one or more responses; a single response is
// unwrapped from its batch array.
func writeRPCResponse(w http.ResponseWriter, logger log.Logger, resps ...rpctypes.RPCResponse) {
	var body interface{} = resps
	if len(resps) == 1 {
		body = resps[0]
	}
	payload, err := json.Marshal(body)
	if err != nil {
		logger.Error("failed to marshal RPC response", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		logger.Error("failed to write RPC response", "err", err)
	}
}
