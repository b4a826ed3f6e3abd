// Package coregrpc is the binary-protocol front-end. It converts each wire
// request into the internal representation, dispatches it through the same
// command registry the JSON-RPC front-end uses, and converts the handler's
// result back into the typed wire response.
package coregrpc

import (
	"context"
	"fmt"

	proto "github.com/gogo/protobuf/proto"

	"github.com/K0LbAzzeR/dapi/internal/dispatch"
	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
)

// API implements the Core and Platform gRPC services over the command
// registry.
type API struct {
	registry   *dispatch.Registry
	translator *gatewayerr.Translator
}

// NewAPI creates the binary front-end over a populated registry.
func NewAPI(registry *dispatch.Registry, translator *gatewayerr.Translator) *API {
	return &API{registry: registry, translator: translator}
}

// call runs one command through the converter and registry, filling resp on
// success. Any error is rendered as a gRPC status by the translator.
func (api *API) call(ctx context.Context, command string, req, resp proto.Message) error {
	params, err := FromWire(req)
	if err != nil {
		return api.translator.GRPCStatusError(err)
	}

	result, err := api.registry.Dispatch(ctx, command, params)
	if err != nil {
		return api.translator.GRPCStatusError(err)
	}

	doc, ok := result.(Doc)
	if !ok {
		return api.translator.GRPCStatusError(
			fmt.Errorf("command %s returned %T, not a document", command, result))
	}
	if err := ToWire(doc, resp); err != nil {
		return api.translator.GRPCStatusError(err)
	}
	return nil
}

func (api *API) GetStatus(ctx context.Context, req *GetStatusRequest) (*GetStatusResponse, error) {
	resp := new(GetStatusResponse)
	if err := api.call(ctx, "getStatus", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (api *API) GetBlock(ctx context.Context, req *GetBlockRequest) (*GetBlockResponse, error) {
	resp := new(GetBlockResponse)
	if err := api.call(ctx, "getBlock", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (api *API) GetTransaction(ctx context.Context, req *GetTransactionRequest) (*GetTransactionResponse, error) {
	resp := new(GetTransactionResponse)
	if err := api.call(ctx, "getTransaction", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (api *API) SendTransaction(ctx context.Context, req *SendTransactionRequest) (*SendTransactionResponse, error) {
	resp := new(SendTransactionResponse)
	if err := api.call(ctx, "sendTransaction", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (api *API) GetIdentity(ctx context.Context, req *GetIdentityRequest) (*GetIdentityResponse, error) {
	resp := new(GetIdentityResponse)
	if err := api.call(ctx, "getIdentity", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (api *API) GetIdentitiesByPublicKeyHashes(ctx context.Context, req *GetIdentitiesByPublicKeyHashesRequest) (*GetIdentitiesByPublicKeyHashesResponse, error) {
	resp := new(GetIdentitiesByPublicKeyHashesResponse)
	if err := api.call(ctx, "getIdentitiesByPublicKeyHashes", req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
