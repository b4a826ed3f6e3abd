package core

import (
	"context"

	"github.com/K0LbAzzeR/dapi/internal/dispatch"
	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
)

// GetBalance returns the confirmed balance of one address, in duffs.
func (env *Environment) GetBalance(ctx context.Context, params dispatch.Params) (interface{}, error) {
	address := params.GetString("address")
	if err := env.validateAddress(address); err != nil {
		return nil, err
	}
	balance, err := env.Core.GetAddressBalance(ctx, []string{address})
	if err != nil {
		return nil, err
	}
	return balance.Balance, nil
}

// GetAddressSummary passes the index's per-address summary through
// unchanged; its shape is owned by the core node.
func (env *Environment) GetAddressSummary(ctx context.Context, params dispatch.Params) (interface{}, error) {
	address := params.GetString("address")
	if err := env.validateAddress(address); err != nil {
		return nil, err
	}
	return env.Core.GetAddressSummary(ctx, []string{address})
}

// GetUTXO returns a page of the address's unspent outputs. The from/to
// bounds are item offsets into the node-ordered UTXO list.
func (env *Environment) GetUTXO(ctx context.Context, params dispatch.Params) (interface{}, error) {
	address := params.GetString("address")
	if err := env.validateAddress(address); err != nil {
		return nil, err
	}

	utxos, err := env.Core.GetAddressUTXOs(ctx, []string{address})
	if err != nil {
		return nil, err
	}

	total := int64(len(utxos))
	from, to := params.GetInt("from"), total
	if params.Has("to") {
		to = params.GetInt("to")
	}
	if from > to {
		return nil, gatewayerr.NewValidationError("from must not exceed to")
	}
	if from > total {
		from = total
	}
	if to > total {
		to = total
	}

	return doc{
		"items":       utxos[from:to],
		"total_items": total,
		"from":        from,
		"to":          to,
	}, nil
}
