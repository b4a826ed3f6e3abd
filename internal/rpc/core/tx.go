package core

import (
	"context"

	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"

	"github.com/K0LbAzzeR/dapi/internal/dispatch"
)

// GetTransaction fetches a raw transaction with its confirmation state.
// The height, confirmations, and instant lock keys are set only when the
// node reports them; a mempool transaction has none.
func (env *Environment) GetTransaction(ctx context.Context, params dispatch.Params) (interface{}, error) {
	tx, err := env.Core.GetTransaction(ctx, params.GetString("id"))
	if err != nil {
		return nil, err
	}

	out := doc{"transaction": tmbytes.HexBytes(tx.Raw)}
	if tx.Height != nil {
		out["height"] = *tx.Height
	}
	if tx.Confirmations != nil {
		out["confirmations"] = *tx.Confirmations
	}
	if tx.InstantLocked != nil {
		out["instant_locked"] = *tx.InstantLocked
	}
	return out, nil
}

// SendTransaction broadcasts a raw transaction and returns its id.
func (env *Environment) SendTransaction(ctx context.Context, params dispatch.Params) (interface{}, error) {
	txid, err := env.Core.SendRawTransaction(ctx,
		params.GetBytes("transaction"), params.GetBool("allow_high_fees"))
	if err != nil {
		return nil, err
	}
	return doc{"transaction_id": txid}, nil
}
