package core

import (
	"context"
	"encoding/hex"
	"fmt"

	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"

	"github.com/K0LbAzzeR/dapi/internal/dispatch"
	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	"github.com/K0LbAzzeR/dapi/internal/quorum"
)

// GetStatus reports the chain tip as seen by the core node. The quorum
// height is included only once the tracker has published a snapshot.
func (env *Environment) GetStatus(ctx context.Context, _ dispatch.Params) (interface{}, error) {
	status, err := env.Core.GetStatus(ctx)
	if err != nil {
		return nil, err
	}
	best, err := decodeHash("best block hash", status.BestBlockHash)
	if err != nil {
		return nil, err
	}

	out := doc{
		"chain":           status.Chain,
		"blocks":          status.Blocks,
		"best_block_hash": best,
		"difficulty":      status.Difficulty,
	}
	if env.Quorum != nil && env.Quorum.State() == quorum.Ready {
		if snap, err := env.Quorum.Snapshot(); err == nil {
			out["quorum_height"] = snap.Height
		}
	}
	return out, nil
}

func (env *Environment) GetBestBlockHash(ctx context.Context, _ dispatch.Params) (interface{}, error) {
	return env.Core.GetBestBlockHash(ctx)
}

func (env *Environment) GetBlockHash(ctx context.Context, params dispatch.Params) (interface{}, error) {
	return env.Core.GetBlockHash(ctx, params.GetInt("height"))
}

// GetBlock fetches a block by hash or by height. Exactly one selector must
// be given; height lookups resolve the hash first.
func (env *Environment) GetBlock(ctx context.Context, params dispatch.Params) (interface{}, error) {
	hash := params.GetString("hash")
	switch {
	case hash != "" && params.Has("height"):
		return nil, gatewayerr.NewValidationError("hash and height are mutually exclusive")
	case hash == "" && !params.Has("height"):
		return nil, gatewayerr.NewValidationError("hash or height is required")
	case hash == "":
		var err error
		if hash, err = env.Core.GetBlockHash(ctx, params.GetInt("height")); err != nil {
			return nil, err
		}
	}

	block, err := env.Core.GetBlock(ctx, hash)
	if err != nil {
		return nil, err
	}
	hashBytes, err := decodeHash("block hash", block.Hash)
	if err != nil {
		return nil, err
	}
	return doc{
		"block":         tmbytes.HexBytes(block.Raw),
		"height":        block.Height,
		"hash":          hashBytes,
		"confirmations": block.Confirmations,
	}, nil
}

// decodeHash converts a hex hash reported by the core node. A node that
// returns malformed hex is broken enough to surface as an internal error.
func decodeHash(what, s string) (tmbytes.HexBytes, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("core node returned malformed %s %q: %w", what, s, err)
	}
	return b, nil
}
