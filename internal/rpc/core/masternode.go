package core

import (
	"context"

	"github.com/K0LbAzzeR/dapi/internal/dispatch"
)

// GetMnListDiff passes the node's masternode list diff through unchanged;
// its shape is owned by the core node.
func (env *Environment) GetMnListDiff(ctx context.Context, params dispatch.Params) (interface{}, error) {
	return env.Core.MasternodeListDiff(ctx,
		params.GetString("baseBlockHash"), params.GetString("blockHash"))
}

// GetQuorum returns the tracker's last published quorum snapshot. Before
// the first block event has been processed this fails with
// QuorumNotReadyError, which the front-ends render as a retryable failure.
func (env *Environment) GetQuorum(ctx context.Context, _ dispatch.Params) (interface{}, error) {
	return env.Quorum.Snapshot()
}
