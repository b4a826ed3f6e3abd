// Package core implements the command handlers shared by the JSON-RPC and
// binary front-ends. Handlers return plain structured documents keyed by
// wire field names, so one handler serves both protocols; the binary
// front-end converts the document into its typed response message.
package core

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/K0LbAzzeR/dapi/internal/backend"
	"github.com/K0LbAzzeR/dapi/internal/dispatch"
	"github.com/K0LbAzzeR/dapi/internal/quorum"
	"github.com/K0LbAzzeR/dapi/libs/log"
)

// doc is the handlers' result form, keyed by wire field names. An absent
// key means the field is unset on the wire.
type doc = map[string]interface{}

// QuorumReader is the slice of the quorum tracker the handlers consume.
type QuorumReader interface {
	State() quorum.State
	Snapshot() (*quorum.Snapshot, error)
}

// Environment holds the backend collaborators the command handlers run
// against. It is assembled once at startup and treated as read-only
// afterwards.
type Environment struct {
	Logger log.Logger

	Core        backend.CoreClient
	Drive       backend.DriveClient
	Quorum      QuorumReader
	ChainParams *chaincfg.Params
}

// validateAddress rejects addresses that do not parse for the configured
// network before any backend call is made.
func (env *Environment) validateAddress(addr string) error {
	_, err := backend.ParseAddress(addr, env.ChainParams)
	return err
}

// handler adapts an Environment method expression to the registry's
// factory form. The method is bound once, at registration time.
func handler(m func(*Environment, context.Context, dispatch.Params) (interface{}, error)) dispatch.HandlerFactory {
	return func(deps dispatch.Deps) dispatch.Handler {
		env := deps.(*Environment)
		return func(ctx context.Context, params dispatch.Params) (interface{}, error) {
			return m(env, ctx, params)
		}
	}
}
