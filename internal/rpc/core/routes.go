package core

import (
	"github.com/K0LbAzzeR/dapi/internal/dispatch"
)

// Route is one command declaration: its public name, parameter schema,
// and handler factory.
type Route struct {
	Name    string
	Schema  dispatch.Schema
	Factory dispatch.HandlerFactory
}

// Routes declares every command the gateway serves. Schema field order
// doubles as the positional calling order. Parameter names follow the wire
// field names of the binary protocol where a wire message exists, so both
// front-ends normalize to the same named form.
func Routes() []Route {
	return []Route{
		{"getStatus", dispatch.Schema{}, handler((*Environment).GetStatus)},
		{"getBestBlockHash", dispatch.Schema{}, handler((*Environment).GetBestBlockHash)},
		{"getBlockHash", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "height", Type: dispatch.TInteger, Required: true, Min: dispatch.IntBound(0)},
		}}, handler((*Environment).GetBlockHash)},
		{"getBlock", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "hash", Type: dispatch.TString},
			{Name: "height", Type: dispatch.TInteger, Min: dispatch.IntBound(0)},
		}}, handler((*Environment).GetBlock)},
		{"getBalance", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "address", Type: dispatch.TString, Required: true},
		}}, handler((*Environment).GetBalance)},
		{"getAddressSummary", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "address", Type: dispatch.TString, Required: true},
		}}, handler((*Environment).GetAddressSummary)},
		{"getUTXO", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "address", Type: dispatch.TString, Required: true},
			{Name: "from", Type: dispatch.TInteger, Min: dispatch.IntBound(0)},
			{Name: "to", Type: dispatch.TInteger, Min: dispatch.IntBound(0)},
		}}, handler((*Environment).GetUTXO)},
		{"getTransaction", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "id", Type: dispatch.TString, Required: true},
		}}, handler((*Environment).GetTransaction)},
		{"sendTransaction", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "transaction", Type: dispatch.TBytes, Required: true},
			{Name: "allow_high_fees", Type: dispatch.TBoolean},
		}}, handler((*Environment).SendTransaction)},
		{"getMnListDiff", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "baseBlockHash", Type: dispatch.TString, Required: true},
			{Name: "blockHash", Type: dispatch.TString, Required: true},
		}}, handler((*Environment).GetMnListDiff)},
		{"getQuorum", dispatch.Schema{}, handler((*Environment).GetQuorum)},
		{"getIdentity", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "id", Type: dispatch.TBytes, Required: true},
			{Name: "prove", Type: dispatch.TBoolean},
		}}, handler((*Environment).GetIdentity)},
		{"getIdentitiesByPublicKeyHashes", dispatch.Schema{Fields: []dispatch.Field{
			{Name: "public_key_hashes", Type: dispatch.TArray, Required: true,
				Elem: dispatch.TBytes, MinItems: 1},
			{Name: "prove", Type: dispatch.TBoolean},
		}}, handler((*Environment).GetIdentitiesByPublicKeyHashes)},
	}
}

// RegisterRoutes adds every command to the registry. A duplicate name is a
// programming error; the bootstrap treats it as fatal.
func (env *Environment) RegisterRoutes(registry *dispatch.Registry) error {
	for _, r := range Routes() {
		if err := registry.Register(r.Name, r.Schema, r.Factory); err != nil {
			return err
		}
	}
	return nil
}
