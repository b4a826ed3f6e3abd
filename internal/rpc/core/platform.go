package core

import (
	"context"

	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"

	"github.com/K0LbAzzeR/dapi/internal/backend"
	"github.com/K0LbAzzeR/dapi/internal/dispatch"
)

// GetIdentity fetches one application-state identity record, with a
// cryptographic proof iff one was requested.
func (env *Environment) GetIdentity(ctx context.Context, params dispatch.Params) (interface{}, error) {
	res, err := env.Drive.GetIdentity(ctx, params.GetBytes("id"), params.GetBool("prove"))
	if err != nil {
		return nil, err
	}

	out := doc{"identity": tmbytes.HexBytes(res.Identity)}
	if p := proofDoc(res.Proof); p != nil {
		out["proof"] = p
	}
	return out, nil
}

// GetIdentitiesByPublicKeyHashes fetches the identities bound to a batch
// of public key hashes, with a single proof covering the batch iff one was
// requested.
func (env *Environment) GetIdentitiesByPublicKeyHashes(ctx context.Context, params dispatch.Params) (interface{}, error) {
	res, err := env.Drive.GetIdentitiesByPublicKeyHashes(ctx,
		params.GetBytesArray("public_key_hashes"), params.GetBool("prove"))
	if err != nil {
		return nil, err
	}

	identities := make([]interface{}, len(res.Identities))
	for i, id := range res.Identities {
		identities[i] = tmbytes.HexBytes(id)
	}
	out := doc{"identities": identities}
	if p := proofDoc(res.Proof); p != nil {
		out["proof"] = p
	}
	return out, nil
}

func proofDoc(p *backend.ProofData) doc {
	if p == nil {
		return nil
	}
	return doc{
		"root_tree_proof":     tmbytes.HexBytes(p.RootTreeProof),
		"store_tree_proof":    tmbytes.HexBytes(p.StoreTreeProof),
		"signature_llmq_hash": tmbytes.HexBytes(p.SignatureLLMQHash),
		"signature":           tmbytes.HexBytes(p.Signature),
	}
}
