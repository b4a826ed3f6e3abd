package types

import (
	"bytes"
	"fmt"

	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"
)

// ProTxHashSize is the size, in bytes, of a masternode provider transaction
// hash.
const ProTxHashSize = 32

// Validator represents a single entry of the node's masternode/validator
// registry. ProTxHash uniquely identifies the masternode; Address is the
// host:port it serves on.
type Validator struct {
	ProTxHash tmbytes.HexBytes `json:"pro_tx_hash"`
	Address   string           `json:"address"`
}

// ValidateBasic performs stateless validation of the registry entry.
func (v *Validator) ValidateBasic() error {
	if v == nil {
		return fmt.Errorf("nil validator")
	}
	if len(v.ProTxHash) != ProTxHashSize {
		return fmt.Errorf("wrong proTxHash size: got %d, want %d", len(v.ProTxHash), ProTxHashSize)
	}
	return nil
}

// Copy returns a shallow-enough copy safe for callers to retain.
func (v *Validator) Copy() *Validator {
	cp := *v
	cp.ProTxHash = append(tmbytes.HexBytes(nil), v.ProTxHash...)
	return &cp
}

func (v *Validator) String() string {
	return fmt.Sprintf("Validator{%s @ %s}", v.ProTxHash.String(), v.Address)
}

// ValidatorsByProTxHash sorts validators lexicographically by proTxHash.
type ValidatorsByProTxHash []*Validator

func (vs ValidatorsByProTxHash) Len() int { return len(vs) }

func (vs ValidatorsByProTxHash) Less(i, j int) bool {
	return bytes.Compare(vs[i].ProTxHash, vs[j].ProTxHash) < 0
}

func (vs ValidatorsByProTxHash) Swap(i, j int) {
	vs[i], vs[j] = vs[j], vs[i]
}
