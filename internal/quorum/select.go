// Package quorum tracks the active validator quorum derived from the
// node's event feed. Selection is deterministic: two trackers observing the
// same chain converge to identical snapshots.
package quorum

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"

	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"
	"github.com/K0LbAzzeR/dapi/types"
)

// sortableValidator pairs a validator with its selection key,
// SHA256(proTxHash || quorumHash).
type sortableValidator struct {
	validator *types.Validator
	key       []byte
}

func selectionKey(proTxHash, quorumHash []byte) []byte {
	h := sha256.New()
	h.Write(proTxHash)
	h.Write(quorumHash)
	return h.Sum(nil)
}

// SelectMembers deterministically selects up to size quorum members from
// the registry's validator set. Members are those with the lowest
// SHA256(proTxHash || quorumHash) values; the sort is total because
// proTxHashes are unique. With size <= 0 or fewer validators than size,
// every validator is selected.
func SelectMembers(validators []*types.Validator, quorumHash tmbytes.HexBytes, size int) ([]*types.Validator, error) {
	if len(validators) == 0 {
		return nil, fmt.Errorf("empty validator set")
	}

	sorted := make([]sortableValidator, len(validators))
	for i, v := range validators {
		if err := v.ValidateBasic(); err != nil {
			return nil, fmt.Errorf("malformed registry entry %d: %w", i, err)
		}
		sorted[i] = sortableValidator{
			validator: v,
			key:       selectionKey(v.ProTxHash, quorumHash),
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].key, sorted[j].key) < 0
	})

	n := size
	if n <= 0 || n > len(sorted) {
		n = len(sorted)
	}
	members := make([]*types.Validator, n)
	for i := 0; i < n; i++ {
		members[i] = sorted[i].validator.Copy()
	}
	return members, nil
}
