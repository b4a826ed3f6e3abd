package quorum

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"
	"github.com/K0LbAzzeR/dapi/types"
)

func makeValidators(t *testing.T, n int) []*types.Validator {
	t.Helper()
	vals := make([]*types.Validator, n)
	for i := 0; i < n; i++ {
		proTxHash := sha256.Sum256([]byte(fmt.Sprintf("validator-%d", i)))
		vals[i] = &types.Validator{
			ProTxHash: proTxHash[:],
			Address:   fmt.Sprintf("10.0.0.%d:19999", i+1),
		}
	}
	return vals
}

func TestSelectMembersDeterministic(t *testing.T) {
	vals := makeValidators(t, 20)
	quorumHash := tmbytes.HexBytes(bytes.Repeat([]byte{0xab}, 32))

	first, err := SelectMembers(vals, quorumHash, 5)
	require.NoError(t, err)
	require.Len(t, first, 5)

	second, err := SelectMembers(vals, quorumHash, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSelectMembersOrder(t *testing.T) {
	vals := makeValidators(t, 10)
	quorumHash := tmbytes.HexBytes(bytes.Repeat([]byte{0x01}, 32))

	members, err := SelectMembers(vals, quorumHash, 4)
	require.NoError(t, err)

	// Recompute the expected ranking independently.
	type ranked struct {
		proTxHash []byte
		key       []byte
	}
	expected := make([]ranked, len(vals))
	for i, v := range vals {
		h := sha256.New()
		h.Write(v.ProTxHash)
		h.Write(quorumHash)
		expected[i] = ranked{proTxHash: v.ProTxHash, key: h.Sum(nil)}
	}
	sort.Slice(expected, func(i, j int) bool {
		return bytes.Compare(expected[i].key, expected[j].key) < 0
	})

	for i, m := range members {
		assert.Equal(t, []byte(expected[i].proTxHash), []byte(m.ProTxHash), "member %d", i)
	}
}

func TestSelectMembersSizeBounds(t *testing.T) {
	vals := makeValidators(t, 3)
	quorumHash := tmbytes.HexBytes(bytes.Repeat([]byte{0x02}, 32))

	all, err := SelectMembers(vals, quorumHash, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	more, err := SelectMembers(vals, quorumHash, 10)
	require.NoError(t, err)
	assert.Len(t, more, 3)
}

func TestSelectMembersCopies(t *testing.T) {
	vals := makeValidators(t, 4)
	quorumHash := tmbytes.HexBytes(bytes.Repeat([]byte{0x03}, 32))

	members, err := SelectMembers(vals, quorumHash, 4)
	require.NoError(t, err)

	members[0].Address = "mutated"
	for _, v := range vals {
		assert.NotEqual(t, "mutated", v.Address)
	}
}

func TestSelectMembersErrors(t *testing.T) {
	quorumHash := tmbytes.HexBytes(bytes.Repeat([]byte{0x04}, 32))

	_, err := SelectMembers(nil, quorumHash, 5)
	assert.Error(t, err)

	bad := makeValidators(t, 2)
	bad[1].ProTxHash = []byte{0x01, 0x02} // wrong size
	_, err = SelectMembers(bad, quorumHash, 2)
	assert.Error(t, err)
}
