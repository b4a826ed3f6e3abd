package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
)

func TestParseAddress(t *testing.T) {
	const mainnetAddr = "XsLdVrfJpzt6Fc8RSUFkqYqtxkLjEv484w"

	addr, err := ParseAddress(mainnetAddr, ChainParams("mainnet"))
	require.NoError(t, err)
	assert.Equal(t, mainnetAddr, addr.EncodeAddress())

	_, err = ParseAddress(mainnetAddr, ChainParams("testnet"))
	require.Error(t, err)
	var valErr *gatewayerr.ValidationError
	assert.ErrorAs(t, err, &valErr)

	_, err = ParseAddress("not-an-address", ChainParams("mainnet"))
	require.Error(t, err)
	assert.ErrorAs(t, err, &valErr)
}

func TestChainParams(t *testing.T) {
	assert.Equal(t, &MainNetParams, ChainParams("mainnet"))
	assert.Equal(t, &TestNetParams, ChainParams("testnet"))
	// Anything unrecognized falls back to mainnet.
	assert.Equal(t, &MainNetParams, ChainParams(""))
}
