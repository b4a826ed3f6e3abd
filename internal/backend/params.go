// Package backend holds the clients for the gateway's external
// collaborators: the core full node, the application-state service
// ("Drive") and the validator registry the quorum tracker reads.
package backend

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
)

// MainNetParams are the Dash mainnet address encoding parameters. P2PKH
// addresses start with 'X'.
var MainNetParams = chaincfg.Params{
	Name:             "dash",
	Net:              wire.BitcoinNet(0xbd6b0cbf),
	PubKeyHashAddrID: 0x4c,
	ScriptHashAddrID: 0x10,
	PrivateKeyID:     0xcc,
	HDPrivateKeyID:   [4]byte{0x04, 0x88, 0xad, 0xe4},
	HDPublicKeyID:    [4]byte{0x04, 0x88, 0xb2, 0x1e},
	HDCoinType:       5,
}

// TestNetParams are the Dash testnet address encoding parameters. P2PKH
// addresses start with 'y'.
var TestNetParams = chaincfg.Params{
	Name:             "dashtest",
	Net:              wire.BitcoinNet(0xffcae2ce),
	PubKeyHashAddrID: 0x8c,
	ScriptHashAddrID: 0x13,
	PrivateKeyID:     0xef,
	HDPrivateKeyID:   [4]byte{0x04, 0x35, 0x83, 0x94},
	HDPublicKeyID:    [4]byte{0x04, 0x35, 0x87, 0xcf},
	HDCoinType:       1,
}

func init() {
	// Registration can only fail on duplicate names, which would be a
	// programming error here.
	if err := chaincfg.Register(&MainNetParams); err != nil {
		panic(err)
	}
	if err := chaincfg.Register(&TestNetParams); err != nil {
		panic(err)
	}
}

// ChainParams returns the address parameters for a configured network name.
func ChainParams(network string) *chaincfg.Params {
	if network == "testnet" {
		return &TestNetParams
	}
	return &MainNetParams
}

// ParseAddress decodes and checks a base58 address against the selected
// network. A failure is a ValidationError: it is detected before any
// backend call.
func ParseAddress(addr string, params *chaincfg.Params) (btcutil.Address, error) {
	decoded, err := btcutil.DecodeAddress(addr, params)
	if err != nil {
		return nil, gatewayerr.NewValidationError("address %q is not a valid %s address", addr, params.Name)
	}
	if !decoded.IsForNet(params) {
		return nil, gatewayerr.NewValidationError("address %q is not valid for network %s", addr, params.Name)
	}
	return decoded, nil
}
