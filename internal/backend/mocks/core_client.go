// Package mocks provides hand-written test doubles for the backend client
// interfaces. Every method counts its invocations so tests can assert that
// rejected requests never reached the backend.
package mocks

import (
	"context"
	"sync/atomic"

	"github.com/K0LbAzzeR/dapi/internal/backend"
	"github.com/K0LbAzzeR/dapi/types"
)

// CoreClient is a configurable backend.CoreClient double. Unset function
// fields return zero values.
type CoreClient struct {
	calls int64

	PingFn               func(ctx context.Context) error
	GetStatusFn          func(ctx context.Context) (*backend.ChainStatus, error)
	GetBestBlockHashFn   func(ctx context.Context) (string, error)
	GetBlockHashFn       func(ctx context.Context, height int64) (string, error)
	GetBlockFn           func(ctx context.Context, hash string) (*backend.Block, error)
	GetAddressBalanceFn  func(ctx context.Context, addresses []string) (*backend.AddressBalance, error)
	GetAddressSummaryFn  func(ctx context.Context, addresses []string) (map[string]interface{}, error)
	GetAddressUTXOsFn    func(ctx context.Context, addresses []string) ([]interface{}, error)
	GetTransactionFn     func(ctx context.Context, txid string) (*backend.Transaction, error)
	SendRawTransactionFn func(ctx context.Context, rawTx []byte, allowHighFees bool) (string, error)
	MasternodeListDiffFn func(ctx context.Context, baseBlockHash, blockHash string) (map[string]interface{}, error)
	ValidatorSetFn       func(ctx context.Context, height int64) ([]*types.Validator, error)
}

var _ backend.CoreClient = (*CoreClient)(nil)

// Calls returns how many backend calls were made.
func (m *CoreClient) Calls() int64 {
	return atomic.LoadInt64(&m.calls)
}

func (m *CoreClient) called() {
	atomic.AddInt64(&m.calls, 1)
}

func (m *CoreClient) Ping(ctx context.Context) error {
	m.called()
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

func (m *CoreClient) GetStatus(ctx context.Context) (*backend.ChainStatus, error) {
	m.called()
	if m.GetStatusFn != nil {
		return m.GetStatusFn(ctx)
	}
	return &backend.ChainStatus{}, nil
}

func (m *CoreClient) GetBestBlockHash(ctx context.Context) (string, error) {
	m.called()
	if m.GetBestBlockHashFn != nil {
		return m.GetBestBlockHashFn(ctx)
	}
	return "", nil
}

func (m *CoreClient) GetBlockHash(ctx context.Context, height int64) (string, error) {
	m.called()
	if m.GetBlockHashFn != nil {
		return m.GetBlockHashFn(ctx, height)
	}
	return "", nil
}

func (m *CoreClient) GetBlock(ctx context.Context, hash string) (*backend.Block, error) {
	m.called()
	if m.GetBlockFn != nil {
		return m.GetBlockFn(ctx, hash)
	}
	return &backend.Block{}, nil
}

func (m *CoreClient) GetAddressBalance(ctx context.Context, addresses []string) (*backend.AddressBalance, error) {
	m.called()
	if m.GetAddressBalanceFn != nil {
		return m.GetAddressBalanceFn(ctx, addresses)
	}
	return &backend.AddressBalance{}, nil
}

func (m *CoreClient) GetAddressSummary(ctx context.Context, addresses []string) (map[string]interface{}, error) {
	m.called()
	if m.GetAddressSummaryFn != nil {
		return m.GetAddressSummaryFn(ctx, addresses)
	}
	return map[string]interface{}{}, nil
}

func (m *CoreClient) GetAddressUTXOs(ctx context.Context, addresses []string) ([]interface{}, error) {
	m.called()
	if m.GetAddressUTXOsFn != nil {
		return m.GetAddressUTXOsFn(ctx, addresses)
	}
	return nil, nil
}

func (m *CoreClient) GetTransaction(ctx context.Context, txid string) (*backend.Transaction, error) {
	m.called()
	if m.GetTransactionFn != nil {
		return m.GetTransactionFn(ctx, txid)
	}
	return &backend.Transaction{}, nil
}

func (m *CoreClient) SendRawTransaction(ctx context.Context, rawTx []byte, allowHighFees bool) (string, error) {
	m.called()
	if m.SendRawTransactionFn != nil {
		return m.SendRawTransactionFn(ctx, rawTx, allowHighFees)
	}
	return "", nil
}

func (m *CoreClient) MasternodeListDiff(ctx context.Context, baseBlockHash, blockHash string) (map[string]interface{}, error) {
	m.called()
	if m.MasternodeListDiffFn != nil {
		return m.MasternodeListDiffFn(ctx, baseBlockHash, blockHash)
	}
	return map[string]interface{}{}, nil
}

func (m *CoreClient) ValidatorSet(ctx context.Context, height int64) ([]*types.Validator, error) {
	m.called()
	if m.ValidatorSetFn != nil {
		return m.ValidatorSetFn(ctx, height)
	}
	return nil, nil
}

func (m *CoreClient) Close() error { return nil }
