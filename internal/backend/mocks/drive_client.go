package mocks

import (
	"context"
	"sync/atomic"

	"github.com/K0LbAzzeR/dapi/internal/backend"
)

// DriveClient is a configurable backend.DriveClient double.
type DriveClient struct {
	calls int64

	GetIdentityFn                    func(ctx context.Context, id []byte, prove bool) (*backend.IdentityResult, error)
	GetIdentitiesByPublicKeyHashesFn func(ctx context.Context, hashes [][]byte, prove bool) (*backend.IdentitiesResult, error)
}

var _ backend.DriveClient = (*DriveClient)(nil)

// Calls returns how many backend calls were made.
func (m *DriveClient) Calls() int64 {
	return atomic.LoadInt64(&m.calls)
}

func (m *DriveClient) GetIdentity(ctx context.Context, id []byte, prove bool) (*backend.IdentityResult, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetIdentityFn != nil {
		return m.GetIdentityFn(ctx, id, prove)
	}
	return &backend.IdentityResult{}, nil
}

func (m *DriveClient) GetIdentitiesByPublicKeyHashes(ctx context.Context, hashes [][]byte, prove bool) (*backend.IdentitiesResult, error) {
	atomic.AddInt64(&m.calls, 1)
	if m.GetIdentitiesByPublicKeyHashesFn != nil {
		return m.GetIdentitiesByPublicKeyHashesFn(ctx, hashes, prove)
	}
	return &backend.IdentitiesResult{}, nil
}

func (m *DriveClient) Close() error { return nil }
