package coregrpc_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/K0LbAzzeR/dapi/internal/backend"
	"github.com/K0LbAzzeR/dapi/internal/backend/mocks"
	coregrpc "github.com/K0LbAzzeR/dapi/rpc/grpc"
)

// Serves the API on a real socket and calls it through the dialed clients.
func TestGRPCClientServer(t *testing.T) {
	coreMock := &mocks.CoreClient{
		GetStatusFn: func(ctx context.Context) (*backend.ChainStatus, error) {
			return &backend.ChainStatus{
				Chain:         "main",
				Blocks:        1726000,
				BestBlockHash: "00ff",
				Difficulty:    81523.5,
			}, nil
		},
	}
	driveMock := &mocks.DriveClient{
		GetIdentityFn: func(ctx context.Context, id []byte, prove bool) (*backend.IdentityResult, error) {
			return &backend.IdentityResult{Identity: []byte{0x10}}, nil
		},
	}
	api := newTestAPI(t, coreMock, driveMock)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go coregrpc.StartGRPCServer(api, ln) //nolint:errcheck
	t.Cleanup(func() { ln.Close() })

	coreClient, platformClient, err := coregrpc.StartGRPCClient(ln.Addr().String())
	require.NoError(t, err)
	ctx := context.Background()

	statusResp, err := coreClient.GetStatus(ctx, &coregrpc.GetStatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, "main", statusResp.Chain)
	assert.EqualValues(t, 1726000, statusResp.Blocks)
	assert.Equal(t, []byte{0x00, 0xff}, statusResp.BestBlockHash)

	idResp, err := platformClient.GetIdentity(ctx, &coregrpc.GetIdentityRequest{Id: []byte{0x01}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10}, idResp.Identity)

	// Translated errors cross the transport as grpc statuses.
	_, err = coreClient.GetBlock(ctx, &coregrpc.GetBlockRequest{})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}
