package backend

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	coregrpc "github.com/K0LbAzzeR/dapi/rpc/grpc"
)

// Upstream error codes for the application-state service, as consumed by
// the error translator's default mapping.
const (
	DriveCodeNotFound           = 1
	DriveCodeInvalidArgument    = 2
	DriveCodeFailedPrecondition = 3
	DriveCodeResourceExhausted  = 4
)

// ProofData is the cryptographic proof attached to an application-state
// response when the caller requested one.
type ProofData struct {
	RootTreeProof     []byte
	StoreTreeProof    []byte
	SignatureLLMQHash []byte
	Signature         []byte
}

// IdentityResult is one identity record, with proof iff requested.
type IdentityResult struct {
	Identity []byte
	Proof    *ProofData
}

// IdentitiesResult is a batch of identity records, with proof iff
// requested.
type IdentitiesResult struct {
	Identities [][]byte
	Proof      *ProofData
}

// DriveClient is the application-state query API the platform command
// handlers consume.
type DriveClient interface {
	GetIdentity(ctx context.Context, id []byte, prove bool) (*IdentityResult, error)
	GetIdentitiesByPublicKeyHashes(ctx context.Context, hashes [][]byte, prove bool) (*IdentitiesResult, error)
	Close() error
}

// driveClient talks to Drive over gRPC, sharing the gateway's own platform
// wire messages.
type driveClient struct {
	conn     *grpc.ClientConn
	platform coregrpc.PlatformClient
}

// NewDriveClient dials the application-state service.
func NewDriveClient(addr string) (DriveClient, error) {
	conn, err := grpc.Dial(addr, grpc.WithInsecure())
	if err != nil {
		return nil, err
	}
	return &driveClient{
		conn:     conn,
		platform: coregrpc.NewPlatformClient(conn),
	}, nil
}

func (c *driveClient) Close() error {
	return c.conn.Close()
}

// driveError converts a gRPC status failure from Drive into the gateway's
// upstream error form, mapped onto Drive's code space.
func driveError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var code int
	switch st.Code() {
	case codes.NotFound:
		code = DriveCodeNotFound
	case codes.InvalidArgument:
		code = DriveCodeInvalidArgument
	case codes.FailedPrecondition:
		code = DriveCodeFailedPrecondition
	case codes.ResourceExhausted:
		code = DriveCodeResourceExhausted
	default:
		code = int(st.Code())
	}
	return &gatewayerr.UpstreamError{Code: code, Message: st.Message()}
}

func proofFromWire(p *coregrpc.Proof) *ProofData {
	if p == nil {
		return nil
	}
	return &ProofData{
		RootTreeProof:     p.RootTreeProof,
		StoreTreeProof:    p.StoreTreeProof,
		SignatureLLMQHash: p.SignatureLlmqHash,
		Signature:         p.Signature,
	}
}

func (c *driveClient) GetIdentity(ctx context.Context, id []byte, prove bool) (*IdentityResult, error) {
	req := &coregrpc.GetIdentityRequest{Id: id}
	if prove {
		req.Prove = &prove
	}
	resp, err := c.platform.GetIdentity(ctx, req)
	if err != nil {
		return nil, driveError(err)
	}
	return &IdentityResult{
		Identity: resp.Identity,
		Proof:    proofFromWire(resp.Proof),
	}, nil
}

func (c *driveClient) GetIdentitiesByPublicKeyHashes(ctx context.Context, hashes [][]byte, prove bool) (*IdentitiesResult, error) {
	req := &coregrpc.GetIdentitiesByPublicKeyHashesRequest{PublicKeyHashes: hashes}
	if prove {
		req.Prove = &prove
	}
	resp, err := c.platform.GetIdentitiesByPublicKeyHashes(ctx, req)
	if err != nil {
		return nil, driveError(err)
	}
	return &IdentitiesResult{
		Identities: resp.Identities,
		Proof:      proofFromWire(resp.Proof),
	}, nil
}
