package coregrpc

import (
	"net"

	"google.golang.org/grpc"
)

// StartGRPCServer serves the Core and Platform services on the given
// listener.
// NOTE: This function blocks - you may want to call it in a go-routine.
func StartGRPCServer(api *API, ln net.Listener) error {
	server := grpc.NewServer()
	RegisterCoreServer(server, api)
	RegisterPlatformServer(server, api)
	return server.Serve(ln)
}

// StartGRPCClient dials the gRPC server and returns clients for both
// services sharing one connection.
func StartGRPCClient(addr string) (CoreClient, PlatformClient, error) {
	conn, err := grpc.Dial(addr, grpc.WithInsecure())
	if err != nil {
		return nil, nil, err
	}
	return NewCoreClient(conn), NewPlatformClient(conn), nil
}
