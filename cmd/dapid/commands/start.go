package commands

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/K0LbAzzeR/dapi/config"
	"github.com/K0LbAzzeR/dapi/internal/backend"
	"github.com/K0LbAzzeR/dapi/internal/dispatch"
	"github.com/K0LbAzzeR/dapi/internal/eventfeed"
	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	"github.com/K0LbAzzeR/dapi/internal/quorum"
	"github.com/K0LbAzzeR/dapi/internal/rpc/core"
	"github.com/K0LbAzzeR/dapi/libs/log"
	coregrpc "github.com/K0LbAzzeR/dapi/rpc/grpc"
	rpcserver "github.com/K0LbAzzeR/dapi/rpc/jsonrpc/server"
)

// NewStartCommand returns the command that runs the gateway until
// interrupted.
func NewStartCommand(conf *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startGateway(cmd.Context(), conf)
		},
	}

	cmd.Flags().String("jsonrpc.laddr", conf.JSONRPC.ListenAddress, "JSON-RPC listen address")
	cmd.Flags().String("grpc.laddr", conf.GRPC.ListenAddress, "gRPC listen address")
	cmd.Flags().String("core.rpc-host", conf.Core.RPCHost, "core node RPC host:port")
	cmd.Flags().String("core.rpc-user", conf.Core.RPCUser, "core node RPC username")
	cmd.Flags().String("core.rpc-pass", conf.Core.RPCPass, "core node RPC password")
	cmd.Flags().String("drive.address", conf.Drive.Address, "drive gRPC address")
	cmd.Flags().String("feed.address", conf.Feed.Address, "event feed host:port")
	cmd.Flags().String("network", conf.Network, "chain network (mainnet | testnet)")
	return cmd
}

func startGateway(ctx context.Context, conf *config.Config) error {
	logger, err := log.NewDefaultLogger(conf.LogFormat, conf.LogLevel)
	if err != nil {
		return err
	}

	coreClient, err := backend.NewCoreClient(conf.Core.RPCHost, conf.Core.RPCUser, conf.Core.RPCPass)
	if err != nil {
		return fmt.Errorf("connecting to core node: %w", err)
	}
	defer coreClient.Close()

	driveClient, err := backend.NewDriveClient(conf.Drive.Address)
	if err != nil {
		return fmt.Errorf("connecting to drive: %w", err)
	}
	defer driveClient.Close()

	feed := eventfeed.NewClient(logger, conf.Feed.Address, conf.Feed.Endpoint,
		eventfeed.MaxReconnectAttempts(conf.Feed.MaxReconnectAttempts))
	tracker := quorum.NewTracker(logger, feed, coreClient, conf.Quorum.Size)

	env := &core.Environment{
		Logger:      logger,
		Core:        coreClient,
		Drive:       driveClient,
		Quorum:      tracker,
		ChainParams: backend.ChainParams(conf.Network),
	}

	metrics := dispatch.NopMetrics()
	if conf.Instrumentation.Prometheus {
		metrics = dispatch.PrometheusMetrics(conf.Instrumentation.Namespace)
	}
	registry := dispatch.NewRegistry(logger, env, metrics)
	if err := env.RegisterRoutes(registry); err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}
	translator := gatewayerr.NewTranslator(logger, nil)

	if err := feed.Start(ctx); err != nil {
		return fmt.Errorf("starting event feed: %w", err)
	}
	defer feed.Stop() //nolint:errcheck
	if err := tracker.Start(ctx); err != nil {
		return fmt.Errorf("starting quorum tracker: %w", err)
	}
	defer tracker.Stop() //nolint:errcheck

	jsonLn, err := rpcserver.Listen(conf.JSONRPC.ListenAddress)
	if err != nil {
		return err
	}
	jsonHandler := rpcserver.MakeJSONRPCHandler(registry, translator, logger)
	go func() {
		serverConf := &rpcserver.Config{
			ReadTimeout:        conf.JSONRPC.ReadTimeout,
			WriteTimeout:       conf.JSONRPC.WriteTimeout,
			CORSAllowedOrigins: conf.JSONRPC.CORSAllowedOrigins,
		}
		if err := rpcserver.Serve(jsonLn, jsonHandler, logger, serverConf); err != nil {
			logger.Error("JSON-RPC server terminated", "err", err)
		}
	}()

	grpcLn, err := net.Listen("tcp", conf.GRPC.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %v: %w", conf.GRPC.ListenAddress, err)
	}
	api := coregrpc.NewAPI(registry, translator)
	go func() {
		logger.Info("starting gRPC server", "addr", grpcLn.Addr().String())
		if err := coregrpc.StartGRPCServer(api, grpcLn); err != nil {
			logger.Error("gRPC server terminated", "err", err)
		}
	}()

	if conf.Instrumentation.Prometheus {
		go func() {
			addr := conf.Instrumentation.PrometheusListenAddr
			logger.Info("serving prometheus metrics", "addr", addr)
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics server terminated", "err", err)
			}
		}()
	}

	logger.Info("gateway started",
		"network", conf.Network,
		"commands", len(registry.Commands()))

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
