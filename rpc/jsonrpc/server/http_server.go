// Commons for HTTP handling
package server

import (
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/cors"

	"github.com/K0LbAzzeR/dapi/libs/log"
	rpctypes "github.com/K0LbAzzeR/dapi/rpc/jsonrpc/types"
)

// Config is an RPC server configuration.
type Config struct {
	// The maximum time to wait for reading the full request.
	ReadTimeout time.Duration
	// The maximum time to wait before the response write times out.
	WriteTimeout time.Duration
	// Origins allowed by the CORS policy; empty disables CORS handling.
	CORSAllowedOrigins []string
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Serve runs the JSON-RPC front-end on the listener until it fails or the
// listener closes.
// NOTE: This function blocks - you may want to call it in a go-routine.
func Serve(listener net.Listener, handler http.Handler, logger log.Logger, config *Config) error {
	logger.Info("starting JSON-RPC server", "addr", listener.Addr().String())

	if len(config.CORSAllowedOrigins) != 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: config.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodPost},
			AllowedHeaders: []string{"Origin", "Accept", "Content-Type"},
		}).Handler(handler)
	}

	s := &http.Server{
		Handler:      recoverAndLogHandler(handler, logger),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	err := s.Serve(listener)
	logger.Info("JSON-RPC server stopped", "err", err)
	return err
}

// Listen starts a new net.Listener on the given address.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %v: %w", addr, err)
	}
	return ln, nil
}

// recoverAndLogHandler wraps an HTTP handler, adding error logging. If the
// inner handler panics, it recovers and sends a JSON-RPC internal error so
// a single bad request never takes the server down.
func recoverAndLogHandler(handler http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rww := &responseWriterWrapper{-1, w}
		begin := time.Now()

		defer func() {
			if e := recover(); e != nil {
				logger.Error("panic in RPC HTTP handler",
					"err", e, "stack", string(debug.Stack()))
				writeRPCResponse(rww, logger, rpctypes.RPCRequest{}.MakeError(
					rpctypes.CodeInternalError, "Internal error", fmt.Sprintf("%v", e)))
			}

			if rww.Status == -1 {
				rww.Status = http.StatusOK
			}
			logger.Debug("served RPC HTTP response",
				"method", r.Method,
				"url", r.URL,
				"status", rww.Status,
				"duration", time.Since(begin),
				"remote_addr", r.RemoteAddr,
			)
		}()

		handler.ServeHTTP(rww, r)
	})
}

// responseWriterWrapper remembers the status for logging.
type responseWriterWrapper struct {
	Status int
	http.ResponseWriter
}

func (w *responseWriterWrapper) WriteHeader(status int) {
	w.Status = status
	w.ResponseWriter.WriteHeader(status)
}
