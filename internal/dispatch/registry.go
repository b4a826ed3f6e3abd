// Package dispatch implements the command registry and schema validator
// shared by the JSON-RPC and binary front-ends. The registry is populated
// once at startup and is read-only during request handling, so dispatching
// requires no synchronization.
package dispatch

import (
	"context"
	"sort"
	"time"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	"github.com/K0LbAzzeR/dapi/libs/log"
)

// Deps is the opaque bag of backend dependencies handlers are constructed
// over. The concrete type is owned by the rpc core package; factories
// assert it back.
type Deps interface{}

// Handler executes one command with normalized named parameters. Handlers
// may perform network I/O against backend services and may block on ctx.
type Handler func(ctx context.Context, params Params) (interface{}, error)

// HandlerFactory constructs a Handler over the registry's dependency bag.
// It is invoked exactly once, at registration time; the resulting handler
// is cached and reused for every request.
type HandlerFactory func(deps Deps) Handler

type command struct {
	schema  Schema
	handler Handler
}

// Registry maps command names to their schema and cached handler.
type Registry struct {
	logger   log.Logger
	metrics  *Metrics
	deps     Deps
	commands map[string]*command
}

// NewRegistry creates an empty registry over the given dependency bag.
func NewRegistry(logger log.Logger, deps Deps, metrics *Metrics) *Registry {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &Registry{
		logger:   logger.With("module", "dispatch"),
		metrics:  metrics,
		deps:     deps,
		commands: make(map[string]*command),
	}
}

// Register adds a command. Registering a name twice returns a
// DuplicateCommandError; the bootstrap treats that as fatal.
func (r *Registry) Register(name string, schema Schema, factory HandlerFactory) error {
	if _, ok := r.commands[name]; ok {
		return &gatewayerr.DuplicateCommandError{Command: name}
	}
	r.commands[name] = &command{
		schema:  schema,
		handler: factory(r.deps),
	}
	return nil
}

// Dispatch validates rawParams against the command's schema and runs its
// handler. Validation failures never reach the backend. Handler errors are
// propagated unwrapped; rendering them into protocol form is the error
// translator's job.
func (r *Registry) Dispatch(ctx context.Context, name string, rawParams interface{}) (interface{}, error) {
	cmd, ok := r.commands[name]
	if !ok {
		r.metrics.RequestsRejected.With("command", name).Add(1)
		return nil, &gatewayerr.UnknownCommandError{Command: name}
	}

	params, err := cmd.schema.Normalize(rawParams)
	if err != nil {
		r.metrics.RequestsRejected.With("command", name).Add(1)
		return nil, err
	}

	start := time.Now()
	result, err := cmd.handler(ctx, params)
	r.metrics.RequestDurationSeconds.With("command", name).Observe(time.Since(start).Seconds())
	if err != nil {
		r.metrics.RequestsFailed.With("command", name).Add(1)
		return nil, err
	}
	r.metrics.RequestsHandled.With("command", name).Add(1)
	return result, nil
}

// Has reports whether a command name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// Commands returns the sorted list of registered command names.
func (r *Registry) Commands() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
