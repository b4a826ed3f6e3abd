// Package config defines the gateway's configuration, loaded from file and
// flags by the start command.
package config

import (
	"fmt"
	"time"
)

const (
	// LogFormatPlain is colored text output.
	LogFormatPlain = "plain"
	// LogFormatJSON is structured json output.
	LogFormatJSON = "json"

	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// Config defines the top level configuration for the gateway.
type Config struct {
	BaseConfig `mapstructure:",squash"`

	JSONRPC         *JSONRPCConfig         `mapstructure:"jsonrpc"`
	GRPC            *GRPCConfig            `mapstructure:"grpc"`
	Core            *CoreConfig            `mapstructure:"core"`
	Drive           *DriveConfig           `mapstructure:"drive"`
	Feed            *FeedConfig            `mapstructure:"feed"`
	Quorum          *QuorumConfig          `mapstructure:"quorum"`
	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation"`
}

// DefaultConfig returns a default configuration for the gateway.
func DefaultConfig() *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(),
		JSONRPC:         DefaultJSONRPCConfig(),
		GRPC:            DefaultGRPCConfig(),
		Core:            DefaultCoreConfig(),
		Drive:           DefaultDriveConfig(),
		Feed:            DefaultFeedConfig(),
		Quorum:          DefaultQuorumConfig(),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// TestConfig returns a configuration for tests: everything on loopback,
// quick feed retries, no metrics endpoint.
func TestConfig() *Config {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.JSONRPC.ListenAddress = "127.0.0.1:0"
	cfg.GRPC.ListenAddress = "127.0.0.1:0"
	cfg.Instrumentation.Prometheus = false
	return cfg
}

// ValidateBasic performs basic validation (checking param bounds, etc.) and
// returns an error if any check fails.
func (cfg *Config) ValidateBasic() error {
	if err := cfg.BaseConfig.ValidateBasic(); err != nil {
		return err
	}
	if err := cfg.JSONRPC.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [jsonrpc] section: %w", err)
	}
	if err := cfg.Quorum.ValidateBasic(); err != nil {
		return fmt.Errorf("error in [quorum] section: %w", err)
	}
	return nil
}

//-----------------------------------------------------------------------------

// BaseConfig defines the base configuration for the gateway.
type BaseConfig struct {
	// Network selects the chain parameters used for address validation:
	// mainnet or testnet.
	Network string `mapstructure:"network"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

func DefaultBaseConfig() BaseConfig {
	return BaseConfig{
		Network:   NetworkMainnet,
		LogLevel:  "info",
		LogFormat: LogFormatPlain,
	}
}

func (cfg BaseConfig) ValidateBasic() error {
	switch cfg.Network {
	case NetworkMainnet, NetworkTestnet:
	default:
		return fmt.Errorf("unknown network %q", cfg.Network)
	}
	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log-format %q", cfg.LogFormat)
	}
	return nil
}

//-----------------------------------------------------------------------------

// JSONRPCConfig defines the configuration for the JSON-RPC front-end.
type JSONRPCConfig struct {
	ListenAddress string `mapstructure:"laddr"`

	// A list of origins a cross-domain request can be executed from.
	// An empty list means CORS is disabled.
	CORSAllowedOrigins []string `mapstructure:"cors-allowed-origins"`

	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
}

func DefaultJSONRPCConfig() *JSONRPCConfig {
	return &JSONRPCConfig{
		ListenAddress:      "127.0.0.1:2500",
		CORSAllowedOrigins: nil,
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
	}
}

func (cfg *JSONRPCConfig) ValidateBasic() error {
	if cfg.ReadTimeout < 0 {
		return fmt.Errorf("read-timeout can't be negative")
	}
	if cfg.WriteTimeout < 0 {
		return fmt.Errorf("write-timeout can't be negative")
	}
	return nil
}

//-----------------------------------------------------------------------------

// GRPCConfig defines the configuration for the binary front-end.
type GRPCConfig struct {
	ListenAddress string `mapstructure:"laddr"`
}

func DefaultGRPCConfig() *GRPCConfig {
	return &GRPCConfig{ListenAddress: "127.0.0.1:2510"}
}

//-----------------------------------------------------------------------------

// CoreConfig defines how to reach the core chain node's RPC interface.
type CoreConfig struct {
	RPCHost string `mapstructure:"rpc-host"`
	RPCUser string `mapstructure:"rpc-user"`
	RPCPass string `mapstructure:"rpc-pass"`
}

func DefaultCoreConfig() *CoreConfig {
	return &CoreConfig{RPCHost: "127.0.0.1:9998"}
}

//-----------------------------------------------------------------------------

// DriveConfig defines how to reach the application-state service.
type DriveConfig struct {
	Address string `mapstructure:"address"`
}

func DefaultDriveConfig() *DriveConfig {
	return &DriveConfig{Address: "127.0.0.1:26670"}
}

//-----------------------------------------------------------------------------

// FeedConfig defines the event feed subscription.
type FeedConfig struct {
	// Address is the feed's host:port; Endpoint is the websocket URL path.
	Address  string `mapstructure:"address"`
	Endpoint string `mapstructure:"endpoint"`

	// MaxReconnectAttempts bounds how often the feed client redials after
	// a socket-level disconnect before giving up.
	MaxReconnectAttempts int `mapstructure:"max-reconnect-attempts"`
}

func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		Address:              "127.0.0.1:26657",
		Endpoint:             "/websocket",
		MaxReconnectAttempts: 25,
	}
}

//-----------------------------------------------------------------------------

// QuorumConfig defines the quorum selection the tracker performs on every
// new block.
type QuorumConfig struct {
	Size int `mapstructure:"size"`
}

func DefaultQuorumConfig() *QuorumConfig {
	return &QuorumConfig{Size: 100}
}

func (cfg *QuorumConfig) ValidateBasic() error {
	if cfg.Size <= 0 {
		return fmt.Errorf("size must be positive")
	}
	return nil
}

//-----------------------------------------------------------------------------

// InstrumentationConfig defines the gateway's metrics endpoint.
type InstrumentationConfig struct {
	// When true, a Prometheus metrics endpoint is served at
	// PrometheusListenAddr under /metrics.
	Prometheus           bool   `mapstructure:"prometheus"`
	PrometheusListenAddr string `mapstructure:"prometheus-listen-addr"`

	// Namespace prefixes every metric name.
	Namespace string `mapstructure:"namespace"`
}

func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus:           false,
		PrometheusListenAddr: ":26660",
		Namespace:            "dapi",
	}
}
