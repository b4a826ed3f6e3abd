package gatewayerr

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/K0LbAzzeR/dapi/libs/log"
)

// JSON-RPC 2.0 error codes produced by the translator.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeServerError    = -32000
)

// Translated is the protocol-neutral result of classifying an error. Both
// front-ends render their responses from it, so repeated translations of
// equivalent errors always yield the same codes.
type Translated struct {
	JSONRPCCode int
	GRPCCode    codes.Code
	Message     string
	Data        string
}

// Override intercepts an upstream error before the default code mapping
// applies. Returning a non-nil error replaces the original entirely;
// returning nil falls through to the default mapping. Overrides are keyed
// by upstream code and are consulted at most once per translation, so an
// override that raises another UpstreamError is not re-intercepted.
type Override func(*UpstreamError) error

// mapping pairs a JSON-RPC code with a gRPC status code for one upstream
// numeric code.
type mapping struct {
	jsonrpc int
	grpc    codes.Code
}

// Default upstream-code mapping. Negative codes follow the core node's
// bitcoind-derived error space, positive codes the application-state
// service's.
var upstreamCodes = map[int]mapping{
	// core node
	-5:  {CodeInvalidParams, codes.InvalidArgument}, // invalid address or key
	-8:  {CodeInvalidParams, codes.InvalidArgument}, // invalid parameter
	-25: {CodeServerError, codes.FailedPrecondition}, // verify error
	-26: {CodeServerError, codes.FailedPrecondition}, // transaction rejected
	-27: {CodeServerError, codes.AlreadyExists},      // already in chain
	-28: {CodeServerError, codes.Unavailable},        // node warming up

	// application-state service
	1: {CodeServerError, codes.NotFound},
	2: {CodeInvalidParams, codes.InvalidArgument},
	3: {CodeServerError, codes.FailedPrecondition},
	4: {CodeServerError, codes.ResourceExhausted},
}

// Translator is the single chokepoint turning any error raised between the
// schema validator and handler execution into protocol codes. It is
// read-only after construction and safe for concurrent use.
type Translator struct {
	logger    log.Logger
	overrides map[int]Override
}

// NewTranslator returns a translator with the default upstream-code table
// and the given per-code overrides.
func NewTranslator(logger log.Logger, overrides map[int]Override) *Translator {
	ov := make(map[int]Override, len(overrides))
	for code, fn := range overrides {
		ov[code] = fn
	}
	return &Translator{
		logger:    logger.With("module", "gatewayerr"),
		overrides: ov,
	}
}

// Translate classifies err and produces the protocol codes for it. The
// original error's message and structured data are always preserved in the
// Message/Data fields.
func (t *Translator) Translate(err error) Translated {
	t.logger.Debug("translating dispatch error", "err", err)

	var (
		valErr     *ValidationError
		unknownErr *UnknownCommandError
		malErr     *MalformedMessageError
		quorumErr  *QuorumNotReadyError
		upErr      *UpstreamError
	)

	switch {
	case errors.As(err, &valErr):
		return Translated{
			JSONRPCCode: CodeInvalidParams,
			GRPCCode:    codes.InvalidArgument,
			Message:     "Invalid params",
			Data:        valErr.Reason,
		}

	case errors.As(err, &unknownErr):
		return Translated{
			JSONRPCCode: CodeMethodNotFound,
			GRPCCode:    codes.Unimplemented,
			Message:     "Method not found",
			Data:        unknownErr.Command,
		}

	case errors.As(err, &malErr):
		return Translated{
			JSONRPCCode: CodeParseError,
			GRPCCode:    codes.InvalidArgument,
			Message:     "Parse error",
			Data:        malErr.Reason,
		}

	case errors.As(err, &quorumErr):
		return Translated{
			JSONRPCCode: CodeServerError,
			GRPCCode:    codes.Unavailable,
			Message:     "Server error",
			Data:        quorumErr.Error(),
		}

	case errors.As(err, &upErr):
		return t.translateUpstream(upErr)
	}

	// Anything unclassified becomes a generic internal error, never
	// swallowed: the original text travels in the data payload.
	return Translated{
		JSONRPCCode: CodeInternalError,
		GRPCCode:    codes.Internal,
		Message:     "Internal error",
		Data:        err.Error(),
	}
}

func (t *Translator) translateUpstream(upErr *UpstreamError) Translated {
	if override, ok := t.overrides[upErr.Code]; ok {
		if replaced := override(upErr); replaced != nil {
			t.logger.Debug("upstream error replaced by override",
				"code", upErr.Code, "err", replaced)
			// Re-raised upstream errors bypass the override table to keep
			// translation terminating.
			var reUp *UpstreamError
			if errors.As(replaced, &reUp) {
				return t.defaultUpstream(reUp)
			}
			return t.Translate(replaced)
		}
	}
	return t.defaultUpstream(upErr)
}

func (t *Translator) defaultUpstream(upErr *UpstreamError) Translated {
	m, ok := upstreamCodes[upErr.Code]
	if !ok {
		m = mapping{CodeServerError, codes.Unknown}
	}
	return Translated{
		JSONRPCCode: m.jsonrpc,
		GRPCCode:    m.grpc,
		Message:     upErr.Message,
		Data:        upErr.Data,
	}
}

// GRPCStatusError renders err as a gRPC status error. The upstream
// diagnostic text rides along in the status message so operators can
// correlate it with backend logs.
func (t *Translator) GRPCStatusError(err error) error {
	tr := t.Translate(err)
	if tr.Data != "" && tr.Data != tr.Message {
		return status.Errorf(tr.GRPCCode, "%s: %s", tr.Message, tr.Data)
	}
	return status.Error(tr.GRPCCode, tr.Message)
}
