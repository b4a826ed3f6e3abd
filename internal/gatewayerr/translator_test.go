package gatewayerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/K0LbAzzeR/dapi/libs/log"
)

func TestTranslateClassification(t *testing.T) {
	tr := NewTranslator(log.NewTestingLogger(t), nil)

	testCases := []struct {
		name        string
		err         error
		wantJSONRPC int
		wantGRPC    codes.Code
		wantMessage string
	}{
		{"validation", NewValidationError("address must be a string"),
			CodeInvalidParams, codes.InvalidArgument, "Invalid params"},
		{"unknown command", &UnknownCommandError{Command: "getFoo"},
			CodeMethodNotFound, codes.Unimplemented, "Method not found"},
		{"malformed message", &MalformedMessageError{Reason: "nil wire message"},
			CodeParseError, codes.InvalidArgument, "Parse error"},
		{"quorum not ready", &QuorumNotReadyError{},
			CodeServerError, codes.Unavailable, "Server error"},
		{"upstream invalid address", &UpstreamError{Code: -5, Message: "Invalid address"},
			CodeInvalidParams, codes.InvalidArgument, "Invalid address"},
		{"upstream tx rejected", &UpstreamError{Code: -26, Message: "dust"},
			CodeServerError, codes.FailedPrecondition, "dust"},
		{"upstream already in chain", &UpstreamError{Code: -27, Message: "known"},
			CodeServerError, codes.AlreadyExists, "known"},
		{"upstream warming up", &UpstreamError{Code: -28, Message: "loading"},
			CodeServerError, codes.Unavailable, "loading"},
		{"upstream drive not found", &UpstreamError{Code: 1, Message: "no identity"},
			CodeServerError, codes.NotFound, "no identity"},
		{"upstream unmapped code", &UpstreamError{Code: 999, Message: "weird"},
			CodeServerError, codes.Unknown, "weird"},
		{"wrapped upstream", fmt.Errorf("calling node: %w", &UpstreamError{Code: -8, Message: "bad param"}),
			CodeInvalidParams, codes.InvalidArgument, "bad param"},
		{"unclassified", errors.New("boom"),
			CodeInternalError, codes.Internal, "Internal error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tr.Translate(tc.err)
			assert.Equal(t, tc.wantJSONRPC, got.JSONRPCCode)
			assert.Equal(t, tc.wantGRPC, got.GRPCCode)
			assert.Equal(t, tc.wantMessage, got.Message)
		})
	}
}

func TestTranslateDeterministic(t *testing.T) {
	tr := NewTranslator(log.NewTestingLogger(t), nil)
	err := &UpstreamError{Code: -26, Message: "tx rejected", Data: "dust output"}

	first := tr.Translate(err)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tr.Translate(&UpstreamError{Code: -26, Message: "tx rejected", Data: "dust output"}))
	}
}

func TestTranslateOverride(t *testing.T) {
	overrides := map[int]Override{
		// A full node reports an unknown transaction as -5; surface it as
		// a not-found instead of an invalid argument.
		-5: func(up *UpstreamError) error {
			return &UpstreamError{Code: 1, Message: up.Message, Data: up.Data}
		},
	}
	tr := NewTranslator(log.NewTestingLogger(t), overrides)

	got := tr.Translate(&UpstreamError{Code: -5, Message: "No such mempool transaction"})
	assert.Equal(t, CodeServerError, got.JSONRPCCode)
	assert.Equal(t, codes.NotFound, got.GRPCCode)
	assert.Equal(t, "No such mempool transaction", got.Message)
}

func TestTranslateOverrideFallThrough(t *testing.T) {
	overrides := map[int]Override{
		-5: func(up *UpstreamError) error { return nil },
	}
	tr := NewTranslator(log.NewTestingLogger(t), overrides)

	got := tr.Translate(&UpstreamError{Code: -5, Message: "Invalid address"})
	assert.Equal(t, CodeInvalidParams, got.JSONRPCCode)
	assert.Equal(t, codes.InvalidArgument, got.GRPCCode)
}

func TestTranslateOverrideNotReentered(t *testing.T) {
	calls := map[int]int{}
	overrides := map[int]Override{
		-5: func(up *UpstreamError) error {
			calls[-5]++
			return &UpstreamError{Code: 2, Message: up.Message}
		},
		// Must never run: a re-raised upstream error takes the default
		// mapping directly.
		2: func(up *UpstreamError) error {
			calls[2]++
			return &UpstreamError{Code: -5, Message: up.Message}
		},
	}
	tr := NewTranslator(log.NewTestingLogger(t), overrides)

	got := tr.Translate(&UpstreamError{Code: -5, Message: "looping?"})
	assert.Equal(t, codes.InvalidArgument, got.GRPCCode)
	assert.Equal(t, 1, calls[-5])
	assert.Equal(t, 0, calls[2])
}

func TestGRPCStatusError(t *testing.T) {
	tr := NewTranslator(log.NewTestingLogger(t), nil)

	err := tr.GRPCStatusError(NewValidationError("height must be at least 0"))
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Contains(t, st.Message(), "height must be at least 0")
}
