package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adamitejs/service-auth/internal/mocks"
	"github.com/adamitejs/service-auth/internal/model"
	"github.com/adamitejs/service-auth/internal/testutil"
)

func TestAuthenticate_AuthFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		caller       model.Caller
		found        bool
		gateErr      error
		expectGate   bool
		wantGRPCCode codes.Code
	}{
		{
			name:         "no caller in context",
			found:        false,
			wantGRPCCode: codes.PermissionDenied,
		},
		{
			name:         "missing secret",
			caller:       model.Caller{Address: "10.0.0.1"},
			found:        true,
			wantGRPCCode: codes.PermissionDenied,
		},
		{
			name:         "rejected secret",
			caller:       model.Caller{Address: "10.0.0.1", AdminSecret: "wrong"},
			found:        true,
			gateErr:      model.ErrUnauthorized,
			expectGate:   true,
			wantGRPCCode: codes.PermissionDenied,
		},
		{
			name:         "accepted secret",
			caller:       model.Caller{Address: "10.0.0.1", AdminSecret: "s3cret"},
			found:        true,
			expectGate:   true,
			wantGRPCCode: codes.OK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := mocks.NewContextManager(t)
			cm.On("GetCallerFromContext", mock.Anything).Return(tt.caller, tt.found)

			gate := mocks.NewAccessGate(t)
			if tt.expectGate {
				gate.On("Authorize", mock.Anything, tt.caller).Return(tt.gateErr)
			}

			m := NewAuthenticate(gate, cm, testutil.MakeNoopLogger())
			ctx, err := m.AuthFunc(context.Background())

			if tt.wantGRPCCode == codes.OK {
				assert.NoError(t, err)
				assert.NotNil(t, ctx)
				return
			}

			assert.Nil(t, ctx)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantGRPCCode, st.Code())
			assert.Equal(t, model.ErrUnauthorized.Error(), st.Message())
		})
	}
}
