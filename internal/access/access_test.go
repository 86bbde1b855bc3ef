package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adamitejs/service-auth/internal/model"
)

func TestSharedSecret_Authorize(t *testing.T) {
	gate := NewSharedSecret("s3cret")

	tests := []struct {
		name    string
		caller  model.Caller
		wantErr error
	}{
		{name: "matching secret", caller: model.Caller{AdminSecret: "s3cret"}},
		{name: "wrong secret", caller: model.Caller{AdminSecret: "s3cre"}, wantErr: model.ErrUnauthorized},
		{name: "longer secret", caller: model.Caller{AdminSecret: "s3cret!"}, wantErr: model.ErrUnauthorized},
		{name: "no secret", caller: model.Caller{Address: "10.0.0.1"}, wantErr: model.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(context.Background(), tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNew(t *testing.T) {
	assert.IsType(t, DenyAll{}, New(""))
	assert.IsType(t, &SharedSecret{}, New("x"))

	err := New("").Authorize(context.Background(), model.Caller{AdminSecret: ""})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
