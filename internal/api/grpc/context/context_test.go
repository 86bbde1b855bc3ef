package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"

	"github.com/adamitejs/service-auth/internal/model"
)

func TestManager_SetAndGetCaller(t *testing.T) {
	m := NewManager()
	caller := model.Caller{Address: "10.0.0.1", AdminSecret: "s3cret"}
	ctx := m.SetCallerToContext(stdctx.Background(), caller)

	got, ok := m.GetCallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, caller, got)
}

func TestManager_GetCaller_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetCallerFromContext(stdctx.Background())
	assert.False(t, ok)

	ctx := metadata.NewIncomingContext(stdctx.Background(), metadata.Pairs("x-trace-id", "t"))
	_, ok = m.GetCallerFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetCaller_OverridesClientValues(t *testing.T) {
	m := NewManager()
	baseMD := metadata.Pairs(
		"x-trace-id", "t",
		CallerAddressKey, "1.1.1.1",
		AdminSecretKey, "forged",
	)
	base := metadata.NewIncomingContext(stdctx.Background(), baseMD)

	ctx := m.SetCallerToContext(base, model.Caller{Address: "10.0.0.1"})

	got, ok := m.GetCallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, model.Caller{Address: "10.0.0.1"}, got)

	md, _ := metadata.FromIncomingContext(ctx)
	assert.Equal(t, []string{"t"}, md.Get("x-trace-id"))

	// The original context's metadata is left untouched.
	assert.Equal(t, []string{"forged"}, baseMD.Get(AdminSecretKey))
}

func TestAdminSecretFromMetadata(t *testing.T) {
	assert.Equal(t, "", AdminSecretFromMetadata(metadata.MD{}))
	assert.Equal(t, "a", AdminSecretFromMetadata(metadata.Pairs(AdminSecretKey, "a", AdminSecretKey, "b")))
}
