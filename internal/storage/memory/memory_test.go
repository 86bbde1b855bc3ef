package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamitejs/service-auth/internal/model"
)

func TestStorage(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Download(ctx, "k")
	assert.ErrorIs(t, err, model.ErrObjectNotFound)

	buf := []byte("data")
	require.NoError(t, s.Upload(ctx, "k", bytes.NewReader(buf)))
	// the stored copy is independent of the caller's buffer
	buf[0] = 'X'

	rc, err := s.Download(ctx, "k")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	ok, err := s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, "k"))
	ok, err = s.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
