package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamitejs/service-auth/internal/model"
)

func TestStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := New(filepath.Join(root, "data"))
	require.NoError(t, err)

	ok, err := s.Exists(ctx, "auth.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Download(ctx, "auth.json")
	assert.ErrorIs(t, err, model.ErrObjectNotFound)

	require.NoError(t, s.Upload(ctx, "auth.json", strings.NewReader("v1")))
	require.NoError(t, s.Upload(ctx, "auth.json", strings.NewReader("v2")))

	ok, err = s.Exists(ctx, "auth.json")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Download(ctx, "auth.json")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "v2", string(body))

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Join(root, "data"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, s.Delete(ctx, "auth.json"))
	require.NoError(t, s.Delete(ctx, "auth.json"))

	ok, err = s.Exists(ctx, "auth.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_NestedKey(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Upload(ctx, "tenants/a/auth.json", strings.NewReader("{}")))

	ok, err := s.Exists(ctx, "tenants/a/auth.json")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorage_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".", "..", "../outside.json", "/etc/passwd"} {
		err := s.Upload(ctx, key, strings.NewReader("x"))
		assert.Error(t, err, key)
	}
}

func TestStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Upload(ctx, "k", strings.NewReader("x")), context.Canceled)
	_, err = s.Download(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
