package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamitejs/service-auth/internal/model"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putErr  error
	putSize int64
	putOpts minioLib.PutObjectOptions
	putBody []byte

	getObj *fakeObject
	getErr error

	removeErr error

	statErr error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, name string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = name
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, _ string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putSize = size
	f.putOpts = opts
	f.putBody, _ = io.ReadAll(r)
	return minioLib.UploadInfo{}, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (object, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getObj, nil
}

// fakeObject mimics *minio.Object: errors surface on Stat.
type fakeObject struct {
	io.Reader
	statErr error
	closed  bool
}

func (o *fakeObject) Stat() (minioLib.ObjectInfo, error) { return minioLib.ObjectInfo{}, o.statErr }
func (o *fakeObject) Close() error {
	o.closed = true
	return nil
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, _ string, _ minioLib.RemoveObjectOptions) error {
	return f.removeErr
}
func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return minioLib.ObjectInfo{}, f.statErr
}

func newTestClient(api *fakeMinio) *Client {
	return &Client{api: api, bucket: "b", contentType: "application/json"}
}

func TestNewClientWithAPI(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket exists", func(t *testing.T) {
		api := &fakeMinio{bucketExists: true}
		c, err := NewClientWithAPI(ctx, api, "b")
		require.NoError(t, err)
		assert.Equal(t, "b", c.bucket)
		assert.Empty(t, api.madeBucket)
	})

	t.Run("creates bucket", func(t *testing.T) {
		api := &fakeMinio{bucketExists: false}
		c, err := NewClientWithAPI(ctx, api, "auth")
		require.NoError(t, err)
		assert.Equal(t, "auth", c.bucket)
		assert.Equal(t, "auth", api.madeBucket)
	})

	t.Run("bucket check fails", func(t *testing.T) {
		api := &fakeMinio{bucketExistsErr: errors.New("boom")}
		c, err := NewClientWithAPI(ctx, api, "bucket")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})

	t.Run("bucket creation fails", func(t *testing.T) {
		api := &fakeMinio{bucketExists: false, makeBucketErr: errors.New("fail")}
		c, err := NewClientWithAPI(ctx, api, "bucket")
		assert.Nil(t, c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to ensure bucket exists")
	})
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("known size", func(t *testing.T) {
		api := &fakeMinio{}
		err := newTestClient(api).Upload(ctx, "k", bytes.NewReader([]byte(`{"users":[]}`)))
		require.NoError(t, err)
		assert.Equal(t, int64(12), api.putSize)
		assert.Equal(t, "application/json", api.putOpts.ContentType)
		assert.Equal(t, `{"users":[]}`, string(api.putBody))
	})

	t.Run("unknown size", func(t *testing.T) {
		api := &fakeMinio{}
		err := newTestClient(api).Upload(ctx, "k", io.NopCloser(bytes.NewReader([]byte("data"))))
		require.NoError(t, err)
		assert.Equal(t, int64(-1), api.putSize)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("put-fail")}
		err := newTestClient(api).Upload(ctx, "k", bytes.NewReader([]byte("data")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Download(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{getObj: &fakeObject{Reader: bytes.NewReader([]byte("abc"))}}
		rc, err := newTestClient(api).Download(ctx, "k")
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), body)
	})

	t.Run("missing object", func(t *testing.T) {
		obj := &fakeObject{statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}}
		rc, err := newTestClient(&fakeMinio{getObj: obj}).Download(ctx, "k")
		assert.Nil(t, rc)
		assert.ErrorIs(t, err, model.ErrObjectNotFound)
		assert.True(t, obj.closed)
	})

	t.Run("stat error", func(t *testing.T) {
		obj := &fakeObject{statErr: errors.New("stat-fail")}
		rc, err := newTestClient(&fakeMinio{getObj: obj}).Download(ctx, "k")
		assert.Nil(t, rc)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrObjectNotFound)
		assert.True(t, obj.closed)
	})

	t.Run("get error", func(t *testing.T) {
		api := &fakeMinio{getErr: errors.New("get-fail")}
		rc, err := newTestClient(api).Download(ctx, "k")
		assert.Nil(t, rc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get object")
	})
}

func TestClient_Delete(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, newTestClient(&fakeMinio{}).Delete(ctx, "k"))

	err := newTestClient(&fakeMinio{removeErr: errors.New("remove-fail")}).Delete(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete object")
}

func TestClient_Exists(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		statErr error
		want    bool
		wantErr bool
	}{
		{name: "exists", want: true},
		{name: "not found", statErr: minioLib.ErrorResponse{Code: "NoSuchKey"}},
		{name: "other error", statErr: errors.New("stat-fail"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := newTestClient(&fakeMinio{statErr: tt.statErr}).Exists(ctx, "k")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to stat object")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
