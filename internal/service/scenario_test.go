package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/adamitejs/service-auth/internal/access"
	"github.com/adamitejs/service-auth/internal/model"
	"github.com/adamitejs/service-auth/internal/password"
	"github.com/adamitejs/service-auth/internal/repository/document"
	"github.com/adamitejs/service-auth/internal/storage/memory"
	"github.com/adamitejs/service-auth/internal/testutil"
	"github.com/adamitejs/service-auth/internal/token"
)

func newRealAuth(t *testing.T) (*Auth, *token.JWT) {
	t.Helper()
	hasher, err := password.NewHasher(password.Options{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	tokens := token.NewJWT("test-secret", time.Hour)
	store := document.New(memory.New(), "")
	return NewAuth(store, hasher, tokens, access.New("s3cret"), testutil.MakeNoopLogger()), tokens
}

func TestAuth_Scenario(t *testing.T) {
	ctx := context.Background()
	a, tokens := newRealAuth(t)
	caller := model.Caller{Address: "127.0.0.1"}

	tok, err := a.Register(ctx, model.RegisterParams{Email: "alice@example.com", Password: "pw123", Caller: caller})
	require.NoError(t, err)

	claims, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	userID := claims.SubjectID.String()

	_, err = a.Register(ctx, model.RegisterParams{Email: "alice@example.com", Password: "other"})
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)

	loginTok, err := a.Login(ctx, model.LoginParams{Email: "alice@example.com", Password: "pw123", Caller: model.Caller{Address: "10.9.8.7"}})
	require.NoError(t, err)
	loginClaims, err := a.ValidateToken(ctx, loginTok)
	require.NoError(t, err)
	assert.Equal(t, claims.SubjectID, loginClaims.SubjectID)

	info, err := a.GetUser(ctx, admin, userID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, int64(2), info.LoginCount)
	assert.Equal(t, "10.9.8.7", info.LastLoginIP)

	_, err = a.Login(ctx, model.LoginParams{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, err = a.Login(ctx, model.LoginParams{Email: "bob@example.com", Password: "pw123"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	// failed logins leave the counter alone
	info, err = a.GetUser(ctx, admin, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.LoginCount)

	require.NoError(t, a.SetUserDisabled(ctx, admin, userID, true))
	_, err = a.Login(ctx, model.LoginParams{Email: "alice@example.com", Password: "pw123"})
	assert.ErrorIs(t, err, model.ErrUserDisabled)

	require.NoError(t, a.SetUserDisabled(ctx, admin, userID, false))
	require.NoError(t, a.SetUserPassword(ctx, admin, userID, "newpw"))
	_, err = a.Login(ctx, model.LoginParams{Email: "alice@example.com", Password: "pw123"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	_, err = a.Login(ctx, model.LoginParams{Email: "alice@example.com", Password: "newpw"})
	require.NoError(t, err)

	require.NoError(t, a.SetUserEmail(ctx, admin, userID, "alice2@example.com"))
	_, err = a.Login(ctx, model.LoginParams{Email: "alice2@example.com", Password: "newpw"})
	require.NoError(t, err)

	_, err = a.Register(ctx, model.RegisterParams{Email: "carol@example.com", Password: "pw", BypassLogin: true})
	require.NoError(t, err)
	assert.ErrorIs(t, a.SetUserEmail(ctx, admin, userID, "carol@example.com"), model.ErrEmailAlreadyExists)

	users, err := a.ListUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(0), users[1].LoginCount)

	require.NoError(t, a.DeleteUser(ctx, admin, userID))
	assert.ErrorIs(t, a.DeleteUser(ctx, admin, userID), model.ErrNotFound)
	_, err = a.Login(ctx, model.LoginParams{Email: "alice2@example.com", Password: "newpw"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	// id and email are reusable
	_, err = a.Register(ctx, model.RegisterParams{Email: "alice2@example.com", Password: "pw"})
	require.NoError(t, err)
}

func TestAuth_ConcurrentLogins(t *testing.T) {
	ctx := context.Background()
	a, tokens := newRealAuth(t)

	tok, err := a.Register(ctx, model.RegisterParams{Email: "busy@example.com", Password: "pw", BypassLogin: true})
	require.NoError(t, err)
	claims, err := tokens.Verify(tok)
	require.NoError(t, err)

	const n = 10
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Login(ctx, model.LoginParams{Email: "busy@example.com", Password: "pw"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	info, err := a.GetUser(ctx, admin, claims.SubjectID.String())
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, int64(n), info.LoginCount)
}

func TestAuth_ConcurrentRegistrations(t *testing.T) {
	ctx := context.Background()
	a, _ := newRealAuth(t)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Register(ctx, model.RegisterParams{Email: "same@example.com", Password: "pw"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
			rejected++
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, rejected)
}

func TestAuth_DenyAllWithoutSecret(t *testing.T) {
	hasher, err := password.NewHasher(password.Options{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	a := NewAuth(document.New(memory.New(), ""), hasher, token.NewJWT("k", 0), access.New(""), testutil.MakeNoopLogger())

	_, err = a.ListUsers(context.Background(), model.Caller{AdminSecret: ""})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
	_, err = a.ListUsers(context.Background(), model.Caller{AdminSecret: "anything"})
	assert.ErrorIs(t, err, model.ErrUnauthorized)
}
