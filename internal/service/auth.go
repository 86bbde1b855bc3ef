package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/model"
)

// dummyPassword is hashed once to give unknown-email logins a digest to
// compare against.
const dummyPassword = "timing-equalization-placeholder"

// Auth implements login, registration, token validation and user
// administration on top of a UserStore.
type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	tokens    model.TokenManager
	gate      model.AccessGate
	logger    *logger.Logger
	locks     *keyLock
	now       func() time.Time

	dummyMu     sync.Mutex
	dummyDigest string
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	gate model.AccessGate,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokenManager,
		gate:      gate,
		logger:    logger,
		locks:     newKeyLock(),
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Millisecond)
		},
	}
}

// Login checks email and password and returns a fresh token. Unknown emails
// and wrong passwords fail identically with model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, params model.LoginParams) (string, error) {
	a.logger.Debug("Auth service: starting login",
		"email", params.Email,
		"address", params.Caller.Address)

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		a.verifyDummy(ctx, params.Password)
		a.logger.Info("Auth service: login rejected",
			"email", params.Email,
			"reason", "unknown email")
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.Disabled {
		a.logger.Info("Auth service: login rejected",
			"user_id", user.ID,
			"reason", "disabled")
		return "", model.ErrUserDisabled
	}

	ok, err := a.hasher.Verify(ctx, params.Password, user.PasswordHash)
	if err != nil {
		a.logger.Error("Auth service: failed to verify password",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		a.logger.Info("Auth service: login rejected",
			"user_id", user.ID,
			"reason", "wrong password")
		return "", model.ErrInvalidCredentials
	}

	unlock := a.locks.Lock(user.ID.String())
	now := a.now()
	address := params.Caller.Address
	updated, err := a.userStore.Update(ctx, user.ID, model.UserUpdate{
		LastLoginAt:         &now,
		LastLoginIP:         &address,
		IncrementLoginCount: true,
	})
	unlock()
	if errors.Is(err, model.ErrNotFound) {
		// deleted between lookup and bookkeeping
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to record login",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to record login: %w", err)
	}

	token, err := a.issue(updated)
	if err != nil {
		return "", err
	}

	a.logger.Info("Auth service: login succeeded",
		"user_id", updated.ID,
		"login_count", updated.LoginCount)

	return token, nil
}

// Register creates an account and returns a token for it. The new account
// counts as logged in once unless BypassLogin is set.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (string, error) {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if strings.TrimSpace(params.Email) == "" {
		return "", fmt.Errorf("%w: email is required", model.ErrInvalidArgument)
	}

	unlock := a.locks.Lock("email:" + params.Email)
	defer unlock()

	_, err := a.userStore.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: user already exists",
			"email", params.Email)
		return "", model.ErrEmailAlreadyExists
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	digest, err := a.hasher.Hash(ctx, params.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidArgument) {
			return "", err
		}
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	var loginCount int64 = 1
	if params.BypassLogin {
		loginCount = 0
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: digest,
		CreatedAt:    now,
		LastLoginAt:  now,
		LastLoginIP:  params.Caller.Address,
		LoginCount:   loginCount,
	})
	if errors.Is(err, model.ErrEmailAlreadyExists) {
		return "", err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := a.issue(user)
	if err != nil {
		return "", err
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"user_id", user.ID,
		"bypass_login", params.BypassLogin)

	return token, nil
}

// ValidateToken returns the claims of a valid token. Every failure is
// reported as model.ErrTokenInvalid.
func (a *Auth) ValidateToken(ctx context.Context, token string) (model.Claims, error) {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		a.logger.Debug("Auth service: token rejected",
			"error", err.Error())
		return model.Claims{}, model.ErrTokenInvalid
	}

	return claims, nil
}

// Ping reports whether the user store is reachable.
func (a *Auth) Ping(ctx context.Context) error {
	return a.userStore.Ping(ctx)
}

func (a *Auth) issue(user model.User) (string, error) {
	token, err := a.tokens.Issue(model.Claims{
		SubjectID: user.ID,
		Email:     user.Email,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// verifyDummy spends roughly the time of a real password check.
func (a *Auth) verifyDummy(ctx context.Context, password string) {
	digest, ok := a.dummy(ctx)
	if !ok {
		return
	}
	_, _ = a.hasher.Verify(ctx, password, digest)
}

// dummy returns the placeholder digest, building it on first success. The
// build ignores the request's cancellation so one aborted login cannot leave
// the digest unset.
func (a *Auth) dummy(ctx context.Context) (string, bool) {
	a.dummyMu.Lock()
	defer a.dummyMu.Unlock()

	if a.dummyDigest != "" {
		return a.dummyDigest, true
	}

	digest, err := a.hasher.Hash(context.WithoutCancel(ctx), dummyPassword)
	if err != nil {
		a.logger.Warn("Auth service: failed to prepare dummy digest",
			"error", err.Error())
		return "", false
	}
	a.dummyDigest = digest
	return digest, true
}
