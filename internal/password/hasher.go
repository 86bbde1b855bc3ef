// Package password hashes and verifies user passwords.
package password

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/adamitejs/service-auth/internal/model"
)

// Supported algorithms.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// DefaultBcryptCost is the bcrypt work factor used when none is configured.
const DefaultBcryptCost = 10

// bcrypt ignores everything past this many bytes.
const maxBcryptPasswordLen = 72

// Rejected inputs wrap model.ErrInvalidArgument.
var (
	ErrEmptyPassword    = fmt.Errorf("%w: password must not be empty", model.ErrInvalidArgument)
	ErrPasswordTooLong  = fmt.Errorf("%w: password exceeds 72 bytes", model.ErrInvalidArgument)
	ErrUnknownDigest    = errors.New("unrecognised password digest")
	ErrUnknownAlgorithm = errors.New("unknown password algorithm")
)

// Options configures a Hasher.
type Options struct {
	Algorithm  string
	BcryptCost int
	Argon2     Argon2Params
	// Workers bounds concurrent hash computations. Zero means GOMAXPROCS.
	Workers int
}

var _ model.PasswordHasher = (*Hasher)(nil)

// Hasher produces salted digests with the configured algorithm and verifies
// digests produced by any supported algorithm.
type Hasher struct {
	algorithm  string
	bcryptCost int
	argon2     Argon2Params
	sem        *semaphore.Weighted
}

// NewHasher creates a Hasher. Zero options select bcrypt with DefaultBcryptCost.
func NewHasher(opts Options) (*Hasher, error) {
	if opts.Algorithm == "" {
		opts.Algorithm = AlgorithmBcrypt
	}
	if opts.Algorithm != AlgorithmBcrypt && opts.Algorithm != AlgorithmArgon2id {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, opts.Algorithm)
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = DefaultBcryptCost
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", opts.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	return &Hasher{
		algorithm:  opts.Algorithm,
		bcryptCost: opts.BcryptCost,
		argon2:     opts.Argon2.withDefaults(),
		sem:        semaphore.NewWeighted(int64(opts.Workers)),
	}, nil
}

// Algorithm returns the algorithm used for new digests.
func (h *Hasher) Algorithm() string {
	return h.algorithm
}

// Hash returns a salted digest of password.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if h.algorithm == AlgorithmBcrypt && len(password) > maxBcryptPasswordLen {
		return "", ErrPasswordTooLong
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	switch h.algorithm {
	case AlgorithmArgon2id:
		return hashArgon2id(password, h.argon2)
	default:
		digest, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(digest), nil
	}
}

// Verify reports whether password matches digest. A mismatch is not an error;
// an error means the digest could not be evaluated.
func (h *Hasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	switch {
	case strings.HasPrefix(digest, argon2idPrefix):
		return verifyArgon2id(password, digest)
	case isBcrypt(digest):
		err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare bcrypt digest: %w", err)
	default:
		return false, ErrUnknownDigest
	}
}

func isBcrypt(digest string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(digest, p) {
			return true
		}
	}
	return false
}
