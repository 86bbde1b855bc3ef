// Package document keeps the whole user collection as one JSON document in a
// blob store and rewrites it on every change.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adamitejs/service-auth/internal/model"
)

// DefaultKey is the object name used when none is configured.
const DefaultKey = "auth.json"

type document struct {
	Users []userRecord `json:"users"`
}

type userRecord struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CreatedAt   int64  `json:"createdAt"`
	LastLoginAt int64  `json:"lastLoginAt"`
	LastLoginIP string `json:"lastLoginIP"`
	LoginCount  int64  `json:"loginCount"`
	Disabled    bool   `json:"disabled"`
}

func toRecord(u model.User) userRecord {
	return userRecord{
		ID:          u.ID.String(),
		Email:       u.Email,
		Password:    u.PasswordHash,
		CreatedAt:   u.CreatedAt.UTC().UnixMilli(),
		LastLoginAt: u.LastLoginAt.UTC().UnixMilli(),
		LastLoginIP: u.LastLoginIP,
		LoginCount:  u.LoginCount,
		Disabled:    u.Disabled,
	}
}

func fromRecord(r userRecord) (model.User, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("invalid user id %q: %w", r.ID, err)
	}
	return model.User{
		ID:           id,
		Email:        r.Email,
		PasswordHash: r.Password,
		CreatedAt:    time.UnixMilli(r.CreatedAt).UTC(),
		LastLoginAt:  time.UnixMilli(r.LastLoginAt).UTC(),
		LastLoginIP:  r.LastLoginIP,
		LoginCount:   r.LoginCount,
		Disabled:     r.Disabled,
	}, nil
}

var _ model.UserStore = (*Store)(nil)

// Store is a UserStore over a single document. Writes are serialized and
// only become visible to readers once the new document has been uploaded.
type Store struct {
	storage model.Storage
	key     string

	mu     sync.RWMutex
	loaded bool
	users  []model.User
}

// New creates a Store persisting to key in storage.
func New(storage model.Storage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		storage: storage,
		key:     key,
	}
}

// Load reads the document into memory. It is called lazily by every
// operation and may be called at startup to fail fast on a corrupt document.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	rc, err := s.storage.Download(ctx, s.key)
	if errors.Is(err, model.ErrObjectNotFound) {
		s.users = nil
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to download user document: %w", err)
	}
	defer rc.Close()

	var doc document
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode user document: %w", err)
	}

	users := make([]model.User, 0, len(doc.Users))
	for _, r := range doc.Users {
		u, err := fromRecord(r)
		if err != nil {
			return fmt.Errorf("failed to decode user document: %w", err)
		}
		users = append(users, u)
	}

	s.users = users
	s.loaded = true
	return nil
}

// snapshot returns the committed users. The slice must not be modified.
func (s *Store) snapshot(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	if s.loaded {
		users := s.users
		s.mu.RUnlock()
		return users, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s.users, nil
}

// commitLocked persists users and then publishes them to readers.
func (s *Store) commitLocked(ctx context.Context, users []model.User) error {
	doc := document{Users: make([]userRecord, 0, len(users))}
	for _, u := range users {
		doc.Users = append(doc.Users, toRecord(u))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user document: %w", err)
	}
	if err := s.storage.Upload(ctx, s.key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload user document: %w", err)
	}

	s.users = users
	return nil
}

func indexByID(users []model.User, id uuid.UUID) int {
	return slices.IndexFunc(users, func(u model.User) bool { return u.ID == id })
}

func indexByEmail(users []model.User, email string) int {
	return slices.IndexFunc(users, func(u model.User) bool { return u.Email == email })
}

func (s *Store) GetByEmail(ctx context.Context, email string) (model.User, error) {
	users, err := s.snapshot(ctx)
	if err != nil {
		return model.User{}, err
	}
	i := indexByEmail(users, email)
	if i < 0 {
		return model.User{}, model.ErrNotFound
	}
	return users[i], nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	users, err := s.snapshot(ctx)
	if err != nil {
		return model.User{}, err
	}
	i := indexByID(users, id)
	if i < 0 {
		return model.User{}, model.ErrNotFound
	}
	return users[i], nil
}

func (s *Store) Create(ctx context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return model.User{}, err
	}
	if indexByEmail(s.users, user.Email) >= 0 {
		return model.User{}, model.ErrEmailAlreadyExists
	}
	if indexByID(s.users, user.ID) >= 0 {
		return model.User{}, fmt.Errorf("failed to create user: duplicate id %s", user.ID)
	}

	user.CreatedAt = user.CreatedAt.UTC().Truncate(time.Millisecond)
	user.LastLoginAt = user.LastLoginAt.UTC().Truncate(time.Millisecond)

	next := append(slices.Clip(s.users), user)
	if err := s.commitLocked(ctx, next); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *Store) Update(ctx context.Context, id uuid.UUID, update model.UserUpdate) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return model.User{}, err
	}
	i := indexByID(s.users, id)
	if i < 0 {
		return model.User{}, model.ErrNotFound
	}
	if update.Email != nil {
		if j := indexByEmail(s.users, *update.Email); j >= 0 && j != i {
			return model.User{}, model.ErrEmailAlreadyExists
		}
	}

	user := s.users[i]
	update.Apply(&user)
	user.LastLoginAt = user.LastLoginAt.UTC().Truncate(time.Millisecond)

	next := slices.Clone(s.users)
	next[i] = user
	if err := s.commitLocked(ctx, next); err != nil {
		return model.User{}, err
	}

	return user, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return err
	}
	i := indexByID(s.users, id)
	if i < 0 {
		return model.ErrNotFound
	}

	next := slices.Delete(slices.Clone(s.users), i, i+1)
	return s.commitLocked(ctx, next)
}

func (s *Store) List(ctx context.Context) ([]model.User, error) {
	users, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(users)
	if sorted == nil {
		sorted = make([]model.User, 0)
	}
	slices.SortStableFunc(sorted, func(a, b model.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return sorted, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.storage.Exists(ctx, s.key); err != nil {
		return fmt.Errorf("failed to reach document storage: %w", err)
	}
	return nil
}
