package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/adamitejs/service-auth/internal/model"
)

func (a *Auth) authorize(ctx context.Context, caller model.Caller, operation string) error {
	if err := a.gate.Authorize(ctx, caller); err != nil {
		a.logger.Warn("Auth service: admin call rejected",
			"operation", operation,
			"address", caller.Address)
		return err
	}
	return nil
}

// ListUsers returns every user without password hashes.
func (a *Auth) ListUsers(ctx context.Context, caller model.Caller) ([]model.UserInfo, error) {
	if err := a.authorize(ctx, caller, "list users"); err != nil {
		return nil, err
	}

	users, err := a.userStore.List(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to list users",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	infos := make([]model.UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, u.Info())
	}

	return infos, nil
}

// GetUser returns one user, or nil when no user has userID.
func (a *Auth) GetUser(ctx context.Context, caller model.Caller, userID string) (*model.UserInfo, error) {
	if err := a.authorize(ctx, caller, "get user"); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}

	user, err := a.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	info := user.Info()
	return &info, nil
}

// SetUserEmail changes a user's email. The new email must not belong to
// another user.
func (a *Auth) SetUserEmail(ctx context.Context, caller model.Caller, userID, email string) error {
	return a.update(ctx, caller, "set user email", userID, model.UserUpdate{Email: &email})
}

// SetUserPassword replaces a user's password.
func (a *Auth) SetUserPassword(ctx context.Context, caller model.Caller, userID, password string) error {
	if err := a.authorize(ctx, caller, "set user password"); err != nil {
		return err
	}

	digest, err := a.hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidArgument) {
			return err
		}
		a.logger.Error("Auth service: failed to hash password",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return a.apply(ctx, "set user password", userID, model.UserUpdate{PasswordHash: &digest})
}

// SetUserDisabled enables or disables a user.
func (a *Auth) SetUserDisabled(ctx context.Context, caller model.Caller, userID string, disabled bool) error {
	return a.update(ctx, caller, "set user disabled", userID, model.UserUpdate{Disabled: &disabled})
}

// DeleteUser permanently removes a user.
func (a *Auth) DeleteUser(ctx context.Context, caller model.Caller, userID string) error {
	if err := a.authorize(ctx, caller, "delete user"); err != nil {
		return err
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return model.ErrNotFound
	}

	unlock := a.locks.Lock(id.String())
	defer unlock()

	err = a.userStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to delete user",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	a.logger.Info("Auth service: user deleted",
		"user_id", userID)

	return nil
}

func (a *Auth) update(ctx context.Context, caller model.Caller, operation, userID string, update model.UserUpdate) error {
	if err := a.authorize(ctx, caller, operation); err != nil {
		return err
	}
	return a.apply(ctx, operation, userID, update)
}

// apply writes update to userID under the user's lock.
func (a *Auth) apply(ctx context.Context, operation, userID string, update model.UserUpdate) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return model.ErrNotFound
	}

	unlock := a.locks.Lock(id.String())
	defer unlock()

	_, err = a.userStore.Update(ctx, id, update)
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrEmailAlreadyExists) {
		return err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to update user",
			"operation", operation,
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("failed to update user: %w", err)
	}

	a.logger.Info("Auth service: user updated",
		"operation", operation,
		"user_id", userID)

	return nil
}
