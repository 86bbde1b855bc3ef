package command

import (
	"context"

	"github.com/adamitejs/service-auth/internal/model"
)

// Command names.
const (
	LoginWithEmailAndPassword = "auth.loginWithEmailAndPassword"
	CreateUser                = "auth.createUser"
	ValidateToken             = "auth.validateToken"
	AdminGetUsers             = "auth.admin.getUsers"
	AdminGetUserInfo          = "auth.admin.getUserInfo"
	AdminSetUserEmail         = "auth.admin.setUserEmail"
	AdminSetUserPassword      = "auth.admin.setUserPassword"
	AdminSetUserDisabled      = "auth.admin.setUserDisabled"
	AdminDeleteUser           = "auth.admin.deleteUser"
)

// AuthService is the service surface exposed as commands.
type AuthService interface {
	Login(ctx context.Context, params model.LoginParams) (string, error)
	Register(ctx context.Context, params model.RegisterParams) (string, error)
	ValidateToken(ctx context.Context, token string) (model.Claims, error)
	ListUsers(ctx context.Context, caller model.Caller) ([]model.UserInfo, error)
	GetUser(ctx context.Context, caller model.Caller, userID string) (*model.UserInfo, error)
	SetUserEmail(ctx context.Context, caller model.Caller, userID, email string) error
	SetUserPassword(ctx context.Context, caller model.Caller, userID, password string) error
	SetUserDisabled(ctx context.Context, caller model.Caller, userID string, disabled bool) error
	DeleteUser(ctx context.Context, caller model.Caller, userID string) error
}

// RegisterAuth binds every auth command to svc. Admin commands are checked
// against gate before their arguments are decoded.
func RegisterAuth(d *Dispatcher, svc AuthService, gate model.AccessGate) {
	d.Register(LoginWithEmailAndPassword, func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		var p loginPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		token, err := svc.Login(ctx, model.LoginParams{Email: p.Email, Password: p.Password, Caller: caller})
		if err != nil {
			return nil, err
		}
		return Result{"token": token}, nil
	})

	d.Register(CreateUser, func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		var p createUserPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		token, err := svc.Register(ctx, model.RegisterParams{
			Email:       p.Email,
			Password:    p.Password,
			BypassLogin: p.BypassLogin,
			Caller:      caller,
		})
		if err != nil {
			return nil, err
		}
		return Result{"token": token}, nil
	})

	d.Register(ValidateToken, func(ctx context.Context, _ model.Caller, args Args) (Result, error) {
		var p tokenPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		claims, err := svc.ValidateToken(ctx, p.Token)
		if err != nil {
			return nil, err
		}
		return Result{"data": claimsPayload(claims)}, nil
	})

	d.Register(AdminGetUsers, adminOnly(gate, func(ctx context.Context, caller model.Caller, _ Args) (Result, error) {
		users, err := svc.ListUsers(ctx, caller)
		if err != nil {
			return nil, err
		}
		list := make([]any, 0, len(users))
		for _, u := range users {
			list = append(list, userInfoPayload(u))
		}
		return Result{"users": list}, nil
	}))

	d.Register(AdminGetUserInfo, adminOnly(gate, func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		var p userPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		info, err := svc.GetUser(ctx, caller, p.UserID)
		if err != nil {
			return nil, err
		}
		if info == nil {
			return Result{"userInfo": nil}, nil
		}
		return Result{"userInfo": userInfoPayload(*info)}, nil
	}))

	d.Register(AdminSetUserEmail, adminOnly(gate, func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		var p setEmailPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		return mutation(svc.SetUserEmail(ctx, caller, p.UserID, p.Email))
	}))

	d.Register(AdminSetUserPassword, adminOnly(gate, func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		var p setPasswordPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		return mutation(svc.SetUserPassword(ctx, caller, p.UserID, p.Password))
	}))

	d.Register(AdminSetUserDisabled, adminOnly(gate, func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		var p setDisabledPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		return mutation(svc.SetUserDisabled(ctx, caller, p.UserID, *p.Disabled))
	}))

	d.Register(AdminDeleteUser, adminOnly(gate, func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		var p userPayload
		if err := bind(args, &p); err != nil {
			return nil, err
		}
		return mutation(svc.DeleteUser(ctx, caller, p.UserID))
	}))
}

func adminOnly(gate model.AccessGate, h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, caller model.Caller, args Args) (Result, error) {
		if err := gate.Authorize(ctx, caller); err != nil {
			return nil, err
		}
		return h(ctx, caller, args)
	}
}

func mutation(err error) (Result, error) {
	if err != nil {
		return nil, err
	}
	return Result{"error": false}, nil
}

func claimsPayload(c model.Claims) map[string]any {
	return map[string]any{
		"sub":   c.SubjectID.String(),
		"email": c.Email,
		"iat":   c.IssuedAt.Unix(),
		"exp":   c.ExpiresAt.Unix(),
	}
}

// userInfoPayload renders timestamps as Unix milliseconds.
func userInfoPayload(u model.UserInfo) map[string]any {
	return map[string]any{
		"id":          u.ID.String(),
		"email":       u.Email,
		"createdAt":   u.CreatedAt.UnixMilli(),
		"lastLoginAt": u.LastLoginAt.UnixMilli(),
		"lastLoginIP": u.LastLoginIP,
		"loginCount":  u.LoginCount,
		"disabled":    u.Disabled,
	}
}
