// Package authpb declares the auth.Auth and auth.Admin gRPC services. Every
// method takes and returns a google.protobuf.Struct, so the descriptors are
// written by hand instead of generated; api/proto/auth.proto documents them.
package authpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Full method names.
const (
	Auth_LoginWithEmailAndPassword_FullMethodName = "/auth.Auth/LoginWithEmailAndPassword"
	Auth_CreateUser_FullMethodName                = "/auth.Auth/CreateUser"
	Auth_ValidateToken_FullMethodName             = "/auth.Auth/ValidateToken"

	Admin_GetUsers_FullMethodName        = "/auth.Admin/GetUsers"
	Admin_GetUserInfo_FullMethodName     = "/auth.Admin/GetUserInfo"
	Admin_SetUserEmail_FullMethodName    = "/auth.Admin/SetUserEmail"
	Admin_SetUserPassword_FullMethodName = "/auth.Admin/SetUserPassword"
	Admin_SetUserDisabled_FullMethodName = "/auth.Admin/SetUserDisabled"
	Admin_DeleteUser_FullMethodName      = "/auth.Admin/DeleteUser"
)

// AdminServicePrefix prefixes every auth.Admin full method name.
const AdminServicePrefix = "/auth.Admin/"

// AuthServer is the server API for the auth.Auth service.
type AuthServer interface {
	LoginWithEmailAndPassword(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// AdminServer is the server API for the auth.Admin service.
type AdminServer interface {
	GetUsers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetUserInfo(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetUserEmail(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetUserPassword(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetUserDisabled(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteUser(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func unaryHandler[S any](
	fullMethod string,
	call func(srv S, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Auth_ServiceDesc is the grpc.ServiceDesc for the auth.Auth service.
var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "auth.Auth",
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "LoginWithEmailAndPassword",
			Handler:    unaryHandler(Auth_LoginWithEmailAndPassword_FullMethodName, AuthServer.LoginWithEmailAndPassword),
		},
		{
			MethodName: "CreateUser",
			Handler:    unaryHandler(Auth_CreateUser_FullMethodName, AuthServer.CreateUser),
		},
		{
			MethodName: "ValidateToken",
			Handler:    unaryHandler(Auth_ValidateToken_FullMethodName, AuthServer.ValidateToken),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/auth.proto",
}

// Admin_ServiceDesc is the grpc.ServiceDesc for the auth.Admin service.
var Admin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "auth.Admin",
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetUsers",
			Handler:    unaryHandler(Admin_GetUsers_FullMethodName, AdminServer.GetUsers),
		},
		{
			MethodName: "GetUserInfo",
			Handler:    unaryHandler(Admin_GetUserInfo_FullMethodName, AdminServer.GetUserInfo),
		},
		{
			MethodName: "SetUserEmail",
			Handler:    unaryHandler(Admin_SetUserEmail_FullMethodName, AdminServer.SetUserEmail),
		},
		{
			MethodName: "SetUserPassword",
			Handler:    unaryHandler(Admin_SetUserPassword_FullMethodName, AdminServer.SetUserPassword),
		},
		{
			MethodName: "SetUserDisabled",
			Handler:    unaryHandler(Admin_SetUserDisabled_FullMethodName, AdminServer.SetUserDisabled),
		},
		{
			MethodName: "DeleteUser",
			Handler:    unaryHandler(Admin_DeleteUser_FullMethodName, AdminServer.DeleteUser),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/auth.proto",
}

// RegisterAuthServer registers srv as the auth.Auth implementation.
func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

// RegisterAdminServer registers srv as the auth.Admin implementation.
func RegisterAdminServer(s grpc.ServiceRegistrar, srv AdminServer) {
	s.RegisterService(&Admin_ServiceDesc, srv)
}
