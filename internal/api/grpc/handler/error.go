package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/adamitejs/service-auth/internal/api/command"
	"github.com/adamitejs/service-auth/internal/model"
)

// statusCodes maps failure kinds to the code reported to clients. Unless
// detailed is set, the sentinel's own message is sent and the wrapped chain
// stays in the server log.
var statusCodes = []struct {
	err      error
	code     codes.Code
	detailed bool
}{
	{model.ErrInvalidArgument, codes.InvalidArgument, true},
	{command.ErrUnknownCommand, codes.Unimplemented, true},
	{model.ErrInvalidCredentials, codes.Unauthenticated, false},
	{model.ErrTokenInvalid, codes.Unauthenticated, false},
	{model.ErrUserDisabled, codes.PermissionDenied, false},
	{model.ErrUnauthorized, codes.PermissionDenied, false},
	{model.ErrEmailAlreadyExists, codes.AlreadyExists, false},
	{model.ErrNotFound, codes.NotFound, false},
}

func handleError(err error) error {
	for _, sc := range statusCodes {
		if !errors.Is(err, sc.err) {
			continue
		}
		if sc.detailed {
			return status.Error(sc.code, err.Error())
		}
		return status.Error(sc.code, sc.err.Error())
	}

	return status.Error(codes.Internal, "internal server error")
}
