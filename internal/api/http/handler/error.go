package handler

import (
	"errors"
	"net/http"

	"github.com/adamitejs/service-auth/internal/api/command"
	"github.com/adamitejs/service-auth/internal/model"
)

// statusCodes maps failure kinds to HTTP statuses. Unless detailed is set,
// the sentinel's own message is sent and the wrapped chain stays in the log.
var statusCodes = []struct {
	err      error
	code     int
	detailed bool
}{
	{model.ErrInvalidArgument, http.StatusBadRequest, true},
	{command.ErrUnknownCommand, http.StatusNotFound, true},
	{model.ErrInvalidCredentials, http.StatusUnauthorized, false},
	{model.ErrTokenInvalid, http.StatusUnauthorized, false},
	{model.ErrUserDisabled, http.StatusForbidden, false},
	{model.ErrUnauthorized, http.StatusForbidden, false},
	{model.ErrEmailAlreadyExists, http.StatusConflict, false},
	{model.ErrNotFound, http.StatusNotFound, false},
}

// statusFor returns the HTTP status and client message for err.
func statusFor(err error) (int, string) {
	for _, sc := range statusCodes {
		if !errors.Is(err, sc.err) {
			continue
		}
		if sc.detailed {
			return sc.code, err.Error()
		}
		return sc.code, sc.err.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}
