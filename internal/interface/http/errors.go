package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-identity-backend/internal/application/command"
	"github.com/oksasatya/go-identity-backend/internal/domain/entity"
	"github.com/oksasatya/go-identity-backend/internal/domain/repository"
	"github.com/oksasatya/go-identity-backend/internal/domain/valueobject"
	"github.com/oksasatya/go-identity-backend/internal/interface/middleware"
	"github.com/oksasatya/go-identity-backend/pkg/helpers"
	"github.com/oksasatya/go-identity-backend/pkg/response"
)

const msgInvalidCredentials = "invalid credentials"

var fieldErrors = []struct {
	err   error
	field string
	msg   string
}{
	{valueobject.ErrEmptyUsername, "username", "is required"},
	{valueobject.ErrUsernameTooLong, "username", "must be at most 50 characters long"},
	{valueobject.ErrInvalidEmailFormat, "email", "must be a valid email"},
	{valueobject.ErrPasswordTooShort, "", "must be at least 8 characters long"},
	{valueobject.ErrPasswordTooLong, "", "must be at most 100 characters long"},
	{valueobject.ErrPasswordMissingUppercase, "", "must contain an uppercase letter"},
	{valueobject.ErrPasswordMissingLowercase, "", "must contain a lowercase letter"},
	{valueobject.ErrPasswordMissingNumber, "", "must contain a number"},
	{valueobject.ErrPasswordMissingSpecialCharacter, "", "must contain one of " + valueobject.PasswordSpecialCharacters},
}

// writeError maps an application error to a response. passwordField names the
// request field password policy errors are reported on.
func (h *AuthHandler) writeError(c *gin.Context, err error, passwordField string) {
	var (
		wrongPassword  *command.WrongPasswordError
		usernameNF     *repository.UsernameNotFoundError
		localNF        *repository.LocalAuthInfoNotFoundError
		usernameExists *repository.UsernameAlreadyExistsError
		emailExists    *repository.EmailAlreadyExistsError
		authExists     *repository.AuthInfoAlreadyExistsError
		entityNF       *repository.EntityNotFoundError
		mismatch       *entity.UserIDMismatchError
		notAllowed     *entity.PasswordChangeNotAllowedError
	)

	// credential failures first: a WrongPasswordError may wrap a policy error
	switch {
	case errors.As(err, &wrongPassword):
		h.credentialError(c, err, "wrong password")
		return
	case errors.As(err, &usernameNF):
		h.credentialError(c, err, "username not found")
		return
	case errors.As(err, &localNF):
		h.credentialError(c, err, "local credential not found")
		return
	}

	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			field := fe.field
			if field == "" {
				field = passwordField
			}
			response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{field: fe.msg})
			return
		}
	}

	switch {
	case errors.As(err, &usernameExists):
		response.Error[any](c, http.StatusConflict, "username already exists", nil)
	case errors.As(err, &emailExists):
		response.Error[any](c, http.StatusConflict, "email already exists", nil)
	case errors.As(err, &authExists):
		response.Error[any](c, http.StatusConflict, "auth info already exists", nil)
	case errors.Is(err, command.ErrInvalidUserID), errors.As(err, &entityNF):
		response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
	case errors.As(err, &mismatch), errors.As(err, &notAllowed):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	default:
		helpers.LogError(h.Logger, "request failed", err, requestFields(c))
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func (h *AuthHandler) credentialError(c *gin.Context, err error, msg string) {
	if h.UniformErrors {
		h.Logger.WithError(err).WithFields(requestFields(c)).Info("credential check failed")
		msg = msgInvalidCredentials
	}
	response.Error[any](c, http.StatusUnauthorized, msg, nil)
}

func requestFields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString("request_id"),
		"real_ip":    c.GetString(middleware.CtxRealIP),
		"path":       c.FullPath(),
	}
}
