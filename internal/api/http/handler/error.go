package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/listenloud-server/internal/api/http/response"
	"github.com/dtroode/listenloud-server/internal/logger"
	"github.com/dtroode/listenloud-server/internal/model"
)

// writeError translates err into a status code and error body.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			"status", status,
			"error", err.Error())
	}
	response.Error(w, status, message)
}

func classify(err error) (int, string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, validationMessage(verrs)
	case errors.Is(err, model.ErrDuplicateUser):
		return http.StatusConflict, "User already exists! Please choose a different username!"
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Bad credentials has been provided!"
	case errors.Is(err, model.ErrUserNotFound):
		return http.StatusNotFound, "User cannot be found!"
	case errors.Is(err, model.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired!"
	case errors.Is(err, model.ErrTokenMalformed):
		return http.StatusUnauthorized, "Token is malformed!"
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized, "Full authentication is required to access this resource"
	case errors.Is(err, model.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, model.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "File size exceeds the allowed limits!"
	case errors.Is(err, model.ErrTagNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "Resource cannot be found!"
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden, "You are not allowed to modify this resource!"
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, model.ErrStorage):
		return http.StatusBadGateway, "Storage is unavailable!"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed on %q", fe.Field(), fe.Tag()))
	}
	return "invalid request: " + strings.Join(parts, ", ")
}
