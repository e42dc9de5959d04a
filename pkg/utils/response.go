package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "sales-dashboard/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// sentinelStatus maps bare sentinel errors to HTTP codes when no HttpError wraps them.
var sentinelStatus = map[error]int{
	apperrors.ErrInvalidSigningMethod:     http.StatusUnauthorized,
	apperrors.ErrInvalidToken:             http.StatusUnauthorized,
	apperrors.ErrTokenExpired:             http.StatusUnauthorized,
	apperrors.ErrTokenNotYetValid:         http.StatusUnauthorized,
	apperrors.ErrTokenIsNotAccess:         http.StatusUnauthorized,
	apperrors.ErrTokenIsNotRefresh:        http.StatusUnauthorized,
	apperrors.ErrEmptyAuthHeader:          http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:        http.StatusUnauthorized,
	apperrors.ErrInvalidCredentials:       http.StatusUnauthorized,
	apperrors.ErrUnauthorized:             http.StatusUnauthorized,
	apperrors.ErrSessionNotFoundInContext: http.StatusUnauthorized,
	apperrors.ErrInactiveUser:             http.StatusForbidden,
	apperrors.ErrAccountLocked:            http.StatusTooManyRequests,
	apperrors.ErrForbidden:                http.StatusForbidden,
	apperrors.ErrNotFound:                 http.StatusNotFound,
	apperrors.ErrBadRequest:               http.StatusBadRequest,
	apperrors.ErrAlreadyExists:            http.StatusConflict,
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": "Erro de validação: " + strings.Join(msgs, "; ")})
	}

	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"status": false, "message": invalidInput.Message})
	}

	for sentinel, code := range sentinelStatus {
		if errors.Is(err, sentinel) {
			return c.JSON(code, map[string]interface{}{"status": false, "message": sentinel.Error()})
		}
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Erro interno do servidor",
	})
}
