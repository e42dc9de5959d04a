package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT e tokens
	ErrInvalidSigningMethod = fmt.Errorf("método de assinatura do token inválido")
	ErrInvalidToken         = fmt.Errorf("token inválido")
	ErrTokenExpired         = fmt.Errorf("token expirado")
	ErrTokenNotYetValid     = fmt.Errorf("token ainda não é válido")
	ErrTokenIsNotAccess     = fmt.Errorf("token não é um token de acesso")
	ErrTokenIsNotRefresh    = fmt.Errorf("token não é um token de refresh")

	// Autorização
	ErrEmptyAuthHeader    = fmt.Errorf("cabeçalho Authorization ausente")
	ErrInvalidAuthHeader  = fmt.Errorf("formato do cabeçalho Authorization inválido")
	ErrInvalidCredentials = fmt.Errorf("credenciais inválidas")
	ErrUnauthorized       = fmt.Errorf("não autorizado")
	ErrForbidden          = fmt.Errorf("acesso negado")
	ErrInactiveUser       = fmt.Errorf("usuário inativo")
	ErrAccountLocked      = fmt.Errorf("conta bloqueada temporariamente por excesso de tentativas")

	// Contexto
	ErrSessionNotFoundInContext = fmt.Errorf("sessão não encontrada no contexto da requisição")

	// Gerais
	ErrNotFound      = fmt.Errorf("registro não encontrado")
	ErrBadRequest    = fmt.Errorf("requisição inválida")
	ErrAlreadyExists = fmt.Errorf("registro já existe")
)

// HttpError carries the status code and user-facing message, Err holds the cause for logs.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewInternalError(message string) *HttpError {
	return &HttpError{Code: http.StatusInternalServerError, Message: message}
}

// InvalidInputError is returned by services for rejected payload values.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
