package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Tipos de erro comuns
var (
	ErrNotFound       = errors.New("recurso não encontrado")
	ErrInvalidInput   = errors.New("requisição inválida")
	ErrStorageFailure = errors.New("falha no armazenamento")
)

// Chaves usadas no corpo JSON das respostas de erro
const (
	KeyError    = "error"
	KeyMessage  = "mensagem"
	genericMsg  = "Erro interno do servidor"
	notFoundMsg = "Nenhum ponto encontrado."
)

// APIError representa um erro da API com informações adicionais
type APIError struct {
	Code        int    `json:"-"`
	Message     string `json:"message"`
	Key         string `json:"-"`
	OriginalErr error  `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// Payload retorna o corpo JSON devolvido ao cliente.
// Nunca inclui o erro original.
func (e *APIError) Payload() map[string]interface{} {
	key := e.Key
	if key == "" {
		key = KeyError
	}
	return map[string]interface{}{key: e.Message}
}

// New cria um novo APIError
func New(code int, key, message string, err error) *APIError {
	return &APIError{
		Code:        code,
		Message:     message,
		Key:         key,
		OriginalErr: err,
	}
}

// InvalidInput cria um erro 400 com a chave "error"
func InvalidInput(message string, err error) *APIError {
	if err == nil {
		err = ErrInvalidInput
	}
	return New(http.StatusBadRequest, KeyError, message, err)
}

// NotFound cria um erro 404 com a chave "mensagem"
func NotFound(message string, err error) *APIError {
	if message == "" {
		message = notFoundMsg
	}
	if err == nil {
		err = ErrNotFound
	}
	return New(http.StatusNotFound, KeyMessage, message, err)
}

// StorageFailure cria um erro 500. A mensagem é sempre genérica.
func StorageFailure(err error) *APIError {
	if err == nil {
		err = ErrStorageFailure
	}
	return New(http.StatusInternalServerError, KeyError, genericMsg, err)
}

// As extrai um APIError da cadeia de erros, se houver
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
