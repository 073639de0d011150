package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Handle converte um erro de negócio no status HTTP correspondente.
// Erros fora da taxonomia viram 500 genérico.
func Handle(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	switch be.Kind {
	case KindValidation:
		BadRequest(c, be.Code, "Dados inválidos.")
	case KindNotFound:
		NotFound(c, be.Code, "Recurso não encontrado.")
	case KindConflict:
		Conflict(c, be.Code, "Conflito com o estado atual.")
	case KindStorageUnavailable:
		Write(c, http.StatusServiceUnavailable, be.Code, "Armazenamento de arquivos indisponível.")
	case KindTransactionFailed:
		Internal(c, be.Code, "Falha ao gravar os dados.")
	default:
		Internal(c, be.Code, "Erro interno.")
	}
}
