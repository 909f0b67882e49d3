package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	. "accountsapi/internal/adapter/http/validation"
	"accountsapi/internal/core/domain"
	"accountsapi/internal/core/model/response"
)

const (
	MessageRegistered      = "Usuario registrado exitosamente."
	MessageRequiredFields  = "Nombre, email y contraseña son requeridos."
	MessageEmailRegistered = "El correo electrónico ya está registrado."
	MessageDuplicateEmail  = "El correo electrónico ya está registrado (error de BD)."
	MessageNotInserted     = "Error al registrar el usuario."
	MessageInternalError   = "Error interno del servidor."
)

func SendCreated(c *gin.Context, user *domain.User) {
	c.JSON(http.StatusCreated, response.SuccessResponse{
		Message: MessageRegistered,
		User: &response.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func SendError(c *gin.Context, statusCode int, message string, details ...response.ValidationError) {
	c.JSON(statusCode, response.ErrorResponse{
		Message: message,
		Errors:  details,
	})
}

func SendValidationError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, MessageRequiredFields, FormatValidationErrors(err)...)
}

func SendConflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

// SendInternalError answers 500 and exposes the error text to the caller.
func SendInternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{
		Message: MessageInternalError,
		Error:   err.Error(),
	})
}
