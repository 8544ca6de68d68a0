package serverutils

import "github.com/gofiber/fiber/v2"

// AppError carries an HTTP status alongside a client-safe message. Services
// return these for expected failures; anything else surfaces as a 500.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

// NewNotFound is returned both when a resource does not exist and when it
// belongs to another user. The two cases are indistinguishable to the caller.
func NewNotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

func NewUnprocessable(message string) *AppError {
	return &AppError{Code: fiber.StatusUnprocessableEntity, Message: message}
}

func NewBadGateway(message string) *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: message}
}
