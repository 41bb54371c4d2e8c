// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "net/http"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Code lets clients branch on the condition without parsing Spanish messages.
type APIError struct {
	Code    string                 `json:"code"`
	Detail  string                 `json:"detail"`
	Details map[string]interface{} `json:"details,omitempty"`

	status int
}

func (e *APIError) Error() string { return e.Detail }

// Status returns the HTTP status code this error maps to.
func (e *APIError) Status() int {
	if e.status == 0 {
		return http.StatusBadRequest
	}
	return e.status
}

func New(msg string) *APIError {
	return &APIError{Code: "BUSINESS_RULE_ERROR", Detail: msg, status: http.StatusBadRequest}
}

// Internal is the opaque 500 envelope; internal detail stays in the logs.
func Internal() *APIError {
	return &APIError{Code: "INTERNAL_ERROR", Detail: "Error interno del servidor", status: http.StatusInternalServerError}
}

func NotFound(resource string) *APIError {
	return &APIError{Code: "NOT_FOUND", Detail: resource + " no encontrado", status: http.StatusNotFound}
}

func Authentication(msg string) *APIError {
	if msg == "" {
		msg = "Credenciales inválidas"
	}
	return &APIError{Code: "AUTHENTICATION_ERROR", Detail: msg, status: http.StatusUnauthorized}
}

func Authorization() *APIError {
	return &APIError{
		Code:   "AUTHORIZATION_ERROR",
		Detail: "No tienes permisos para realizar esta acción",
		status: http.StatusForbidden,
	}
}

func Duplicate(resource, field, value string) *APIError {
	return &APIError{
		Code:    "DUPLICATE_ERROR",
		Detail:  "Ya existe un " + resource + " con " + field + ": " + value,
		Details: map[string]interface{}{"resource": resource, "field": field, "value": value},
		status:  http.StatusConflict,
	}
}

// StockInsuficiente is raised when a sale requests more kg than available.
func StockInsuficiente(productName string, availableKg, requestedKg float64) *APIError {
	return &APIError{
		Code:   "STOCK_INSUFICIENTE",
		Detail: "Stock insuficiente de " + productName,
		Details: map[string]interface{}{
			"product":      productName,
			"available_kg": availableKg,
			"requested_kg": requestedKg,
		},
		status: http.StatusBadRequest,
	}
}

// FieldError marks a single invalid field (service-level validation).
func FieldError(msg, field string) *APIError {
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Detail:  msg,
		Details: map[string]interface{}{"field": field},
		status:  http.StatusUnprocessableEntity,
	}
}

// ValidationError wraps multiple field errors from request binding.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: "VALIDATION_ERROR", Detail: "Error de validación", Fields: fields}
}
