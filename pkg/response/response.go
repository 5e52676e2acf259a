package response

import (
	"encoding/json"
	"net/http"

	"bookings-rest-api/pkg/apierror"
)

// Envelope is the uniform wire shape of every response. Status is derived
// purely from the HTTP status code: anything below 400 is "success".
type Envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func write(w http.ResponseWriter, statusCode int, env Envelope) {
	if statusCode < http.StatusBadRequest {
		env.Status = "success"
	} else {
		env.Status = "error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(env)
}

// JSON sends a success envelope carrying data.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	write(w, statusCode, Envelope{Data: data})
}

// JSONMessage sends an envelope carrying both data and a message.
func JSONMessage(w http.ResponseWriter, statusCode int, data any, message string) {
	write(w, statusCode, Envelope{Data: data, Message: message})
}

// Message sends an envelope carrying only a message.
func Message(w http.ResponseWriter, statusCode int, message string) {
	write(w, statusCode, Envelope{Message: message})
}

// Error sends an error envelope. Unrecognized errors render as a generic 500
// so no internal detail leaks to the caller.
func Error(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*apierror.Error)
	if !ok {
		apiErr = apierror.InternalError("")
	}
	write(w, apiErr.StatusCode, Envelope{
		Message: apiErr.Message,
		Error:   apiErr.StatusText(),
	})
}

// OK sends a 200 OK response.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response.
func Created(w http.ResponseWriter, data any, message string) {
	JSONMessage(w, http.StatusCreated, data, message)
}
