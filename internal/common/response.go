package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorResponse is the wire shape for failures. Errors is usually a list of
// messages; the authentication middleware emits a bare "Unauthorized" string
// to stay compatible with the original API.
type ErrorResponse struct {
	Errors interface{} `json:"errors"`
}

func RespondWithErrors(w http.ResponseWriter, code int, messages ...string) {
	RespondWithJSON(w, code, ErrorResponse{Errors: messages})
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondWithJSON(w, http.StatusUnauthorized, ErrorResponse{Errors: "Unauthorized"})
}

// RespondDomainError translates a service error into the HTTP error body,
// using notFoundMsg for ErrNotFound so each resource keeps its original
// message ("Item not found", "User not found").
func RespondDomainError(w http.ResponseWriter, err error, notFoundMsg string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		RespondWithErrors(w, http.StatusUnprocessableEntity, verr.Messages...)
		return
	}
	code := HTTPStatusFromError(err)
	switch code {
	case http.StatusNotFound:
		RespondWithErrors(w, code, notFoundMsg)
	case http.StatusUnauthorized:
		RespondWithErrors(w, code, "Current password is incorrect")
	case http.StatusForbidden:
		RespondWithErrors(w, code, "Unauthorized to perform this action")
	default:
		RespondWithErrors(w, code, "Something went wrong")
	}
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errors": ["Failed to marshal JSON response"]}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
