package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/fueleu-go/internal/application/mediator"
	"github.com/andrescamacho/fueleu-go/internal/domain/shared"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case shared.IsValidation(err):
		return http.StatusBadRequest
	case shared.IsNotFound(err):
		return http.StatusNotFound
	case shared.IsConsistency(err):
		return http.StatusConflict
	case shared.IsDomain(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return shared.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return nil
}

// send dispatches a request and asserts the concrete response type
func send[T any](r *http.Request, m mediator.Mediator, request mediator.Request) (*T, error) {
	resp, err := m.Send(r.Context(), request)
	if err != nil {
		return nil, err
	}
	typed, ok := resp.(*T)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", resp)
	}
	return typed, nil
}

func queryString(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

func queryInt(r *http.Request, name string) (*int, error) {
	v := queryString(r, name)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil, shared.NewValidationError(name, "must be an integer")
	}
	return &n, nil
}

func queryFloat(r *http.Request, name string) (*float64, error) {
	v := queryString(r, name)
	if v == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return nil, shared.NewValidationError(name, "must be a number")
	}
	return &f, nil
}

// requiredShipYear reads the shipId and year query parameters
func requiredShipYear(r *http.Request) (string, int, error) {
	shipID := queryString(r, "shipId")
	if shipID == nil {
		return "", 0, shared.NewValidationError("shipId", "required")
	}
	year, err := queryInt(r, "year")
	if err != nil {
		return "", 0, err
	}
	if year == nil {
		return "", 0, shared.NewValidationError("year", "required")
	}
	return *shipID, *year, nil
}
