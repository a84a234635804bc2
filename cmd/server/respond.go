package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/partquote/internal/catalog"
	"github.com/Simplici0/partquote/internal/checkout"
	"github.com/Simplici0/partquote/internal/parts"
	"github.com/Simplici0/partquote/internal/session"
	"github.com/Simplici0/partquote/internal/store"
)

const maxBodyBytes = 1 << 20

var (
	errExtrasRequired = errors.New("extras are required for the extras step")
	errNothingToQuote = errors.New("no configured parts to quote")
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, parts.ErrPartNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrUnknownOption),
		errors.Is(err, catalog.ErrIncompatibleOption),
		errors.Is(err, parts.ErrNotVariation),
		errors.Is(err, parts.ErrDuplicateVariation),
		errors.Is(err, parts.ErrDrawingType),
		errors.Is(err, parts.ErrDrawingSize),
		errors.Is(err, checkout.ErrMissingShipping),
		errors.Is(err, checkout.ErrMissingCreditCard),
		errors.Is(err, checkout.ErrMissingPONumber),
		errors.Is(err, checkout.ErrInvalidAddress),
		errors.Is(err, errExtrasRequired):
		return http.StatusBadRequest
	case errors.Is(err, errNothingToQuote):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status. Internal errors are logged and
// hidden behind msg.
func (s *server) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
		writeError(w, status, msg)
		return
	}
	writeError(w, status, err.Error())
}
