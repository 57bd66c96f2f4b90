// Package api exposes the ledger engine over HTTP. The conversational
// front end authenticates users upstream and passes the owner id in the
// X-Owner-ID header; handlers translate between JSON and engine calls.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
)

// OwnerHeader carries the owner (chat user) id on every request.
const OwnerHeader = "X-Owner-ID"

type contextKey string

const contextKeyOwner contextKey = "owner"

// NewRouter builds the API router for the given ledger service.
func NewRouter(service *ledger.Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	accounts := NewAccountsHandler(service)
	movements := NewMovementsHandler(service)
	transfers := NewTransfersHandler(service)
	summaries := NewSummariesHandler(service)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(OwnerMiddleware)

		r.Post("/accounts", accounts.Create)
		r.Get("/accounts", accounts.List)
		r.Get("/accounts/{name}/movements", movements.History)

		r.Post("/movements", movements.Create)
		r.Get("/movements/{id}", movements.Get)
		r.Patch("/movements/{id}", movements.Edit)
		r.Delete("/movements/{id}", movements.Delete)

		r.Post("/transfers", transfers.Create)

		r.Get("/summary", summaries.Totals)
		r.Get("/summary/categories", summaries.Categories)
		r.Get("/summary/months", summaries.Months)
	})

	return r
}

// OwnerMiddleware extracts and validates the owner id header.
func OwnerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(OwnerHeader)
		if raw == "" {
			writeJSONError(w, http.StatusBadRequest, "missing_owner", "Missing "+OwnerHeader+" header")
			return
		}
		owner, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid_owner", "Invalid "+OwnerHeader+" header")
			return
		}
		ctx := context.WithValue(r.Context(), contextKeyOwner, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ownerID(r *http.Request) int64 {
	owner, _ := r.Context().Value(contextKeyOwner).(int64)
	return owner
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message})
}

// writeJSON writes a JSON success response.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeLedgerError maps a ledger error to an HTTP response. Domain kinds
// become 4xx with the kind as code; anything else is a store failure.
func writeLedgerError(w http.ResponseWriter, err error) {
	kind, ok := ledger.KindOf(err)
	if !ok {
		writeJSONError(w, http.StatusInternalServerError, "store_failure", "Internal storage error")
		return
	}

	status := http.StatusUnprocessableEntity
	switch kind {
	case ledger.ErrAccountNotFound, ledger.ErrMovementNotFound, ledger.ErrTransferPairNotFound:
		status = http.StatusNotFound
	case ledger.ErrDuplicateAccount:
		status = http.StatusConflict
	case ledger.ErrInvalidAccount:
		status = http.StatusBadRequest
	}
	writeJSONError(w, status, string(kind), err.Error())
}
