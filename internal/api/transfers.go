package api

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
)

// TransfersHandler handles transfer endpoints.
type TransfersHandler struct {
	service *ledger.Service
}

// NewTransfersHandler creates a new TransfersHandler.
func NewTransfersHandler(s *ledger.Service) *TransfersHandler {
	return &TransfersHandler{service: s}
}

// CreateTransferRequest is the body for POST /api/v1/transfers.
type CreateTransferRequest struct {
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
}

// Create handles POST /api/v1/transfers.
func (h *TransfersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	result, err := h.service.Transfer(ownerID(r), req.Source, req.Destination, req.Amount)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"out":         toMovementJSON(result.Out),
		"in":          toMovementJSON(result.In),
		"source":      toAccountJSON(result.Source),
		"destination": toAccountJSON(result.Dest),
	})
}
