package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
)

// MovementsHandler handles movement endpoints.
type MovementsHandler struct {
	service *ledger.Service
}

// NewMovementsHandler creates a new MovementsHandler.
func NewMovementsHandler(s *ledger.Service) *MovementsHandler {
	return &MovementsHandler{service: s}
}

// MovementJSON is the wire form of a movement.
type MovementJSON struct {
	ID               int64     `json:"id"`
	AccountID        int64     `json:"account_id"`
	Kind             string    `json:"kind"`
	Amount           string    `json:"amount"`
	Category         string    `json:"category,omitempty"`
	RelatedAccountID int64     `json:"related_account_id,omitempty"`
	RelatedAccount   string    `json:"related_account,omitempty"`
	TransferID       string    `json:"transfer_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func toMovementJSON(m ledger.Movement) MovementJSON {
	return MovementJSON{
		ID:               m.ID,
		AccountID:        m.AccountID,
		Kind:             string(m.Kind),
		Amount:           m.Amount.String(),
		Category:         m.Category,
		RelatedAccountID: m.RelatedAccountID,
		TransferID:       m.TransferID,
		CreatedAt:        m.CreatedAt,
	}
}

// CreateMovementRequest is the body for POST /api/v1/movements.
type CreateMovementRequest struct {
	Account  string          `json:"account"`
	Kind     string          `json:"kind"` // "expense" or "income"
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

// Create handles POST /api/v1/movements.
func (h *MovementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	kind := ledger.MovementKind(req.Kind)
	if kind != ledger.KindExpense && kind != ledger.KindIncome {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "kind must be 'expense' or 'income'")
		return
	}

	result, err := h.service.RecordMovement(ownerID(r), req.Account, req.Amount, req.Category, kind)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"movement": toMovementJSON(result.Movement),
		"account":  toAccountJSON(result.Account),
	})
}

// Get handles GET /api/v1/movements/{id}.
func (h *MovementsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := movementID(w, r)
	if !ok {
		return
	}

	movement, err := h.service.GetMovement(ownerID(r), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"movement": toMovementJSON(*movement),
	})
}

// EditMovementRequest is the body for PATCH /api/v1/movements/{id}.
// Both fields are optional but at least one must be present.
type EditMovementRequest struct {
	Amount   *decimal.Decimal `json:"amount"`
	Category *string          `json:"category"`
}

// Edit handles PATCH /api/v1/movements/{id}.
func (h *MovementsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := movementID(w, r)
	if !ok {
		return
	}

	var req EditMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	result, err := h.service.EditMovement(ownerID(r), id, req.Amount, req.Category)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"movement": toMovementJSON(result.Movement),
		"account":  toAccountJSON(result.Account),
	})
}

// Delete handles DELETE /api/v1/movements/{id}.
func (h *MovementsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := movementID(w, r)
	if !ok {
		return
	}

	result, err := h.service.DeleteMovement(ownerID(r), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	deleted := make([]MovementJSON, len(result.Movements))
	for i, m := range result.Movements {
		deleted[i] = toMovementJSON(m)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted":  deleted,
		"accounts": toAccountListJSON(result.Accounts),
	})
}

// History handles GET /api/v1/accounts/{name}/movements.
func (h *MovementsHandler) History(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	history, err := h.service.ListMovements(ownerID(r), name)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	movements := make([]MovementJSON, len(history.Movements))
	for i, d := range history.Movements {
		m := toMovementJSON(d.Movement)
		m.RelatedAccount = d.RelatedAccount
		movements[i] = m
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"account":   toAccountJSON(history.Account),
		"movements": movements,
	})
}

func movementID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movement ID")
		return 0, false
	}
	return id, true
}
