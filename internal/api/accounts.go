package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pigeonworks-llc/finledger/pkg/ledger"
)

// AccountsHandler handles account endpoints.
type AccountsHandler struct {
	service *ledger.Service
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(s *ledger.Service) *AccountsHandler {
	return &AccountsHandler{service: s}
}

// AccountJSON is the wire form of an account. Balance is a decimal string.
type AccountJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

func toAccountJSON(a ledger.Account) AccountJSON {
	return AccountJSON{
		ID:        a.ID,
		Name:      a.Name,
		Kind:      string(a.Kind),
		Balance:   a.Balance.String(),
		CreatedAt: a.CreatedAt,
	}
}

func toAccountListJSON(accounts []ledger.Account) []AccountJSON {
	out := make([]AccountJSON, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountJSON(a)
	}
	return out
}

// CreateAccountRequest is the body for POST /api/v1/accounts.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Create handles POST /api/v1/accounts.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	account, err := h.service.CreateAccount(ownerID(r), req.Name, ledger.AccountKind(req.Kind))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"account": toAccountJSON(*account),
	})
}

// List handles GET /api/v1/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(ownerID(r))
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": toAccountListJSON(accounts),
	})
}
