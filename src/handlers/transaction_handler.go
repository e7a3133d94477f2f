package handlers

import (
	"net/http"

	"finance-tracker-server/src/finance"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"

	"github.com/go-chi/chi/v5"
)

type transactionResponse struct {
	Transaction  *models.Transaction  `json:"transaction"`
	Notification *models.Notification `json:"notification"`
}

type deletedResponse struct {
	Deleted      string               `json:"deleted"`
	Notification *models.Notification `json:"notification"`
}

func GetTransactions(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req.store.Transactions())
	}
}

func CreateTransaction(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		var in models.TransactionInput
		if err := decodeBody(w, r, &in); err != nil {
			req.log.Error().Err(err).Msg("Failed to decode create transaction request body")
			badBody(w, store.OpAddTransaction, err)
			return
		}

		created, err := req.store.AddTransaction(r.Context(), in)
		if err != nil {
			req.fail(w, err)
			return
		}
		req.log.Info().Str("transaction_id", created.ID).Str("type", string(created.Type)).Msg("Created transaction")
		writeJSON(w, http.StatusCreated, transactionResponse{Transaction: created, Notification: req.notes.Last()})
	}
}

// UpdateTransaction replaces every editable field of the transaction named in
// the URL with the request body.
func UpdateTransaction(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "transaction_id")
		var in models.TransactionInput
		if err := decodeBody(w, r, &in); err != nil {
			req.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to decode update transaction request body")
			badBody(w, store.OpUpdateTransaction, err)
			return
		}

		updated, err := req.store.UpdateTransaction(r.Context(), models.Transaction{ID: id}.WithInput(in))
		if err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, transactionResponse{Transaction: updated, Notification: req.notes.Last()})
	}
}

func DeleteTransaction(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "transaction_id")
		if err := req.store.DeleteTransaction(r.Context(), id); err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deletedResponse{Deleted: id, Notification: req.notes.Last()})
	}
}

// GetExpenseCategories returns expense totals grouped by category.
func GetExpenseCategories(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, finance.ExpensesByCategory(req.store.Transactions()))
	}
}
