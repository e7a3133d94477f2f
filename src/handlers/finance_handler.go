package handlers

import (
	"net/http"

	"finance-tracker-server/src/finance"
	"finance-tracker-server/src/models"
)

// GetFinance loads both lists and returns them with every derived figure.
func GetFinance(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req.store.Snapshot())
	}
}

func GetSummary(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Summary   models.Summary          `json:"summary"`
			Portfolio models.PortfolioSummary `json:"portfolio"`
		}{req.store.Summary(), req.store.Portfolio()})
	}
}

// GetCategories returns the category choices per transaction type.
func GetCategories(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		txns := req.store.Transactions()
		writeJSON(w, http.StatusOK, map[models.TransactionType][]string{
			models.TransactionIncome:  finance.Categories(models.TransactionIncome, txns),
			models.TransactionExpense: finance.Categories(models.TransactionExpense, txns),
		})
	}
}
