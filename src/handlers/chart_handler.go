package handlers

import (
	"errors"
	"net/http"

	"finance-tracker-server/src/charts"
	"finance-tracker-server/src/finance"
)

func writePNG(w http.ResponseWriter, req *request, img []byte, err error) {
	if errors.Is(err, charts.ErrNoData) {
		writeError(w, http.StatusNotFound, "no data to display", nil)
		return
	}
	if err != nil {
		req.log.Error().Err(err).Msg("Failed to render chart")
		writeError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}

func GetExpenseChart(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		img, err := charts.RenderExpenses(finance.ExpensesByCategory(req.store.Transactions()), env.Currency)
		writePNG(w, req, img, err)
	}
}

func GetInvestmentChart(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		img, err := charts.RenderHoldings(finance.HoldingChart(req.store.Investments()), env.Currency)
		writePNG(w, req, img, err)
	}
}
