package handlers

import (
	"net/http"

	"finance-tracker-server/src/finance"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"

	"github.com/go-chi/chi/v5"
)

type investmentResponse struct {
	Investment   models.Holding       `json:"investment"`
	Notification *models.Notification `json:"notification"`
}

// GetInvestments lists holdings with their cost, value and gain figures.
func GetInvestments(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, finance.Holdings(req.store.Investments()))
	}
}

func CreateInvestment(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		var in models.InvestmentInput
		if err := decodeBody(w, r, &in); err != nil {
			req.log.Error().Err(err).Msg("Failed to decode create investment request body")
			badBody(w, store.OpAddInvestment, err)
			return
		}

		created, err := req.store.AddInvestment(r.Context(), in)
		if err != nil {
			req.fail(w, err)
			return
		}
		req.log.Info().Str("investment_id", created.ID).Str("symbol", created.Symbol).Msg("Created investment")
		writeJSON(w, http.StatusCreated, investmentResponse{Investment: finance.Metrics(*created), Notification: req.notes.Last()})
	}
}

func UpdateInvestment(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "investment_id")
		var in models.InvestmentInput
		if err := decodeBody(w, r, &in); err != nil {
			req.log.Error().Err(err).Str("investment_id", id).Msg("Failed to decode update investment request body")
			badBody(w, store.OpUpdateInvestment, err)
			return
		}

		updated, err := req.store.UpdateInvestment(r.Context(), models.Investment{ID: id}.WithInput(in))
		if err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, investmentResponse{Investment: finance.Metrics(*updated), Notification: req.notes.Last()})
	}
}

func DeleteInvestment(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "investment_id")
		if err := req.store.DeleteInvestment(r.Context(), id); err != nil {
			req.fail(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deletedResponse{Deleted: id, Notification: req.notes.Last()})
	}
}

// RefreshInvestmentPrice sets the holding's current price to the latest close
// from the quote source.
func RefreshInvestmentPrice(env *Env) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if env.Quotes == nil {
			note := store.Failure(store.OpUpdateInvestment)
			writeError(w, http.StatusServiceUnavailable, "price lookup is not configured", &note)
			return
		}
		req, ok := env.open(w, r)
		if !ok {
			return
		}
		id := chi.URLParam(r, "investment_id")

		if err := req.store.Load(r.Context()); err != nil {
			req.fail(w, err)
			return
		}
		inv, found := req.store.FindInvestment(id)
		if !found {
			note := store.Failure(store.OpUpdateInvestment)
			writeError(w, http.StatusNotFound, "not found", &note)
			return
		}

		price, err := env.Quotes.LastClose(r.Context(), inv.Symbol)
		if err != nil {
			req.log.Error().Err(err).Str("symbol", inv.Symbol).Msg("Failed to fetch last close")
			note := store.Failure(store.OpUpdateInvestment)
			writeError(w, http.StatusBadGateway, "price lookup failed", &note)
			return
		}

		// current_price is NUMERIC(18, 6)
		inv.CurrentPrice = price.Round(6)
		updated, err := req.store.UpdateInvestment(r.Context(), inv)
		if err != nil {
			req.fail(w, err)
			return
		}
		req.log.Info().Str("investment_id", id).Str("symbol", inv.Symbol).Str("price", price.String()).Msg("Refreshed investment price")
		writeJSON(w, http.StatusOK, investmentResponse{Investment: finance.Metrics(*updated), Notification: req.notes.Last()})
	}
}
