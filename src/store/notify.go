package store

import (
	"sync"

	"finance-tracker-server/src/models"
)

// Notifier receives the outcome of every load and mutation.
type Notifier interface {
	Notify(n models.Notification)
}

type NotifierFunc func(n models.Notification)

func (f NotifierFunc) Notify(n models.Notification) { f(n) }

var discard = NotifierFunc(func(models.Notification) {})

// Recorder collects notifications so a request handler can return them.
type Recorder struct {
	mu    sync.Mutex
	notes []models.Notification
}

func (r *Recorder) Notify(n models.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *Recorder) All() []models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Notification(nil), r.notes...)
}

// Last returns the most recent notification, or nil.
func (r *Recorder) Last() *models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notes) == 0 {
		return nil
	}
	n := r.notes[len(r.notes)-1]
	return &n
}

// Operation names and the messages shown for them.
const (
	OpLoad              = "load"
	OpAddTransaction    = "add_transaction"
	OpUpdateTransaction = "update_transaction"
	OpDeleteTransaction = "delete_transaction"
	OpAddInvestment     = "add_investment"
	OpUpdateInvestment  = "update_investment"
	OpDeleteInvestment  = "delete_investment"
)

var messages = map[string]struct{ ok, failed string }{
	OpLoad:              {"Financial data loaded.", "Failed to load your financial data."},
	OpAddTransaction:    {"Transaction added successfully.", "Failed to add transaction."},
	OpUpdateTransaction: {"Transaction updated successfully.", "Failed to update transaction."},
	OpDeleteTransaction: {"Transaction deleted successfully.", "Failed to delete transaction."},
	OpAddInvestment:     {"Investment added successfully.", "Failed to add investment."},
	OpUpdateInvestment:  {"Investment updated successfully.", "Failed to update investment."},
	OpDeleteInvestment:  {"Investment deleted successfully.", "Failed to delete investment."},
}

// Success is the notification emitted when op completes.
func Success(op string) models.Notification {
	return models.Notification{
		Operation: op,
		Level:     models.NotificationSuccess,
		Title:     "Success",
		Message:   messages[op].ok,
	}
}

// Failure is the notification emitted when op fails.
func Failure(op string) models.Notification {
	return models.Notification{
		Operation: op,
		Level:     models.NotificationError,
		Title:     "Error",
		Message:   messages[op].failed,
	}
}
