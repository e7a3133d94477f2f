package store

import (
	"context"
	"fmt"

	"finance-tracker-server/src/finance"
	"finance-tracker-server/src/logging"
	"finance-tracker-server/src/models"
)

// FinanceStore is the in-memory view of one user's finances. Lists only change
// after the remote confirms a write; a failed call leaves them as they were.
//
// A FinanceStore is built per request and is not safe for concurrent use.
type FinanceStore struct {
	remote   Remote
	notifier Notifier
	logger   *logging.Logger

	transactions []models.Transaction
	investments  []models.Investment
}

type Option func(*FinanceStore)

func WithNotifier(n Notifier) Option {
	return func(s *FinanceStore) {
		s.notifier = n
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(s *FinanceStore) {
		s.logger = l
	}
}

func New(remote Remote, opts ...Option) *FinanceStore {
	s := &FinanceStore{
		remote:       remote,
		notifier:     discard,
		logger:       logging.NewSilent(),
		transactions: []models.Transaction{},
		investments:  []models.Investment{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces both lists with the remote contents. Both lists are fetched
// before either is replaced.
func (s *FinanceStore) Load(ctx context.Context) error {
	transactions, err := s.remote.ListTransactions(ctx)
	if err != nil {
		return s.fail(OpLoad, fmt.Errorf("load transactions: %w", err))
	}
	investments, err := s.remote.ListInvestments(ctx)
	if err != nil {
		return s.fail(OpLoad, fmt.Errorf("load investments: %w", err))
	}

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	if investments == nil {
		investments = []models.Investment{}
	}
	s.transactions = transactions
	s.investments = investments
	s.logger.Debug().
		Int("transactions", len(transactions)).
		Int("investments", len(investments)).
		Msg("Loaded financial data")
	return nil
}

func (s *FinanceStore) Transactions() []models.Transaction {
	return append([]models.Transaction{}, s.transactions...)
}

func (s *FinanceStore) Investments() []models.Investment {
	return append([]models.Investment{}, s.investments...)
}

// FindInvestment returns the loaded investment with the given id.
func (s *FinanceStore) FindInvestment(id string) (models.Investment, bool) {
	for _, inv := range s.investments {
		if inv.ID == id {
			return inv, true
		}
	}
	return models.Investment{}, false
}

// Summary is recomputed from the current list on every call.
func (s *FinanceStore) Summary() models.Summary {
	return finance.Summarize(s.transactions)
}

func (s *FinanceStore) Portfolio() models.PortfolioSummary {
	return finance.SummarizeInvestments(s.investments)
}

func (s *FinanceStore) Snapshot() models.Snapshot {
	return models.Snapshot{
		Transactions: s.Transactions(),
		Investments:  finance.Holdings(s.investments),
		Summary:      s.Summary(),
		Portfolio:    s.Portfolio(),
	}
}

// AddTransaction inserts a new transaction and puts the stored row at the
// front of the list.
func (s *FinanceStore) AddTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	if err := NormalizeTransaction(&in); err != nil {
		return nil, s.fail(OpAddTransaction, err)
	}
	created, err := s.remote.InsertTransaction(ctx, in)
	if err != nil {
		return nil, s.fail(OpAddTransaction, err)
	}
	s.transactions = append([]models.Transaction{*created}, s.transactions...)
	s.succeed(OpAddTransaction)
	return created, nil
}

// UpdateTransaction replaces the record remotely, then patches the matching
// local entry. An id that is not in the local list leaves the list untouched.
func (s *FinanceStore) UpdateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	in := t.Input()
	if err := NormalizeTransaction(&in); err != nil {
		return nil, s.fail(OpUpdateTransaction, err)
	}
	updated, err := s.remote.UpdateTransaction(ctx, t.WithInput(in))
	if err != nil {
		return nil, s.fail(OpUpdateTransaction, err)
	}
	for i := range s.transactions {
		if s.transactions[i].ID == updated.ID {
			s.transactions[i] = *updated
			break
		}
	}
	s.succeed(OpUpdateTransaction)
	return updated, nil
}

func (s *FinanceStore) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.remote.DeleteTransaction(ctx, id); err != nil {
		return s.fail(OpDeleteTransaction, err)
	}
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.transactions = kept
	s.succeed(OpDeleteTransaction)
	return nil
}

func (s *FinanceStore) AddInvestment(ctx context.Context, in models.InvestmentInput) (*models.Investment, error) {
	if err := NormalizeInvestment(&in); err != nil {
		return nil, s.fail(OpAddInvestment, err)
	}
	created, err := s.remote.InsertInvestment(ctx, in)
	if err != nil {
		return nil, s.fail(OpAddInvestment, err)
	}
	s.investments = append([]models.Investment{*created}, s.investments...)
	s.succeed(OpAddInvestment)
	return created, nil
}

func (s *FinanceStore) UpdateInvestment(ctx context.Context, inv models.Investment) (*models.Investment, error) {
	in := inv.Input()
	if err := NormalizeInvestment(&in); err != nil {
		return nil, s.fail(OpUpdateInvestment, err)
	}
	updated, err := s.remote.UpdateInvestment(ctx, inv.WithInput(in))
	if err != nil {
		return nil, s.fail(OpUpdateInvestment, err)
	}
	for i := range s.investments {
		if s.investments[i].ID == updated.ID {
			s.investments[i] = *updated
			break
		}
	}
	s.succeed(OpUpdateInvestment)
	return updated, nil
}

func (s *FinanceStore) DeleteInvestment(ctx context.Context, id string) error {
	if err := s.remote.DeleteInvestment(ctx, id); err != nil {
		return s.fail(OpDeleteInvestment, err)
	}
	kept := s.investments[:0]
	for _, inv := range s.investments {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	s.investments = kept
	s.succeed(OpDeleteInvestment)
	return nil
}

func (s *FinanceStore) succeed(op string) {
	s.logger.Info().Str("operation", op).Msg(messages[op].ok)
	s.notifier.Notify(Success(op))
}

// fail logs err, emits the error notification for op and returns err.
func (s *FinanceStore) fail(op string, err error) error {
	s.logger.Error().Err(err).Str("operation", op).Msg(messages[op].failed)
	s.notifier.Notify(Failure(op))
	return err
}
