package store

import (
	"context"
	"sort"
	"sync"

	"finance-tracker-server/src/models"

	"github.com/google/uuid"
)

// MemoryBackend holds every user's rows in process memory. ForUser hands out
// Remotes that only see the given owner's rows, like the SQL implementation.
type MemoryBackend struct {
	mu           sync.Mutex
	transactions []models.Transaction
	investments  []models.Investment
	err          error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (b *MemoryBackend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

func (b *MemoryBackend) ForUser(userID int64) Remote {
	return &memoryRemote{backend: b, userID: userID}
}

type memoryRemote struct {
	backend *MemoryBackend
	userID  int64
}

func (m *memoryRemote) lock() (*MemoryBackend, error) {
	b := m.backend
	b.mu.Lock()
	return b, b.err
}

func (m *memoryRemote) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []models.Transaction{}
	for _, t := range b.transactions {
		if t.UserID == m.userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date.Time) })
	return out, nil
}

func (m *memoryRemote) InsertTransaction(ctx context.Context, in models.TransactionInput) (*models.Transaction, error) {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	t := models.Transaction{ID: uuid.NewString(), UserID: m.userID}.WithInput(in)
	b.transactions = append([]models.Transaction{t}, b.transactions...)
	return &t, nil
}

func (m *memoryRemote) UpdateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for i, existing := range b.transactions {
		if existing.ID == t.ID && existing.UserID == m.userID {
			t.UserID = m.userID
			b.transactions[i] = t
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRemote) DeleteTransaction(ctx context.Context, id string) error {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return err
	}
	for i, existing := range b.transactions {
		if existing.ID == id && existing.UserID == m.userID {
			b.transactions = append(b.transactions[:i], b.transactions[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryRemote) ListInvestments(ctx context.Context) ([]models.Investment, error) {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := []models.Investment{}
	for _, inv := range b.investments {
		if inv.UserID == m.userID {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate.Time) })
	return out, nil
}

func (m *memoryRemote) InsertInvestment(ctx context.Context, in models.InvestmentInput) (*models.Investment, error) {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	inv := models.Investment{ID: uuid.NewString(), UserID: m.userID}.WithInput(in)
	b.investments = append([]models.Investment{inv}, b.investments...)
	return &inv, nil
}

func (m *memoryRemote) UpdateInvestment(ctx context.Context, inv models.Investment) (*models.Investment, error) {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for i, existing := range b.investments {
		if existing.ID == inv.ID && existing.UserID == m.userID {
			inv.UserID = m.userID
			b.investments[i] = inv
			return &inv, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRemote) DeleteInvestment(ctx context.Context, id string) error {
	b, err := m.lock()
	defer b.mu.Unlock()
	if err != nil {
		return err
	}
	for i, existing := range b.investments {
		if existing.ID == id && existing.UserID == m.userID {
			b.investments = append(b.investments[:i], b.investments[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
