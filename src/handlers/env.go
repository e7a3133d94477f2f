package handlers

import (
	"context"
	"net/http"
	"time"

	"finance-tracker-server/src/cache"
	"finance-tracker-server/src/logging"
	"finance-tracker-server/src/middleware"
	"finance-tracker-server/src/models"
	"finance-tracker-server/src/store"

	"github.com/shopspring/decimal"
)

// RemoteFactory returns the Remote bound to one user's rows.
type RemoteFactory func(userID int64) store.Remote

type UserStore interface {
	CreateUser(ctx context.Context, req models.RegisterRequest, hashedPassword string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error
}

type QuoteSource interface {
	LastClose(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// Env carries what the handlers share. Quotes may be nil, which disables
// price refresh.
type Env struct {
	Remotes     RemoteFactory
	Users       UserStore
	Quotes      QuoteSource
	Cache       *cache.Cache
	Logger      *logging.Logger
	JWTSecret   string
	TokenExpiry time.Duration
	Currency    string
}

// request bundles the per-request pieces every finance handler needs.
type request struct {
	userID int64
	log    *logging.Logger
	store  *store.FinanceStore
	notes  *store.Recorder
}

func (env *Env) logger(r *http.Request) *logging.Logger {
	return logging.FromContext(r.Context(), env.Logger)
}

// open builds a fresh store for the authenticated user. It writes a 401 and
// returns false when the request carries no user.
func (env *Env) open(w http.ResponseWriter, r *http.Request) (*request, bool) {
	log := env.logger(r)
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		log.Error().Str("path", r.URL.Path).Msg("Request reached a protected handler without a user")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	notes := &store.Recorder{}
	return &request{
		userID: userID,
		log:    log,
		store:  store.New(env.Remotes(userID), store.WithNotifier(notes), store.WithLogger(log)),
		notes:  notes,
	}, true
}
