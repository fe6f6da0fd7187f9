package directory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/kvstore"

	"go.uber.org/zap"
)

// UsersKey is the collection name on the persistence surface.
const UsersKey = "users"

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	// All returns the whole directory, seeding the default accounts when
	// the collection is absent or unreadable.
	All(ctx context.Context) ([]Account, error)
	Replace(ctx context.Context, accounts []Account) error
	// Entry stages a whole-collection write for an atomic multi-key commit.
	Entry(accounts []Account) (kvstore.Entry, error)
	// FindByIdentifier matches either username or userId, exact and
	// case-sensitive.
	FindByIdentifier(ctx context.Context, identifier string) (*Account, error)
	FindByUserID(ctx context.Context, userID string) (*Account, error)
}

type repository struct {
	store  kvstore.Store
	logger *zap.Logger
}

func NewRepository(store kvstore.Store, logger ...*zap.Logger) Repository {
	l := zap.L().Named("directory.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("directory.repo")
	}
	return &repository{store: store, logger: l}
}

func (r *repository) All(ctx context.Context) ([]Account, error) {
	payload, err := r.store.Load(ctx, UsersKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrMissing) {
			return r.seed(ctx)
		}
		return nil, persistenceErr(err)
	}

	var accounts []Account
	if err := json.Unmarshal(payload, &accounts); err != nil {
		r.logger.Warn("users collection unreadable, reseeding defaults", zap.Error(err))
		return r.seed(ctx)
	}
	return accounts, nil
}

func (r *repository) seed(ctx context.Context) ([]Account, error) {
	accounts := defaultAccounts()
	if err := r.Replace(ctx, accounts); err != nil {
		return nil, err
	}
	r.logger.Info("seeded default account directory", zap.Int("accounts", len(accounts)))
	return accounts, nil
}

func (r *repository) Replace(ctx context.Context, accounts []Account) error {
	entry, err := r.Entry(accounts)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, entry.Key, entry.Payload); err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (r *repository) Entry(accounts []Account) (kvstore.Entry, error) {
	payload, err := json.Marshal(accounts)
	if err != nil {
		return kvstore.Entry{}, persistenceErr(err)
	}
	return kvstore.Entry{Key: UsersKey, Payload: payload}, nil
}

func (r *repository) FindByIdentifier(ctx context.Context, identifier string) (*Account, error) {
	accounts, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Username == identifier || accounts[i].UserID == identifier {
			return &accounts[i], nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*Account, error) {
	accounts, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].UserID == userID {
			return &accounts[i], nil
		}
	}
	return nil, apperror.ErrNotFound
}

func persistenceErr(err error) error {
	return apperror.Wrap(err,
		apperror.CodeServiceUnavailable,
		"Storage is temporarily unavailable, please retry later",
		http.StatusServiceUnavailable,
	)
}
