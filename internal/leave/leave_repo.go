package leave

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/kvstore"

	"go.uber.org/zap"
)

// RecordsKey is the collection name on the persistence surface.
const RecordsKey = "leaveRecords"

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	// All returns the whole record collection; absence or unreadable data
	// degrades to an empty collection.
	All(ctx context.Context) ([]Record, error)
	Replace(ctx context.Context, records []Record) error
	// Entry stages a whole-collection write for an atomic multi-key commit.
	Entry(records []Record) (kvstore.Entry, error)
	FindByOwner(ctx context.Context, ownerID string) ([]Record, error)
}

type repository struct {
	store  kvstore.Store
	logger *zap.Logger
}

func NewRepository(store kvstore.Store, logger ...*zap.Logger) Repository {
	l := zap.L().Named("leave.repo")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.repo")
	}
	return &repository{store: store, logger: l}
}

func (r *repository) All(ctx context.Context) ([]Record, error) {
	payload, err := r.store.Load(ctx, RecordsKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrMissing) {
			return []Record{}, nil
		}
		return nil, persistenceErr(err)
	}

	var records []Record
	if err := json.Unmarshal(payload, &records); err != nil {
		r.logger.Warn("leaveRecords collection unreadable, treating as empty", zap.Error(err))
		return []Record{}, nil
	}
	return records, nil
}

func (r *repository) Replace(ctx context.Context, records []Record) error {
	entry, err := r.Entry(records)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, entry.Key, entry.Payload); err != nil {
		return persistenceErr(err)
	}
	return nil
}

func (r *repository) Entry(records []Record) (kvstore.Entry, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return kvstore.Entry{}, persistenceErr(err)
	}
	return kvstore.Entry{Key: RecordsKey, Payload: payload}, nil
}

// FindByOwner is a query, not a stored relation: ownership lives only on the
// record side.
func (r *repository) FindByOwner(ctx context.Context, ownerID string) ([]Record, error) {
	records, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.OwnerID == ownerID {
			owned = append(owned, rec)
		}
	}
	return owned, nil
}

func persistenceErr(err error) error {
	return apperror.Wrap(err,
		apperror.CodeServiceUnavailable,
		"Storage is temporarily unavailable, please retry later",
		http.StatusServiceUnavailable,
	)
}
