package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/repository/store"
)

// Repository reads and writes the whole ledger as one JSON object.
type Repository struct {
	store store.Store
	key   string
}

// NewRepository binds the ledger to models.LedgerKey in s.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s, key: models.LedgerKey}
}

// Load returns the persisted ledger, or an empty one when nothing is stored.
func (r *Repository) Load(ctx context.Context) (models.Ledger, error) {
	data, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	ledger := models.Ledger{}
	if !found || len(data) == 0 {
		return ledger, nil
	}

	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	if ledger == nil {
		ledger = models.Ledger{}
	}
	return ledger, nil
}

// Save overwrites the persisted ledger. Dates without records are dropped.
func (r *Repository) Save(ctx context.Context, ledger models.Ledger) error {
	compact := make(models.Ledger, len(ledger))
	for date, records := range ledger {
		if len(records) > 0 {
			compact[date] = records
		}
	}

	data, err := json.Marshal(compact)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Clear removes the persisted ledger.
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	return nil
}
