package repository

import (
	"context"

	"github.com/iliyamo/localrot/internal/database"
	"github.com/iliyamo/localrot/internal/model"
)

// PaymentRepo is the JSON snapshot implementation of PaymentStore.
type PaymentRepo struct {
	col *database.Collection[model.Payment]
}

func NewPaymentRepo(col *database.Collection[model.Payment]) *PaymentRepo {
	return &PaymentRepo{col: col}
}

var _ PaymentStore = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(_ context.Context, p model.Payment) error {
	return r.col.Update(func(items []model.Payment) ([]model.Payment, error) {
		return append(items, p), nil
	})
}

// GetByExternalID returns the first payment whose gateway reference
// matches.  An empty reference never matches.
func (r *PaymentRepo) GetByExternalID(_ context.Context, externalID string) (model.Payment, error) {
	if externalID == "" {
		return model.Payment{}, ErrNotFound
	}
	items, err := r.col.Read()
	if err != nil {
		return model.Payment{}, err
	}
	for _, p := range items {
		if p.ExternalID == externalID {
			return p, nil
		}
	}
	return model.Payment{}, ErrNotFound
}

func (r *PaymentRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.col.Update(func(items []model.Payment) ([]model.Payment, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Status = status
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}

func (r *PaymentRepo) Count(_ context.Context) (int, error) {
	items, err := r.col.Read()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
