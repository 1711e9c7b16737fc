// Package services is the booking orchestrator: one service per domain, each
// following the same contract — validate, resolve catalog rows, price, mutate
// inventory, persist a booking row with a frozen pricing snapshot.
package services

import (
	"context"

	"backend/internal/domain/models"
	"backend/internal/store"
)

// Retry budget for optimistic inventory writes. Conflicts re-read and
// re-validate, so a loser either books different seats or fails cleanly.
const maxMutationRetries = 3

type SettingsService struct {
	Store store.Store
}

// Load fetches the settings singleton; a missing row yields usable defaults
// so pricing never divides by thin air.
func (s SettingsService) Load(ctx context.Context) (models.Settings, error) {
	rows, err := s.Store.Select(ctx, store.ColSettings)
	if err != nil {
		return models.Settings{}, err
	}
	if len(rows) == 0 {
		return models.Settings{Currency: "INR", Tax: models.DefaultTaxRules()}, nil
	}
	var out models.Settings
	if err := store.Decode(rows[0], &out); err != nil {
		return models.Settings{}, err
	}
	if out.Tax.FoodRate <= 0 && out.Tax.TourRate <= 0 && len(out.Tax.HotelSlabs) == 0 {
		out.Tax = models.DefaultTaxRules()
	}
	return out, nil
}
