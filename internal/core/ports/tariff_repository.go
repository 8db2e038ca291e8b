package ports

import (
	"context"

	"shipping/internal/core/domain/model/tariff"
)

// TariffRepository stores tariff profiles that override or extend the built-in ones.
type TariffRepository interface {
	// Save inserts or replaces the profile with the same name.
	Save(ctx context.Context, profile *tariff.Profile) error

	// GetAll returns every stored profile ordered by name.
	GetAll(ctx context.Context) ([]*tariff.Profile, error)
}
