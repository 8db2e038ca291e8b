// Package tariffrepo persists tariff profiles that override or extend the
// built-in motorcycle, car and truck rates.
package tariffrepo

import (
	"context"
	"fmt"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTariffRepository implements ports.TariffRepository.
type GormTariffRepository struct {
	db *gorm.DB
}

var _ ports.TariffRepository = (*GormTariffRepository)(nil)

// NewGormTariffRepository creates a repository bound to db.
func NewGormTariffRepository(db *gorm.DB) *GormTariffRepository {
	return &GormTariffRepository{db: db}
}

// Save inserts the profile or replaces every column of the row with the same name.
func (r *GormTariffRepository) Save(ctx context.Context, profile *tariff.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := fromDomain(profile)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
	return pgerr.Map(err, "tariff", profile.Name())
}

// GetAll loads every stored profile ordered by name. A row that no longer
// validates fails the whole call so that a broken tariff is noticed.
func (r *GormTariffRepository) GetAll(ctx context.Context) ([]*tariff.Profile, error) {
	var dtos []TariffProfileDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	profiles := make([]*tariff.Profile, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("tariff %q: %w", dto.Name, err)
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}
