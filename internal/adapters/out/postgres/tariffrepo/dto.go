package tariffrepo

import (
	"time"

	"shipping/internal/core/domain/model/tariff"

	"github.com/shopspring/decimal"
)

// TariffProfileDTO is the row layout of the tariff_profiles table. Unset
// limits are stored as NULL and mean unbounded.
type TariffProfileDTO struct {
	Name              string              `gorm:"type:varchar(64);primaryKey"`
	VehicleClass      string              `gorm:"type:varchar(32);not null"`
	BaseCost          decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CostPerKilometer  decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CostPerKilogram   decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	CostPerCubicMeter decimal.Decimal     `gorm:"type:numeric(14,2);not null"`
	MaxWeightKg       decimal.NullDecimal `gorm:"type:numeric(12,3)"`
	MaxVolumeM3       decimal.NullDecimal `gorm:"type:numeric(12,4)"`
	UpdatedAt         time.Time           `gorm:"not null"`
}

// TableName pins the table name.
func (TariffProfileDTO) TableName() string {
	return "tariff_profiles"
}

func fromDomain(p *tariff.Profile) TariffProfileDTO {
	rates := p.Rates()
	limits := p.Limits()
	return TariffProfileDTO{
		Name:              p.Name(),
		VehicleClass:      p.Class().String(),
		BaseCost:          rates.BaseCost,
		CostPerKilometer:  rates.CostPerKilometer,
		CostPerKilogram:   rates.CostPerKilogram,
		CostPerCubicMeter: rates.CostPerCubicMeter,
		MaxWeightKg:       limits.MaxWeightKg,
		MaxVolumeM3:       limits.MaxVolumeM3,
	}
}

func toDomain(dto TariffProfileDTO) (*tariff.Profile, error) {
	class, err := tariff.ParseVehicleClass(dto.VehicleClass)
	if err != nil {
		return nil, err
	}

	return tariff.NewProfile(dto.Name, class, tariff.Rates{
		BaseCost:          dto.BaseCost,
		CostPerKilometer:  dto.CostPerKilometer,
		CostPerKilogram:   dto.CostPerKilogram,
		CostPerCubicMeter: dto.CostPerCubicMeter,
	}, tariff.Limits{
		MaxWeightKg: dto.MaxWeightKg,
		MaxVolumeM3: dto.MaxVolumeM3,
	})
}
