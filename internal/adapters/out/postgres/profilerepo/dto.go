// Package profilerepo provides data transfer objects and mapping functions for
// shipping configuration persistence: sender address profiles and parcel presets.
// Profiles are maintained by settings screens; the workflow only reads them.
package profilerepo

import (
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// OriginProfileDTO represents the database structure for sender address profiles.
// Position drives listing order so "first profile" is stable across reads.
type OriginProfileDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"index;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255)"`
	Phone      string    `gorm:"type:varchar(32)"`
	TaxID      string    `gorm:"type:varchar(32)"`
	Street     string    `gorm:"type:varchar(255)"`
	Complement string    `gorm:"type:varchar(255)"`
	City       string    `gorm:"type:varchar(128)"`
	State      string    `gorm:"type:varchar(8)"`
	PostalCode string    `gorm:"type:varchar(16)"`
}

// TableName specifies the database table name for origin profiles.
func (OriginProfileDTO) TableName() string {
	return "origin_profiles"
}

// PackageProfileDTO represents the database structure for parcel presets.
type PackageProfileDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"index;not null"`
	HeightCm float64
	WidthCm  float64
	LengthCm float64
	WeightKg float64
}

// TableName specifies the database table name for package profiles.
func (PackageProfileDTO) TableName() string {
	return "package_profiles"
}

func originFromDomain(profile shipment.OriginProfile, position int) OriginProfileDTO {
	return OriginProfileDTO{
		ID:         profile.ID.Bytes(),
		Position:   position,
		Name:       profile.Name,
		Email:      profile.Email,
		Phone:      profile.Phone,
		TaxID:      profile.TaxID,
		Street:     profile.Street,
		Complement: profile.Complement,
		City:       profile.City,
		State:      profile.State,
		PostalCode: profile.PostalCode,
	}
}

func originToDomain(dto OriginProfileDTO) (shipment.OriginProfile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return shipment.OriginProfile{}, err
	}

	return shipment.OriginProfile{
		ID:         id,
		Name:       dto.Name,
		Email:      dto.Email,
		Phone:      dto.Phone,
		TaxID:      dto.TaxID,
		Street:     dto.Street,
		Complement: dto.Complement,
		City:       dto.City,
		State:      dto.State,
		PostalCode: dto.PostalCode,
	}, nil
}

func packageFromDomain(profile shipment.PackageProfile, position int) PackageProfileDTO {
	return PackageProfileDTO{
		ID:       profile.ID.Bytes(),
		Position: position,
		HeightCm: profile.HeightCm,
		WidthCm:  profile.WidthCm,
		LengthCm: profile.LengthCm,
		WeightKg: profile.WeightKg,
	}
}

func packageToDomain(dto PackageProfileDTO) (shipment.PackageProfile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return shipment.PackageProfile{}, err
	}

	return shipment.PackageProfile{
		ID:       id,
		HeightCm: dto.HeightCm,
		WidthCm:  dto.WidthCm,
		LengthCm: dto.LengthCm,
		WeightKg: dto.WeightKg,
	}, nil
}
