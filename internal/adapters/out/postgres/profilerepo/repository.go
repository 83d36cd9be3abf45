package profilerepo

import (
	"context"

	"quickship/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// AddOriginProfile saves a sender address profile at the given position.
func (r *GormProfileRepository) AddOriginProfile(
	ctx context.Context,
	profile shipment.OriginProfile,
	position int,
) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := originFromDomain(profile, position)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddPackageProfile saves a parcel preset at the given position.
func (r *GormProfileRepository) AddPackageProfile(
	ctx context.Context,
	profile shipment.PackageProfile,
	position int,
) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	dto := packageFromDomain(profile, position)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListOriginProfiles retrieves all sender address profiles in listing order.
func (r *GormProfileRepository) ListOriginProfiles(ctx context.Context) ([]shipment.OriginProfile, error) {
	var dtos []OriginProfileDTO
	if err := r.db.WithContext(ctx).Order("position, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	profiles := make([]shipment.OriginProfile, 0, len(dtos))
	for _, dto := range dtos {
		profile, err := originToDomain(dto)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// ListPackageProfiles retrieves all parcel presets in listing order.
func (r *GormProfileRepository) ListPackageProfiles(ctx context.Context) ([]shipment.PackageProfile, error) {
	var dtos []PackageProfileDTO
	if err := r.db.WithContext(ctx).Order("position, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	profiles := make([]shipment.PackageProfile, 0, len(dtos))
	for _, dto := range dtos {
		profile, err := packageToDomain(dto)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}
