// Package blockrepo persists the per-tenant carrier exclusion list.
package blockrepo

import (
	"context"

	"quickship/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// BlockedCarrierDTO represents one blocked carrier/service for a tenant.
type BlockedCarrierDTO struct {
	TenantID         string `gorm:"primaryKey;type:varchar(64)"`
	CarrierServiceID int    `gorm:"primaryKey"`
}

// TableName specifies the database table name for blocked carriers.
func (BlockedCarrierDTO) TableName() string {
	return "blocked_carriers"
}

// GormBlockedCarrierRepository implements BlockedCarrierRepository using GORM.
type GormBlockedCarrierRepository struct {
	db *gorm.DB
}

// NewGormBlockedCarrierRepository creates a new GORM blocked carrier repository.
func NewGormBlockedCarrierRepository(db *gorm.DB) *GormBlockedCarrierRepository {
	return &GormBlockedCarrierRepository{db: db}
}

// Block adds a carrier/service to the tenant's exclusion list.
// Blocking an already blocked carrier is a no-op.
func (r *GormBlockedCarrierRepository) Block(ctx context.Context, tenantID string, carrierServiceID int) error {
	dto := BlockedCarrierDTO{TenantID: tenantID, CarrierServiceID: carrierServiceID}
	return r.db.WithContext(ctx).FirstOrCreate(&dto, dto).Error
}

// Unblock removes a carrier/service from the tenant's exclusion list.
func (r *GormBlockedCarrierRepository) Unblock(ctx context.Context, tenantID string, carrierServiceID int) error {
	return r.db.WithContext(ctx).
		Delete(&BlockedCarrierDTO{}, "tenant_id = ? AND carrier_service_id = ?", tenantID, carrierServiceID).
		Error
}

// GetBlockedSet retrieves the blocked carrier/service identifiers for the tenant.
func (r *GormBlockedCarrierRepository) GetBlockedSet(
	ctx context.Context,
	tenantID string,
) (shipment.BlockedCarrierSet, error) {
	var ids []int
	if err := r.db.WithContext(ctx).Model(&BlockedCarrierDTO{}).
		Where("tenant_id = ?", tenantID).
		Pluck("carrier_service_id", &ids).Error; err != nil {
		return nil, err
	}

	return shipment.NewBlockedCarrierSet(ids), nil
}
