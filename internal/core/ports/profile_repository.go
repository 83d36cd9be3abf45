// Package ports defines repository and provider interfaces for the quick-ship core.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"quickship/internal/core/domain/model/shipment"
)

// ProfileRepository lists the configured sender and package profiles.
// Exactly one of each is resolved per workflow run: the configured default
// when set, otherwise the first in listing order.
type ProfileRepository interface {
	// ListOriginProfiles retrieves all configured sender address profiles
	// in listing order.
	ListOriginProfiles(ctx context.Context) ([]shipment.OriginProfile, error)

	// ListPackageProfiles retrieves all configured parcel presets
	// in listing order.
	ListPackageProfiles(ctx context.Context) ([]shipment.PackageProfile, error)
}

// BlockedCarrierRepository loads the tenant's carrier exclusion list.
// A load failure is non-fatal to the workflow: the caller proceeds as if no
// carriers were blocked, accepting that previously blocked carriers may
// surface.
type BlockedCarrierRepository interface {
	// GetBlockedSet retrieves the blocked carrier/service identifiers
	// for the tenant. The set may be empty.
	GetBlockedSet(ctx context.Context, tenantID string) (shipment.BlockedCarrierSet, error)
}
