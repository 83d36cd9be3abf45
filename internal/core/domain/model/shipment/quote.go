package shipment

// Quote is a priced shipping option returned by the rate-shopping provider
// for a given origin/destination/parcel. Quotes are ephemeral: produced per
// call and discarded, except the chosen one.
type Quote struct {
	// CarrierServiceID is the provider's carrier/service identifier,
	// the key matched against the blocked-carrier set.
	CarrierServiceID int

	// CarrierName is the carrier company name.
	CarrierName string

	// ServiceName is the carrier service name (e.g. express, economy).
	ServiceName string

	// Price is the quoted freight price.
	Price float64

	// DeliveryDays is the delivery estimate in days.
	DeliveryDays int

	// Raw is the provider's response entry, preserved verbatim for the
	// stored selection snapshot.
	Raw string

	// Errored marks entries the provider flagged as failed; errored quotes
	// never participate in selection.
	Errored bool

	// ErrorMessage carries the provider's per-entry error text when Errored is set.
	ErrorMessage string
}

// BlockedCarrierSet is the tenant-specific exclusion list of carrier/service
// identifiers. Loaded fresh on each workflow run and never mutated by it.
type BlockedCarrierSet map[int]struct{}

// NewBlockedCarrierSet builds a set from a list of carrier/service identifiers.
func NewBlockedCarrierSet(ids []int) BlockedCarrierSet {
	set := make(BlockedCarrierSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether the carrier/service identifier is blocked.
func (s BlockedCarrierSet) Has(carrierServiceID int) bool {
	_, blocked := s[carrierServiceID]
	return blocked
}

// IsEmpty reports whether no carriers are blocked.
func (s BlockedCarrierSet) IsEmpty() bool {
	return len(s) == 0
}
