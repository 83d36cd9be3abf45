package shipment

// Party is one endpoint of a shipment: the sender or the recipient,
// with a full postal address. Postal codes are digits-only by the time
// a Party reaches a provider adapter.
type Party struct {
	Name       string
	Email      string
	Phone      string
	TaxID      string
	Street     string
	Complement string
	City       string
	State      string
	PostalCode string
}

// Parcel holds the physical package attributes submitted for quoting.
type Parcel struct {
	HeightCm float64
	WidthCm  float64
	LengthCm float64
	WeightKg float64
}

// RequestItem is a product line inside the shipment payload.
type RequestItem struct {
	ProductID string
	VariantID string
	Quantity  int
	UnitPrice float64
}

// Request is the normalized shipment payload sent to the rate-shopping and
// booking providers. It is assembled by the request builder from the order,
// its recipient snapshot, the resolved origin profile and package profile,
// with field-level fallback to the order's previously stored provider payload.
type Request struct {
	Origin        Party
	Destination   Party
	Parcel        Parcel
	Items         []RequestItem
	DeclaredValue float64
}
