package shipment

import "strings"

// LabelResult is the label provider's answer for a booking. Exactly one of
// the interpretations applies, checked in priority order by the label driver:
// an absolute http(s) URL, an opaque label identifier, or an ambiguous raw
// payload treated as a soft success.
type LabelResult struct {
	// URL is the printable label location when the provider returned one.
	URL string

	// LabelID is the provider's opaque label identifier, possibly set
	// without a URL.
	LabelID string

	// Raw is the provider response body, preserved for diagnostics.
	Raw string
}

// HasURL reports whether the result carries an absolute http(s) URL.
func (r LabelResult) HasURL() bool {
	return strings.HasPrefix(r.URL, "http://") || strings.HasPrefix(r.URL, "https://")
}

// HasID reports whether the result carries an opaque label identifier.
func (r LabelResult) HasID() bool {
	return r.LabelID != ""
}

// IsEmpty reports whether the result has no usable fields, which makes the
// first label attempt eligible for a retry.
func (r LabelResult) IsEmpty() bool {
	return !r.HasURL() && !r.HasID() && strings.TrimSpace(r.Raw) == ""
}
