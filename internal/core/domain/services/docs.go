// Package services provides domain services that implement business rules
// spanning multiple domain objects in the quick-ship workflow. It holds logic
// that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - QuoteSelector: Filtering and cheapest-quote selection over provider quotes
//   - RequestBuilder: Assembly of the normalized shipment payload with
//     field-level fallback and destination validation
//
// Domain services are pure: they take domain values in and return domain
// values or typed errors, with no I/O of their own.
package services
