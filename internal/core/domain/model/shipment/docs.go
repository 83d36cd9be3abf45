// Package shipment provides the value objects exchanged between the quick-ship
// workflow and the freight providers: the normalized shipment request, freight
// quotes, configured origin/package profiles, and the tenant's blocked-carrier set.
//
// Quotes and requests are ephemeral: they are produced per invocation and are
// not persisted except for the one chosen quote, which the order aggregate
// stores as a FreightSelection.
package shipment
