// Package domain defines the core entity types for the pms registry.
//
// The registry models a small administrative hierarchy:
//
//	City ─┬─< Neighborhood ─< Street
//	      └─< PoliceStation (optional link)
//
// # Entities
//
// City, Neighborhood, Street and PoliceStation are plain value types. Values
// returned by the repositories are copies; holding one does not keep any
// database resource alive and later writes are not reflected in it.
//
// # Field Normalization
//
// Every write goes through a Fields type (CityFields, NeighborhoodFields,
// StreetFields, PoliceStationFields). Normalize trims free text and Validate
// enforces required fields and maximum lengths, returning *ValidationError.
//
// # Errors
//
// ErrValidation, ErrNotFound and ErrDuplicate classify failures so callers
// can use errors.Is without depending on storage-engine wording.
//
// # Design Principles
//
// - No database or external dependencies
// - Immutable value objects
// - An empty optional string means "absent"
package domain
