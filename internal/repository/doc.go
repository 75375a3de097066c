// Package repository defines the data access interfaces for the pms registry.
//
// This package provides the repository abstraction layer for persisting and
// retrieving the registry entities. The implementation lives in the sqlite
// subpackage.
//
// # Units of Work
//
// Every repository call happens inside a unit of work obtained from
// Store.WithUnitOfWork. The unit commits when the body returns nil and rolls
// back when it returns an error, so a group of calls is all-or-nothing.
//
// # Referential Integrity
//
// Deleting a city deletes its neighborhoods and their streets and detaches
// its police stations. Deleting a neighborhood deletes its streets. These
// effects are carried out explicitly by the Delete operations.
//
// # Errors
//
// Repositories return the domain error taxonomy: *domain.ValidationError,
// *domain.NotFoundError and *domain.DuplicateError. Any other error is an
// unclassified storage failure.
package repository
