// Package service implements the registry operations offered to pms users.
//
// Directory coordinates between the command line and the repository layer.
// Every method runs in exactly one unit of work: a method that returns an
// error has changed nothing.
//
// # Import and export
//
// Import loads a whole domain.Hierarchy in one unit of work, so a seed
// document is applied completely or not at all. Export reads the four
// collections in one unit of work and nests them back into a hierarchy.
//
// # Event System
//
// Directory publishes an Event on its EventBus after each successful
// change. Events are never published for rolled back work.
package service
