// Package store persists warehouse records in SQLite.
//
// The store is the only package that speaks SQL. It exposes typed row
// operations through Queries, bound either to the database directly or
// to a transaction via Store.ReadWrite. Stock mutations are guarded
// single-statement UPDATEs so the non-negative stock invariant holds as
// an atomic read-modify-write even if a second process touches the same
// database.
//
// Constraint violations surface as domain errors from internal/model
// (DuplicateKey, DuplicateName, DuplicateLine, ProductInUse) rather
// than driver errors.
package store
