// Package ledger implements the dependency bookkeeping at the heart of
// a type-synthesis session: for every not-yet-built composite type,
// which other not-yet-built types it waits on, and inversely which
// types are waiting on it.
//
// The two views are kept bidirectionally consistent: every outstanding
// blocker recorded for a waiting type has a matching entry in that
// blocker's dependents list. Resolution of a built type walks a
// snapshot of its dependents, decrements their outstanding counts, and
// hands newly-unblocked descriptors back to the driver for promotion.
//
// Duplicate recordings of the same (dependent, blocker) pair are
// counted rather than deduplicated: a descriptor that
// references the same pending type from several sites records one
// dependency per site, and each is cleared by the same resolution
// pass. See DESIGN.md for the reasoning.
package ledger
