// Package session wires one synthesis session together: one ledger,
// one registry, one carpenter and one driver per deserialization
// attempt. Nothing is shared across sessions, so no locking exists
// anywhere in the pipeline.
package session
