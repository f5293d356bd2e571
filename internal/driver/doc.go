// Package driver implements the synthesis algorithm that turns a
// seeded dependency ledger into a populated type registry.
//
// The driver repeatedly takes a descriptor whose dependencies are all
// satisfied, invokes the builder to materialize it, registers the
// result, and propagates the resolution to the types waiting on it,
// possibly unlocking further builds. Two driving policies share the
// same resolution step: Drain builds until nothing is pending, and
// Step builds exactly one type so callers can observe or test the
// resolution sequence incrementally.
package driver
