// Package extract is the upstream producer of a synthesis session's
// initial state. It parses HCL schema documents into type descriptors
// and classifies each one against the set of already-known types:
// directly buildable descriptors join the pending queue, and the rest
// enter the dependency ledger blocked on the composite names they
// reference.
package extract
